// Package history provides generation-run persistence using SQLite.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/decagondev/react-component-generator/internal/component"
)

// Status represents the outcome of a generation run.
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// Record represents a single component generation run.
type Record struct {
	ID         string            `json:"id"`
	Component  component.Request `json:"component"`
	Provider   string            `json:"provider"`
	Model      string            `json:"model"`
	OutputPath string            `json:"output_path,omitempty"`
	Status     Status            `json:"status"`
	Error      string            `json:"error,omitempty"`
	Bytes      int64             `json:"bytes"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Store manages generation records in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite database at the given path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS generations (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			purpose     TEXT NOT NULL DEFAULT '',
			props       TEXT NOT NULL DEFAULT '',
			behavior    TEXT NOT NULL DEFAULT '',
			styling     TEXT NOT NULL DEFAULT '',
			examples    TEXT NOT NULL DEFAULT '',
			provider    TEXT NOT NULL DEFAULT '',
			model       TEXT NOT NULL DEFAULT '',
			output_path TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT 'pending',
			error       TEXT NOT NULL DEFAULT '',
			bytes       INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
			updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_generations_created_at
			ON generations(created_at);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a new generation record.
func (s *Store) Create(rec *Record) error {
	if rec.Status == "" {
		rec.Status = StatusPending
	}
	_, err := s.db.Exec(
		`INSERT INTO generations (id, name, purpose, props, behavior, styling, examples,
		                          provider, model, output_path, status, error, bytes,
		                          created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Component.Name, rec.Component.Purpose, rec.Component.Props,
		rec.Component.Behavior, rec.Component.Styling, rec.Component.Examples,
		rec.Provider, rec.Model, rec.OutputPath, rec.Status, rec.Error, rec.Bytes,
		rec.CreatedAt, rec.UpdatedAt,
	)
	return err
}

// Get retrieves a record by ID.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, name, purpose, props, behavior, styling, examples,
		        provider, model, output_path, status, error, bytes,
		        created_at, updated_at
		 FROM generations WHERE id = ?`, id,
	)
	return scanRecord(row)
}

// List returns all records ordered by creation time (newest first).
func (s *Store) List() ([]*Record, error) {
	rows, err := s.db.Query(
		`SELECT id, name, purpose, props, behavior, styling, examples,
		        provider, model, output_path, status, error, bytes,
		        created_at, updated_at
		 FROM generations ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Update updates mutable fields of a record.
func (s *Store) Update(rec *Record) error {
	rec.UpdatedAt = time.Now().UTC()
	_, err := s.db.Exec(
		`UPDATE generations SET
			provider = ?, model = ?, output_path = ?, status = ?, error = ?,
			bytes = ?, updated_at = ?
		 WHERE id = ?`,
		rec.Provider, rec.Model, rec.OutputPath, rec.Status, rec.Error,
		rec.Bytes, rec.UpdatedAt, rec.ID,
	)
	return err
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*Record, error) {
	rec := &Record{}
	err := row.Scan(
		&rec.ID, &rec.Component.Name, &rec.Component.Purpose, &rec.Component.Props,
		&rec.Component.Behavior, &rec.Component.Styling, &rec.Component.Examples,
		&rec.Provider, &rec.Model, &rec.OutputPath, &rec.Status, &rec.Error,
		&rec.Bytes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
