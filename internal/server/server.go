// Package server provides the reactgen HTTP API.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/decagondev/react-component-generator/internal/component"
	"github.com/decagondev/react-component-generator/internal/generator"
	"github.com/decagondev/react-component-generator/internal/history"
)

// Server exposes the generation pipeline over HTTP.
type Server struct {
	gen    *generator.Generator
	store  *history.Store
	addr   string
	router chi.Router
	log    zerolog.Logger
}

// New creates a Server around an already-wired Generator and store.
func New(gen *generator.Generator, store *history.Store, addr string, log zerolog.Logger) *Server {
	s := &Server{
		gen:   gen,
		store: store,
		addr:  addr,
		log:   log,
	}
	s.router = s.buildRouter()
	return s
}

// Start runs the HTTP server until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", s.addr).Msg("reactgen server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Handler returns the HTTP handler. Used in tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Route("/api", func(r chi.Router) {
		r.Post("/generations", s.handleCreateGeneration)
		r.Get("/generations", s.handleListGenerations)
		r.Get("/generations/{id}", s.handleGetGeneration)
	})

	// Health check.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	return r
}

// --- Request/Response types ---

type createGenerationRequest struct {
	component.Request
	Push bool `json:"push,omitempty"`
}

type createGenerationResponse struct {
	Record     *history.Record `json:"record"`
	FileName   string          `json:"file_name"`
	Path       string          `json:"path"`
	PublishURL string          `json:"publish_url,omitempty"`
}

// --- Handlers ---

func (s *Server) handleCreateGeneration(w http.ResponseWriter, r *http.Request) {
	var req createGenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.gen.Generate(r.Context(), req.Request, req.Push)
	if err != nil {
		s.log.Error().Err(err).Str("component", req.Name).Msg("generation failed")
		switch {
		case errors.Is(err, generator.ErrWrite):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, createGenerationResponse{
		Record:     result.Record,
		FileName:   result.FileName,
		Path:       result.Path,
		PublishURL: result.PublishURL,
	})
}

func (s *Server) handleListGenerations(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []*history.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetGeneration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "generation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
