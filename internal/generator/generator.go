// Package generator runs the component generation pipeline:
// validate the request, build the prompt, call the LLM, write the file.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/decagondev/react-component-generator/internal/component"
	"github.com/decagondev/react-component-generator/internal/history"
	"github.com/decagondev/react-component-generator/internal/notify"
	"github.com/decagondev/react-component-generator/llm"
)

// Sentinel errors for the three fallible boundaries. Callers check them
// with errors.Is to tell input, API, and filesystem failures apart.
var (
	ErrCollect  = errors.New("collecting input")
	ErrGenerate = errors.New("calling generation API")
	ErrWrite    = errors.New("writing output")
)

// Publisher commits a generated file to an external repository.
type Publisher interface {
	Publish(ctx context.Context, fileName string, content []byte) (string, error)
}

// Generator owns one run of the pipeline. It is safe for concurrent use
// by the HTTP server: all state is set at construction time.
type Generator struct {
	llm       llm.Client
	provider  string
	model     string
	outDir    string
	store     *history.Store
	notifiers []notify.Notifier
	publisher Publisher
	log       zerolog.Logger
}

// New creates a Generator writing files into outDir.
func New(client llm.Client, provider, model, outDir string, log zerolog.Logger) *Generator {
	return &Generator{
		llm:      client,
		provider: provider,
		model:    model,
		outDir:   outDir,
		log:      log,
	}
}

// WithStore attaches a history store. Recording is best-effort: a store
// failure never blocks generation.
func (g *Generator) WithStore(s *history.Store) *Generator {
	g.store = s
	return g
}

// WithNotifiers attaches notification channels.
func (g *Generator) WithNotifiers(ns ...notify.Notifier) *Generator {
	g.notifiers = append(g.notifiers, ns...)
	return g
}

// WithPublisher attaches a GitHub publisher used when Push is requested.
func (g *Generator) WithPublisher(p Publisher) *Generator {
	g.publisher = p
	return g
}

// Result describes a completed generation run.
type Result struct {
	Record     *history.Record
	FileName   string
	Path       string
	Artifact   string
	PublishURL string
	Duration   time.Duration
}

// Generate runs the pipeline for one request. The component name is
// validated before the API is called so a bad name never costs a request.
// On error the output file is left untouched.
func (g *Generator) Generate(ctx context.Context, req component.Request, push bool) (*Result, error) {
	if err := component.ValidateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	now := time.Now().UTC()
	rec := &history.Record{
		ID:        uuid.NewString(),
		Component: req,
		Provider:  g.provider,
		Model:     g.model,
		Status:    history.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	g.record(rec, false)

	prompt := req.Prompt()
	g.log.Debug().
		Str("id", rec.ID).
		Str("component", req.Name).
		Str("provider", g.provider).
		Str("model", g.model).
		Int("prompt_bytes", len(prompt)).
		Msg("requesting generation")

	start := time.Now()
	artifact, err := g.llm.Complete(ctx, component.SystemPrompt, prompt)
	if err != nil {
		g.fail(rec, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	duration := time.Since(start)

	g.log.Debug().
		Str("id", rec.ID).
		Int("artifact_bytes", len(artifact)).
		Dur("duration", duration).
		Msg("generation complete")

	path := filepath.Join(g.outDir, req.FileName())
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		g.fail(rec, err)
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.WriteFile(path, []byte(artifact), 0o644); err != nil {
		g.fail(rec, err)
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	rec.OutputPath = path
	rec.Bytes = int64(len(artifact))
	rec.Status = history.StatusComplete
	g.record(rec, true)

	result := &Result{
		Record:   rec,
		FileName: req.FileName(),
		Path:     path,
		Artifact: artifact,
		Duration: duration,
	}

	g.notify(ctx, fmt.Sprintf("Component %s generated (%d bytes, %s/%s)",
		req.FileName(), rec.Bytes, g.provider, g.model))

	if push && g.publisher != nil {
		url, err := g.publisher.Publish(ctx, req.FileName(), []byte(artifact))
		if err != nil {
			g.log.Error().Err(err).Str("component", req.Name).Msg("publish failed")
		} else {
			result.PublishURL = url
			g.log.Info().Str("url", url).Msg("published to GitHub")
		}
	}

	return result, nil
}

// record creates or updates the history record, logging failures at warn.
func (g *Generator) record(rec *history.Record, update bool) {
	if g.store == nil {
		return
	}
	var err error
	if update {
		err = g.store.Update(rec)
	} else {
		err = g.store.Create(rec)
	}
	if err != nil {
		g.log.Warn().Err(err).Str("id", rec.ID).Msg("recording history failed")
	}
}

func (g *Generator) fail(rec *history.Record, cause error) {
	rec.Status = history.StatusError
	rec.Error = cause.Error()
	g.record(rec, true)
}

func (g *Generator) notify(ctx context.Context, text string) {
	for _, n := range g.notifiers {
		if err := n.Notify(ctx, text); err != nil {
			g.log.Warn().Err(err).Str("channel", n.Name()).Msg("notification failed")
		}
	}
}
