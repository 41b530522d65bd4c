package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/decagondev/react-component-generator/internal/config"
	"github.com/decagondev/react-component-generator/internal/generator"
	"github.com/decagondev/react-component-generator/internal/history"
	"github.com/decagondev/react-component-generator/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reactgen HTTP API",
	Long: `Start an HTTP server exposing the generation pipeline:

  POST /api/generations       Generate a component
  GET  /api/generations       List past generations
  GET  /api/generations/{id}  Show one generation
  GET  /health                Health check`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	client, provider, model, err := generator.NewLLMClient(cfg)
	if err != nil {
		return err
	}

	// Unlike the CLI path, the server requires the store: list/get
	// endpoints are meaningless without it.
	store, err := history.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	gen := buildGenerator(cfg, client, provider, model, cfg.OutputDir, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(gen, store, cfg.ServerAddr, logger).Start(ctx)
}
