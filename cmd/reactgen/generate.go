package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/decagondev/react-component-generator/internal/collector"
	"github.com/decagondev/react-component-generator/internal/component"
	"github.com/decagondev/react-component-generator/internal/config"
	"github.com/decagondev/react-component-generator/internal/generator"
	"github.com/decagondev/react-component-generator/internal/history"
	"github.com/decagondev/react-component-generator/internal/notify"
	slacknotify "github.com/decagondev/react-component-generator/internal/notify/slack"
	telegramnotify "github.com/decagondev/react-component-generator/internal/notify/telegram"
	"github.com/decagondev/react-component-generator/internal/publish"
	"github.com/decagondev/react-component-generator/llm"
)

var (
	genName     string
	genPurpose  string
	genProps    string
	genBehavior string
	genStyling  string
	genExamples string
	genOutDir   string
	genPush     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a React component",
	Long: `Generate a React component from a short description.

Without flags, the six fields are collected interactively:

  reactgen generate

With --name, the remaining fields come from flags (empty is fine):

  reactgen generate --name Button --purpose "clickable button" \
      --props "label:string" --behavior "fires onClick"`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genName, "name", "", "Component name (skips the interactive prompts)")
	generateCmd.Flags().StringVar(&genPurpose, "purpose", "", "What the component is for")
	generateCmd.Flags().StringVar(&genProps, "props", "", "Props, described as a list")
	generateCmd.Flags().StringVar(&genBehavior, "behavior", "", "Component behavior")
	generateCmd.Flags().StringVar(&genStyling, "styling", "", "Styling notes")
	generateCmd.Flags().StringVar(&genExamples, "examples", "", "Usage examples")
	generateCmd.Flags().StringVarP(&genOutDir, "output", "o", "", "Output directory (default: configured output dir)")
	generateCmd.Flags().BoolVar(&genPush, "push", false, "Commit the generated file to the configured GitHub repo")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	client, provider, model, err := generator.NewLLMClient(cfg)
	if err != nil {
		return err
	}

	var req component.Request
	if genName != "" {
		req = component.Request{
			Name:     genName,
			Purpose:  genPurpose,
			Props:    genProps,
			Behavior: genBehavior,
			Styling:  genStyling,
			Examples: genExamples,
		}
	} else {
		coll := collector.New(os.Stdin, os.Stdout)
		req, err = coll.Collect()
		if err != nil {
			return fmt.Errorf("%w: %v", generator.ErrCollect, err)
		}
	}

	outDir := cfg.OutputDir
	if genOutDir != "" {
		outDir = genOutDir
	}

	// History is best-effort for the CLI: a broken store logs a warning
	// and the run proceeds unrecorded.
	var store *history.Store
	if s, err := history.NewStore(cfg.DatabasePath); err != nil {
		logger.Warn().Err(err).Msg("history store unavailable")
	} else {
		store = s
		defer store.Close()
	}

	gen := buildGenerator(cfg, client, provider, model, outDir, store, logger)

	result, err := gen.Generate(cmd.Context(), req, genPush)
	if err != nil {
		return err
	}

	fmt.Printf("Component saved to %s\n", result.FileName)
	if result.PublishURL != "" {
		fmt.Printf("Published to %s\n", result.PublishURL)
	}
	return nil
}

// buildGenerator wires the generator with history, notification, and
// publishing from the configuration. Notifier setup failures are logged,
// not fatal.
func buildGenerator(cfg *config.Config, client llm.Client, provider, model, outDir string, store *history.Store, logger zerolog.Logger) *generator.Generator {
	gen := generator.New(client, provider, model, outDir, logger)

	if store != nil {
		gen.WithStore(store)
	}

	var notifiers []notify.Notifier
	if cfg.SlackEnabled() {
		notifiers = append(notifiers, slacknotify.New(cfg.SlackBotToken, cfg.SlackChannel))
	}
	if cfg.TelegramEnabled() {
		tn, err := telegramnotify.New(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram notifier unavailable")
		} else {
			notifiers = append(notifiers, tn)
		}
	}
	gen.WithNotifiers(notifiers...)

	if cfg.PublishEnabled() {
		gen.WithPublisher(publish.New(cfg.GitHubToken, cfg.PublishRepo, cfg.PublishBranch, cfg.PublishPath))
	}

	return gen
}
