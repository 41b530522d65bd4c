// reactgen
//
// Generate typed, documented, Tailwind-styled React components from a
// short description using an LLM provider.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/decagondev/react-component-generator/internal/config"
)

var (
	version = "dev"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "reactgen",
	Short: "reactgen - React Component Generator",
	Long: `reactgen generates React components (TypeScript + TailwindCSS) from a
short description, using the Anthropic or OpenAI API.

  reactgen config setup        Set up API keys (first time)
  reactgen generate            Describe a component interactively
  reactgen generate --name Button --purpose "clickable button"
  reactgen list                List past generations
  reactgen show <id>           Show one generation
  reactgen serve               Start the HTTP API`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from the configured level.
// --verbose forces debug.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
}
