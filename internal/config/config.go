// Package config provides configuration management for reactgen.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for reactgen. Everything that touches a
// credential receives this object explicitly; nothing reads the
// environment after Load returns.
type Config struct {
	// LLM provider API keys.
	AnthropicAPIKey string
	OpenAIAPIKey    string

	// Provider selects the generation backend: "anthropic", "openai",
	// or "auto" (pick by available key, Anthropic first). Default: auto.
	Provider string

	// Model overrides the provider's default model name.
	Model string

	// Temperature is the sampling temperature for generation. Default: 0.5.
	Temperature float64

	// MaxTokens caps the response length. Default: 4096.
	MaxTokens int

	// OutputDir is where generated .tsx files are written. Default: ".".
	OutputDir string

	// DataDir is the directory for persistent data (SQLite DB, config file).
	DataDir string

	// DatabasePath is the full path to the SQLite history database.
	DatabasePath string

	// ServerAddr is the address the HTTP server listens on (e.g., ":7090").
	ServerAddr string

	// LogLevel sets the zerolog level: debug, info, warn, error. Default: info.
	LogLevel string

	// Slack notification (optional). Both must be set to enable.
	SlackBotToken string
	SlackChannel  string

	// Telegram notification (optional). Both must be set to enable.
	TelegramBotToken string
	TelegramChatID   int64

	// GitHub publishing (optional). Token and repo must be set to enable.
	// PublishRepo is "owner/repo"; PublishPath is the directory inside the
	// repo where components are committed.
	GitHubToken   string
	PublishRepo   string
	PublishBranch string
	PublishPath   string
}

// Load creates a Config from the config file and environment variables.
// Values are resolved in order: environment variable > config file > default.
func Load() (*Config, error) {
	// Load ~/.reactgen/config.env into the environment. godotenv never
	// overrides variables that are already set, so env vars always win.
	_ = godotenv.Load(FilePath())

	dataDir := envOr("REACTGEN_DATA_DIR", defaultDataDir())
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	cfg := &Config{
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		Provider:         envOr("REACTGEN_PROVIDER", "auto"),
		Model:            os.Getenv("REACTGEN_MODEL"),
		Temperature:      envOrFloat("REACTGEN_TEMPERATURE", 0.5),
		MaxTokens:        envOrInt("REACTGEN_MAX_TOKENS", 4096),
		OutputDir:        envOr("REACTGEN_OUTPUT_DIR", "."),
		DataDir:          dataDir,
		DatabasePath:     filepath.Join(dataDir, "reactgen.db"),
		ServerAddr:       envOr("REACTGEN_ADDR", ":7090"),
		LogLevel:         envOr("REACTGEN_LOG_LEVEL", "info"),
		SlackBotToken:    os.Getenv("SLACK_BOT_TOKEN"),
		SlackChannel:     os.Getenv("SLACK_CHANNEL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   envOrInt64("TELEGRAM_CHAT_ID", 0),
		GitHubToken:      os.Getenv("GITHUB_TOKEN"),
		PublishRepo:      os.Getenv("REACTGEN_PUBLISH_REPO"),
		PublishBranch:    envOr("REACTGEN_PUBLISH_BRANCH", "main"),
		PublishPath:      envOr("REACTGEN_PUBLISH_PATH", "src/components"),
	}

	return cfg, nil
}

// Validate checks that required configuration is present for generation.
func (c *Config) Validate() error {
	switch c.Provider {
	case "auto":
		if c.AnthropicAPIKey == "" && c.OpenAIAPIKey == "" {
			return fmt.Errorf("at least one of ANTHROPIC_API_KEY or OPENAI_API_KEY is required")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for provider %q", c.Provider)
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", c.Provider)
		}
	default:
		return fmt.Errorf("unknown provider %q (want anthropic, openai, or auto)", c.Provider)
	}
	return nil
}

// SlackEnabled returns true if Slack notifications are configured.
func (c *Config) SlackEnabled() bool {
	return c.SlackBotToken != "" && c.SlackChannel != ""
}

// TelegramEnabled returns true if Telegram notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// PublishEnabled returns true if GitHub publishing is configured.
func (c *Config) PublishEnabled() bool {
	return c.GitHubToken != "" && c.PublishRepo != ""
}

// FilePath returns the path of the config file, ~/.reactgen/config.env.
func FilePath() string {
	return filepath.Join(defaultDataDir(), "config.env")
}

func envOrFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envOrInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reactgen"
	}
	return filepath.Join(home, ".reactgen")
}
