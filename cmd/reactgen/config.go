package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decagondev/react-component-generator/internal/config"
)

// configKey describes a single configuration value.
type configKey struct {
	Key    string
	Desc   string
	Secret bool
	Prefix string // expected prefix for validation (e.g. "sk-"), empty = no check
}

// allConfigKeys lists every configurable value in display order.
var allConfigKeys = []configKey{
	{"ANTHROPIC_API_KEY", "Anthropic API key", true, "sk-ant-"},
	{"OPENAI_API_KEY", "OpenAI API key", true, "sk-"},
	{"REACTGEN_PROVIDER", "Provider (anthropic, openai, auto)", false, ""},
	{"REACTGEN_MODEL", "Model name override", false, ""},
	{"REACTGEN_OUTPUT_DIR", "Directory for generated .tsx files", false, ""},
	{"REACTGEN_LOG_LEVEL", "Log level (debug, info, warn, error)", false, ""},
	{"SLACK_BOT_TOKEN", "Slack Bot User OAuth Token (xoxb-...)", true, "xoxb-"},
	{"SLACK_CHANNEL", "Slack channel ID for notifications", false, ""},
	{"TELEGRAM_BOT_TOKEN", "Telegram bot token (from @BotFather)", true, ""},
	{"TELEGRAM_CHAT_ID", "Telegram chat ID for notifications", false, ""},
	{"GITHUB_TOKEN", "GitHub token for publishing components", true, ""},
	{"REACTGEN_PUBLISH_REPO", "GitHub repo for publishing (owner/repo)", false, ""},
	{"REACTGEN_PUBLISH_BRANCH", "Branch for published components", false, ""},
	{"REACTGEN_PUBLISH_PATH", "Directory in the repo for components", false, ""},
}

var validProviders = map[string]bool{
	"anthropic": true, "openai": true, "auto": true,
}

// ---------------------------------------------------------------------------
// Cobra commands
// ---------------------------------------------------------------------------

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage reactgen configuration",
	Long: `Manage reactgen configuration (API keys, provider, notifications).

Configuration is stored in ~/.reactgen/config.env and can be overridden
by environment variables.

  reactgen config setup              Interactive setup wizard
  reactgen config set KEY VALUE      Set a single config value
  reactgen config show               Show current configuration
  reactgen config path               Print config file path`,
}

var (
	setupNonInteractive bool
	setupAnthropicKey   string
	setupOpenAIKey      string
)

var configSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Long: `Guided setup that walks you through configuring reactgen step by step.

Non-interactive mode for CI/scripting:
  reactgen config setup --non-interactive --anthropic-key=sk-ant-xxx`,
	RunE: runConfigSetup,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a config value",
	Long: `Set a single configuration value. Example:
  reactgen config set ANTHROPIC_API_KEY sk-ant-xxxxxxxxxxxx`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display all configured values. Secrets are masked.",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(config.FilePath())
		return nil
	},
}

func init() {
	configSetupCmd.Flags().BoolVar(&setupNonInteractive, "non-interactive", false, "Run without prompts (requires an API key flag)")
	configSetupCmd.Flags().StringVar(&setupAnthropicKey, "anthropic-key", "", "Anthropic API key (non-interactive mode)")
	configSetupCmd.Flags().StringVar(&setupOpenAIKey, "openai-key", "", "OpenAI API key (non-interactive mode)")

	configCmd.AddCommand(configSetupCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// ---------------------------------------------------------------------------
// Config file helpers
// ---------------------------------------------------------------------------

// loadConfigFile reads key=value pairs from the config file.
func loadConfigFile() (map[string]string, error) {
	values := make(map[string]string)
	path := config.FilePath()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			values[parts[0]] = parts[1]
		}
	}
	return values, scanner.Err()
}

// saveConfigFile writes key=value pairs to the config file.
func saveConfigFile(values map[string]string) error {
	path := config.FilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "# reactgen configuration")
	fmt.Fprintln(f, "# Managed by: reactgen config")
	fmt.Fprintln(f, "# Environment variables override these values.")
	fmt.Fprintln(f)

	// Write in a stable order: known keys first, then any extras.
	written := make(map[string]bool)
	for _, ck := range allConfigKeys {
		if v, ok := values[ck.Key]; ok && v != "" {
			fmt.Fprintf(f, "%s=%s\n", ck.Key, v)
			written[ck.Key] = true
		}
	}

	var extras []string
	for k := range values {
		if !written[k] && values[k] != "" {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	for _, k := range extras {
		fmt.Fprintf(f, "%s=%s\n", k, values[k])
	}

	return nil
}

// effectiveValue returns the current value for a key, preferring env vars
// over the config file.
func effectiveValue(key string, fileValues map[string]string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fileValues[key]
}

// maskSecret masks a secret string, showing only the first 4 and last 4 characters.
func maskSecret(s string) string {
	if len(s) <= 12 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}

func findKey(name string) configKey {
	for _, ck := range allConfigKeys {
		if ck.Key == name {
			return ck
		}
	}
	return configKey{Key: name}
}

// ---------------------------------------------------------------------------
// Interactive helpers
// ---------------------------------------------------------------------------

// wizard holds shared state for the interactive setup.
type wizard struct {
	reader     *bufio.Reader
	fileValues map[string]string
	changed    int
}

func newWizard(fileValues map[string]string) *wizard {
	return &wizard{
		reader:     bufio.NewReader(os.Stdin),
		fileValues: fileValues,
	}
}

// askYesNo asks a yes/no question and returns true for yes.
func (w *wizard) askYesNo(prompt string, defaultYes bool) (bool, error) {
	hint := "[Y/n]"
	if !defaultYes {
		hint = "[y/N]"
	}
	fmt.Printf("  %s %s ", prompt, hint)
	input, err := w.reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return defaultYes, nil
	}
	return input == "y" || input == "yes", nil
}

// askValue prompts for a single config value with validation.
// Returns true if a new value was accepted.
func (w *wizard) askValue(ck configKey) (bool, error) {
	current := effectiveValue(ck.Key, w.fileValues)

	status := "\033[31m✗ not set\033[0m"
	if current != "" {
		if ck.Secret {
			status = fmt.Sprintf("\033[32m✓ set\033[0m (%s)", maskSecret(current))
		} else {
			status = fmt.Sprintf("\033[32m✓ set\033[0m (%s)", current)
		}
	}

	fmt.Printf("  %s  %s\n", ck.Key, status)

	for {
		fmt.Print("  Paste value (Enter to keep): ")
		input, err := w.reader.ReadString('\n')
		if err != nil {
			return false, err
		}
		input = strings.TrimSpace(input)

		// Enter = keep current.
		if input == "" {
			return false, nil
		}

		if ck.Prefix != "" && !strings.HasPrefix(input, ck.Prefix) {
			fmt.Printf("  \033[33m!\033[0m  That doesn't look right — expected prefix \"%s\". Try again or press Enter to skip.\n", ck.Prefix)
			continue
		}

		if strings.HasSuffix(ck.Key, "_PUBLISH_REPO") {
			if !strings.Contains(input, "/") || strings.HasPrefix(input, "/") {
				fmt.Print("  \033[33m!\033[0m  Expected format: owner/repo (e.g. myorg/myapp). Try again or press Enter to skip.\n")
				continue
			}
		}

		w.fileValues[ck.Key] = input
		w.changed++
		fmt.Printf("  \033[32m✓ saved\033[0m\n")
		return true, nil
	}
}

// ---------------------------------------------------------------------------
// Setup wizard
// ---------------------------------------------------------------------------

func runConfigSetup(cmd *cobra.Command, args []string) error {
	fileValues, err := loadConfigFile()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	if setupNonInteractive {
		return runNonInteractiveSetup(fileValues)
	}

	w := newWizard(fileValues)

	fmt.Println()
	fmt.Println("  \033[1mreactgen Setup\033[0m")
	fmt.Println("  ──────────────")
	fmt.Println("  This wizard will walk you through configuring reactgen.")
	fmt.Println("  Press Enter at any prompt to keep the current value.")
	fmt.Println()

	// ── Step 1: LLM API Key ─────────────────────────────────────────────
	fmt.Println("  \033[1mStep 1 of 4 — LLM API Key (at least one required)\033[0m")
	fmt.Println("  Generation needs an LLM API key.")
	fmt.Println("  You need at least one of Anthropic (Claude) or OpenAI.")
	fmt.Println()

	if _, err := w.askValue(findKey("ANTHROPIC_API_KEY")); err != nil {
		return err
	}
	fmt.Println()
	if _, err := w.askValue(findKey("OPENAI_API_KEY")); err != nil {
		return err
	}

	if effectiveValue("ANTHROPIC_API_KEY", w.fileValues) == "" &&
		effectiveValue("OPENAI_API_KEY", w.fileValues) == "" {
		fmt.Println()
		fmt.Println("  \033[33m!\033[0m  Warning: No LLM key configured. You'll need at least one to generate components.")
	}
	fmt.Println()

	// ── Step 2: Provider ─────────────────────────────────────────────────
	fmt.Println("  \033[1mStep 2 of 4 — Provider\033[0m")
	fmt.Println("  Choose which API handles generation.")
	fmt.Println("  Options: anthropic, openai, auto (default, picks by available key)")
	fmt.Println()

	current := effectiveValue("REACTGEN_PROVIDER", w.fileValues)
	if current == "" {
		current = "auto"
	}
	fmt.Printf("  Current: %s\n", current)
	for {
		fmt.Print("  Provider (Enter to keep): ")
		input, err := w.reader.ReadString('\n')
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			break
		}
		if !validProviders[input] {
			fmt.Printf("  \033[33m!\033[0m  Unknown provider %q. Choose: anthropic, openai, auto\n", input)
			continue
		}
		w.fileValues["REACTGEN_PROVIDER"] = input
		w.changed++
		fmt.Printf("  \033[32m✓ saved\033[0m\n")
		break
	}
	fmt.Println()

	// ── Step 3: Notifications ────────────────────────────────────────────
	fmt.Println("  \033[1mStep 3 of 4 — Notifications (optional)\033[0m")
	fmt.Println("  Get a Slack or Telegram message when a component is generated.")
	fmt.Println()

	doNotify, err := w.askYesNo("Set up notifications?", false)
	if err != nil {
		return err
	}
	if doNotify {
		for _, key := range []string{"SLACK_BOT_TOKEN", "SLACK_CHANNEL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID"} {
			fmt.Println()
			if _, err := w.askValue(findKey(key)); err != nil {
				return err
			}
		}
	}
	fmt.Println()

	// ── Step 4: GitHub publishing ────────────────────────────────────────
	fmt.Println("  \033[1mStep 4 of 4 — GitHub publishing (optional)\033[0m")
	fmt.Println("  Commit generated components straight to a repository with --push.")
	fmt.Println()

	doPublish, err := w.askYesNo("Set up GitHub publishing?", false)
	if err != nil {
		return err
	}
	if doPublish {
		for _, key := range []string{"GITHUB_TOKEN", "REACTGEN_PUBLISH_REPO", "REACTGEN_PUBLISH_BRANCH", "REACTGEN_PUBLISH_PATH"} {
			fmt.Println()
			if _, err := w.askValue(findKey(key)); err != nil {
				return err
			}
		}
	}
	fmt.Println()

	if err := saveConfigFile(w.fileValues); err != nil {
		return err
	}

	if w.changed == 0 {
		fmt.Println("  Nothing changed. Configuration is unchanged.")
	} else {
		fmt.Printf("  \033[32m✓\033[0m Saved %d value(s) to %s\n", w.changed, config.FilePath())
	}
	fmt.Println()
	fmt.Println("  Try it: reactgen generate")
	return nil
}

func runNonInteractiveSetup(fileValues map[string]string) error {
	if setupAnthropicKey == "" && setupOpenAIKey == "" {
		return fmt.Errorf("--non-interactive requires --anthropic-key or --openai-key")
	}
	if setupAnthropicKey != "" {
		fileValues["ANTHROPIC_API_KEY"] = setupAnthropicKey
	}
	if setupOpenAIKey != "" {
		fileValues["OPENAI_API_KEY"] = setupOpenAIKey
	}
	if err := saveConfigFile(fileValues); err != nil {
		return err
	}
	fmt.Printf("Configuration saved to %s\n", config.FilePath())
	return nil
}

// ---------------------------------------------------------------------------
// set / show
// ---------------------------------------------------------------------------

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	known := false
	for _, ck := range allConfigKeys {
		if ck.Key == key {
			known = true
			break
		}
	}
	if !known {
		fmt.Printf("Warning: %s is not a recognized configuration key.\n", key)
	}

	values, err := loadConfigFile()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	values[key] = value
	if err := saveConfigFile(values); err != nil {
		return err
	}
	fmt.Printf("Set %s in %s\n", key, config.FilePath())
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	values, err := loadConfigFile()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	fmt.Printf("Config file: %s\n\n", config.FilePath())
	for _, ck := range allConfigKeys {
		v := effectiveValue(ck.Key, values)
		display := v
		switch {
		case v == "":
			display = "(not set)"
		case ck.Secret:
			display = maskSecret(v)
		}
		source := ""
		if os.Getenv(ck.Key) != "" {
			source = "  [env]"
		}
		fmt.Printf("  %-26s %s%s\n", ck.Key, display, source)
	}
	return nil
}
