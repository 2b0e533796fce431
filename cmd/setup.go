package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/autodoc-agent/autodoc/internal/config"
	"github.com/autodoc-agent/autodoc/internal/vault"
)

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactive setup wizard for the API key, model and exploration limits",
		Run: func(cmd *cobra.Command, args []string) {
			runSetup()
		},
	}
}

var languageOptions = []SelectOption[string]{
	{Label: "繁體中文 (zh-TW)", Value: "zh-TW"},
	{Label: "English (en)", Value: "en"},
}

func runSetup() {
	fmt.Println(banner("AutoDoc Agent Setup Wizard", 46))
	fmt.Println()

	store := openStore()
	cfg := mustLoad(store)
	fmt.Printf("Config: %s\n\n", store.Path())

	keyHint := "Stored in the OS keychain, never in the config file"
	if cfg.Auth.ClaudeAPIKey != "" {
		keyHint = fmt.Sprintf("Current: %s (leave empty to keep)", vault.Mask(cfg.Auth.ClaudeAPIKey))
	}
	apiKey, err := promptPassword("Claude API key", keyHint)
	if err != nil {
		fmt.Println("Cancelled.")
		return
	}
	if apiKey != "" {
		cfg.Auth.ClaudeAPIKey = apiKey
	}

	if cfg.Auth.ClaudeModel, err = promptString("Claude model", "", cfg.Auth.ClaudeModel); err != nil {
		fmt.Println("Cancelled.")
		return
	}

	langIdx := 0
	for i, opt := range languageOptions {
		if opt.Value == cfg.Basic.Language {
			langIdx = i
		}
	}
	if cfg.Basic.Language, err = promptSelect("Interface language", languageOptions, langIdx); err != nil {
		fmt.Println("Cancelled.")
		return
	}

	if cfg.Exploration.MaxDepth, err = promptInt(
		fmt.Sprintf("Max exploration depth (%d-%d)", config.MinDepth, config.MaxDepth),
		cfg.Exploration.MaxDepth, config.MinDepth, config.MaxDepth); err != nil {
		fmt.Println("Cancelled.")
		return
	}
	if cfg.Exploration.MaxPages, err = promptInt(
		fmt.Sprintf("Max pages per run (%d-%d)", config.MinPages, config.MaxPages),
		cfg.Exploration.MaxPages, config.MinPages, config.MaxPages); err != nil {
		fmt.Println("Cancelled.")
		return
	}

	fmt.Println()
	msgs, err := store.Validate(cfg)
	var verr *config.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Println("Validation found problems:")
		for _, p := range verr.Problems {
			fmt.Printf("  - %s\n", p)
		}
		saveAnyway, perr := promptConfirm("Save anyway?", false)
		if perr != nil || !saveAnyway {
			fmt.Println("Not saved.")
			return
		}
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	default:
		for _, m := range msgs {
			fmt.Println(m)
		}
	}

	if err := store.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved to %s.\n", store.Path())
}

// banner draws title centered in a double-line box with the given inner width.
func banner(title string, width int) string {
	n := utf8.RuneCountInString(title)
	if n > width {
		width = n
	}
	left := (width - n) / 2
	right := width - n - left
	bar := strings.Repeat("═", width)
	return "╔" + bar + "╗\n" +
		"║" + strings.Repeat(" ", left) + title + strings.Repeat(" ", right) + "║\n" +
		"╚" + bar + "╝"
}
