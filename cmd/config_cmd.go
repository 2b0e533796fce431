package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/autodoc-agent/autodoc/internal/config"
	"github.com/autodoc-agent/autodoc/internal/vault"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and manage configuration",
	}
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configPathCmd())
	cmd.AddCommand(configValidateCmd())
	cmd.AddCommand(configResetCmd())
	cmd.AddCommand(configDefaultsCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration (secrets masked)",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoad(openStore())
			out, err := renderConfig(cfg, format)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			fmt.Print(out)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "json", "output format: json or yaml")
	return cmd
}

func configDefaultsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Display the built-in default configuration",
		Run: func(cmd *cobra.Command, args []string) {
			out, err := renderConfig(config.Default(), format)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			fmt.Print(out)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "json", "output format: json or yaml")
	return cmd
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(resolveConfigPath())
		},
	}
}

func configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration (creates the snapshot directory when valid)",
		Run: func(cmd *cobra.Command, args []string) {
			store := openStore()
			cfg := mustLoad(store)

			msgs, err := store.Validate(cfg)
			var verr *config.ValidationError
			switch {
			case errors.As(err, &verr):
				fmt.Fprintf(os.Stderr, "Invalid config at %s:\n", store.Path())
				for _, p := range verr.Problems {
					fmt.Fprintf(os.Stderr, "  - %s\n", p)
				}
				os.Exit(1)
			case err != nil:
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			for _, m := range msgs {
				fmt.Println(m)
			}
		},
	}
}

func configResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the config file with defaults (keychain entries are kept)",
		Run: func(cmd *cobra.Command, args []string) {
			store := openStore()
			if !yes {
				ok, err := promptConfirm(fmt.Sprintf("Reset %s to defaults?", store.Path()), false)
				if err != nil || !ok {
					fmt.Println("Cancelled.")
					return
				}
			}
			if err := store.Reset(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			fmt.Printf("Config at %s reset to defaults.\n", store.Path())
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

// renderConfig formats cfg as JSON or YAML with secrets masked.
func renderConfig(cfg *config.AppConfig, format string) (string, error) {
	redacted, err := redactConfig(cfg)
	if err != nil {
		return "", err
	}
	switch format {
	case "yaml", "yml":
		data, err := yaml.Marshal(redacted)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "json", "":
		data, err := json.MarshalIndent(redacted, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// redactConfig returns a generic copy of cfg with secrets masked.
func redactConfig(cfg *config.AppConfig) (map[string]interface{}, error) {
	if cfg == nil {
		return nil, errors.New("no config to render")
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	redactMap(raw)
	return raw, nil
}

var secretKeys = map[string]bool{
	vault.KeyClaudeAPIKey:   true,
	vault.KeyTargetPassword: true,
	"api_key":               true,
	"password":              true,
	"token":                 true,
	"secret":                true,
}

func redactMap(m map[string]interface{}) {
	for k, v := range m {
		if secretKeys[k] {
			if s, ok := v.(string); ok {
				m[k] = vault.Mask(s)
			}
		} else if sub, ok := v.(map[string]interface{}); ok {
			redactMap(sub)
		}
	}
}
