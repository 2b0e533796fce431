package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autodoc-agent/autodoc/internal/vault"
)

func credentialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "credential",
		Aliases: []string{"cred"},
		Short:   "Manage secrets stored in the OS keychain",
		Long: fmt.Sprintf("Manage secrets stored under the %q keychain service.\nKnown keys: %s, %s.",
			vault.ServiceName, vault.KeyClaudeAPIKey, vault.KeyTargetPassword),
	}
	cmd.AddCommand(credentialSetCmd())
	cmd.AddCommand(credentialGetCmd())
	cmd.AddCommand(credentialDeleteCmd())
	cmd.AddCommand(credentialHasCmd())
	cmd.AddCommand(credentialMigrateCmd())
	return cmd
}

func credentialSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Store a credential (prompts when value is omitted)",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			key := args[0]
			var value string
			if len(args) == 2 {
				value = args[1]
			} else {
				v, err := promptPassword("Value for "+key, "Input is hidden and stored in the OS keychain")
				if err != nil {
					fmt.Println("Cancelled.")
					return
				}
				value = v
			}
			if value == "" {
				fmt.Fprintln(os.Stderr, "Error: empty value")
				os.Exit(1)
			}

			if err := vault.NewKeychain(vault.ServiceName).Store(key, value); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			fmt.Printf("Stored %s in keychain.\n", key)
		},
	}
}

func credentialGetCmd() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a credential (masked unless --reveal)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			value, err := vault.NewKeychain(vault.ServiceName).Retrieve(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				if errors.Is(err, vault.ErrNotFound) {
					os.Exit(2)
				}
				os.Exit(1)
			}
			if !reveal {
				value = vault.Mask(value)
			}
			fmt.Println(value)
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the full value")
	return cmd
}

func credentialDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a credential (succeeds if absent)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := vault.NewKeychain(vault.ServiceName).Delete(args[0]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			fmt.Printf("Deleted %s.\n", args[0])
		},
	}
}

func credentialHasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "has <key>",
		Short: "Report whether a credential is stored",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(vault.NewKeychain(vault.ServiceName).Exists(args[0]))
		},
	}
}

func credentialMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Move plaintext secrets from the config file into the keychain",
		Run: func(cmd *cobra.Command, args []string) {
			store := openStore()
			keys, err := store.MigrateLegacySecrets()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			if len(keys) == 0 {
				fmt.Println("No plaintext credentials found.")
				return
			}
			for _, k := range keys {
				fmt.Printf("Migrated %s to keychain.\n", k)
			}
		},
	}
}
