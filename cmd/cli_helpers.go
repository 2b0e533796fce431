package cmd

import (
	"fmt"
	"os"

	"github.com/autodoc-agent/autodoc/internal/config"
	"github.com/autodoc-agent/autodoc/internal/vault"
)

// resolveConfigPath returns the --config flag value, falling back to
// $AUTODOC_CONFIG and then the platform default.
func resolveConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

// openStore returns a config store backed by the OS keychain.
func openStore() *config.Store {
	return config.NewStore(resolveConfigPath(), vault.NewKeychain(vault.ServiceName), nil)
}

// mustLoad loads the config or exits with a message.
func mustLoad(store *config.Store) *config.AppConfig {
	cfg, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %s\n", err)
		os.Exit(1)
	}
	return cfg
}
