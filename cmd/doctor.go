package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/autodoc-agent/autodoc/internal/config"
	"github.com/autodoc-agent/autodoc/internal/vault"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, keychain and storage health",
		Run: func(cmd *cobra.Command, args []string) {
			runDoctor()
		},
	}
}

func runDoctor() {
	fmt.Println(titleStyle.Render("autodoc doctor"))
	fmt.Printf("  Version:  %s\n", Version)
	fmt.Printf("  OS:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println()

	store := openStore()

	// Config
	cfg := config.Default()
	fmt.Printf("  Config:   %s", store.Path())
	if _, err := os.Stat(store.Path()); err != nil {
		fmt.Println(" " + warnStyle.Render("(NOT FOUND, showing defaults)"))
	} else {
		loaded, err := store.Load()
		if err != nil {
			fmt.Println(" " + errStyle.Render("(LOAD ERROR)"))
			fmt.Printf("  %s\n", err)
			return
		}
		cfg = loaded
		fmt.Println(" " + okStyle.Render("(OK)"))
	}

	// Keychain
	fmt.Println()
	fmt.Printf("  Keychain (%s):\n", vault.ServiceName)
	kc := store.Vault()
	for _, key := range []string{vault.KeyClaudeAPIKey, vault.KeyTargetPassword} {
		if kc.Exists(key) {
			fmt.Printf("    %-18s %s\n", key+":", okStyle.Render("stored"))
		} else {
			fmt.Printf("    %-18s %s\n", key+":", warnStyle.Render("not stored"))
		}
	}

	// Paths
	fmt.Println()
	fmt.Println("  Paths:")
	checkPath(store.Paths(), "snapshots", cfg.Storage.SnapshotStoragePath)
	checkPath(store.Paths(), "screenshots", cfg.Storage.ScreenshotStoragePath)
	checkPath(store.Paths(), "database", cfg.Storage.DatabasePath)
	if cfg.Auth.GoogleCredentialsPath != "" {
		checkPath(store.Paths(), "google creds", cfg.Auth.GoogleCredentialsPath)
	}
	if cfg.Auth.GoogleTokenPath != "" {
		checkPath(store.Paths(), "google token", cfg.Auth.GoogleTokenPath)
	}

	// Database
	fmt.Println()
	status, err := checkDatabase(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("  Database: %s\n", errStyle.Render(err.Error()))
	} else {
		fmt.Printf("  Database: %s\n", okStyle.Render(status))
	}

	fmt.Println()
	fmt.Println("Doctor check complete.")
}

func checkPath(pv *config.PathValidator, name, path string) {
	if _, err := pv.Validate(path); err != nil {
		fmt.Printf("    %-14s %s\n", name+":", errStyle.Render(err.Error()))
		return
	}
	fmt.Printf("    %-14s %s\n", name+":", path)
}

// checkDatabase runs a read-only SQLite integrity check on path.
// A database that does not exist yet is not an error.
func checkDatabase(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "not created yet", nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return "", fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	var result string
	if err := db.QueryRow("PRAGMA quick_check").Scan(&result); err != nil {
		return "", fmt.Errorf("quick_check: %w", err)
	}
	if result != "ok" {
		return "", fmt.Errorf("quick_check: %s", result)
	}
	return "ok", nil
}
