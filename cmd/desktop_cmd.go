package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autodoc-agent/autodoc/internal/desktop"
)

func desktopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "desktop",
		Short: "Open the settings window",
		Run: func(cmd *cobra.Command, args []string) {
			store := openStore()
			cfg := mustLoad(store)
			if !verbose {
				setupLogging(parseLogLevel(cfg.Advanced.LogLevel))
			}

			if err := desktop.Run(store, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
		},
	}
}
