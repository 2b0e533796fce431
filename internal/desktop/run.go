package desktop

import (
	"embed"
	"strings"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/autodoc-agent/autodoc/internal/config"
)

//go:embed all:frontend/dist
var assets embed.FS

// Run opens the desktop window and blocks until it is closed.
// cfg supplies window behaviour; the bound App reads and writes through store.
func Run(store *config.Store, cfg *config.AppConfig) error {
	app := NewApp(store)

	return wails.Run(&options.App{
		Title:             cfg.Basic.AppName,
		Width:             1200,
		Height:            800,
		MinWidth:          900,
		MinHeight:         600,
		HideWindowOnClose: cfg.Basic.MinimizeToTray,
		LogLevel:          LogLevel(cfg.Advanced.LogLevel),
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind:       []interface{}{app},
	})
}

// LogLevel maps the advanced.log_level setting onto the Wails logger.
func LogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "trace":
		return logger.TRACE
	case "debug":
		return logger.DEBUG
	case "warn", "warning":
		return logger.WARNING
	case "error":
		return logger.ERROR
	default:
		return logger.INFO
	}
}
