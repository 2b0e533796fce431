// Package desktop binds the configuration and credential operations to the
// Wails webview frontend.
package desktop

import (
	"context"
	"log/slog"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/autodoc-agent/autodoc/internal/config"
	"github.com/autodoc-agent/autodoc/internal/vault"
)

// EventConfigChanged is emitted to the frontend after the config file changes on disk.
const EventConfigChanged = "config:changed"

type emitFunc func(ctx context.Context, event string, data ...interface{})

// App exposes load_config, save_config, validate_config, get_default_config,
// reset_config and the secure-credential commands as bound methods.
type App struct {
	ctx     context.Context
	store   *config.Store
	watcher *config.Watcher
	emit    emitFunc
}

func NewApp(store *config.Store) *App {
	return &App{store: store, emit: runtime.EventsEmit}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	w, err := config.NewWatcher(a.store)
	if err != nil {
		slog.Warn("desktop: config watcher unavailable", "error", err)
		return
	}
	w.OnChange(func(cfg *config.AppConfig) {
		a.emit(ctx, EventConfigChanged, cfg)
	})
	if err := w.Start(); err != nil {
		slog.Warn("desktop: config watcher failed to start", "error", err)
		w.Stop()
		return
	}
	a.watcher = w
}

func (a *App) shutdown(_ context.Context) {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
}

func (a *App) LoadConfig() (*config.AppConfig, error) {
	return a.store.Load()
}

func (a *App) SaveConfig(cfg config.AppConfig) error {
	return a.store.Save(&cfg)
}

func (a *App) ValidateConfig(cfg config.AppConfig) ([]string, error) {
	return a.store.Validate(&cfg)
}

func (a *App) GetDefaultConfig() *config.AppConfig {
	return config.Default()
}

func (a *App) ResetConfig() error {
	return a.store.Reset()
}

func (a *App) StoreSecureCredential(key, value string) error {
	return a.vault().Store(key, value)
}

func (a *App) GetSecureCredential(key string) (string, error) {
	return a.vault().Retrieve(key)
}

func (a *App) DeleteSecureCredential(key string) error {
	return a.vault().Delete(key)
}

func (a *App) HasSecureCredential(key string) bool {
	return a.vault().Exists(key)
}

func (a *App) vault() vault.Vault {
	return a.store.Vault()
}
