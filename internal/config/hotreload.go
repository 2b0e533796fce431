package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before reloading.
const DefaultDebounce = 300 * time.Millisecond

// ChangeHandler receives the config reloaded after an on-disk change.
type ChangeHandler func(cfg *AppConfig)

// Watcher reloads the config file through a Store when it changes on disk,
// so secrets are overlaid on every reload.
//
// Saves replace the file by rename, which drops a watch on the file itself,
// so the parent directory is watched and events are filtered by name.
type Watcher struct {
	store    *Store
	file     string
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu       sync.Mutex
	handlers []ChangeHandler

	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the file behind store.
func NewWatcher(store *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		store:    store,
		file:     filepath.Clean(store.Path()),
		fsw:      fsw,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}, nil
}

// OnChange registers h. Handlers run on the reload goroutine in registration order.
func (w *Watcher) OnChange(h ChangeHandler) {
	w.mu.Lock()
	w.handlers = append(w.handlers, h)
	w.mu.Unlock()
}

// Start adds the watch and begins delivering reloads.
func (w *Watcher) Start() error {
	if err := w.fsw.Add(filepath.Dir(w.file)); err != nil {
		return err
	}
	go w.loop()
	slog.Info("config watcher started", "path", w.file)
	return nil
}

// Stop ends the watch. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsw.Close()
		slog.Info("config watcher stopped", "path", w.file)
	})
}

func (w *Watcher) loop() {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.reload)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", "path", w.file, "error", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.file {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	cfg, err := w.store.Load()
	if err != nil {
		slog.Error("config reload failed", "path", w.file, "error", err)
		return
	}

	w.mu.Lock()
	handlers := append([]ChangeHandler(nil), w.handlers...)
	w.mu.Unlock()

	for _, h := range handlers {
		h(cfg)
	}
	slog.Debug("config reloaded", "path", w.file, "handlers", len(handlers))
}
