package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"timekeeper/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads the settings file when it changes on disk and hands the
// parsed settings to onChange. onChange runs on the watcher's goroutine.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(preferences.Settings)
	debounce time.Duration
	logger   *slog.Logger
	reloadCh chan struct{}
	doneCh   chan struct{}
	once     sync.Once
}

// NewWatcher creates a settings watcher for path.
func NewWatcher(path string, onChange func(preferences.Settings)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	return &Watcher{
		path:     absPath,
		watcher:  watcher,
		onChange: onChange,
		debounce: defaultDebounce,
		logger:   slog.Default(),
		reloadCh: make(chan struct{}, 1),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce overrides how long the watcher waits for writes to settle.
func (w *Watcher) SetDebounce(debounce time.Duration) {
	if debounce > 0 {
		w.debounce = debounce
	}
}

// SetLogger replaces the default logger.
func (w *Watcher) SetLogger(logger *slog.Logger) {
	if logger != nil {
		w.logger = logger
	}
}

// Start watches the directory holding the settings file. Editors often
// replace files on save, which a watch on the file itself would miss.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory %s: %w", dir, err)
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch settings directory %s: %w", dir, err)
	}

	w.logger.Info("Watching settings file", "path", w.path)
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.doneCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	fileName := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.doneCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != fileName {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.logger.Debug("Settings file changed", "file", event.Name, "op", event.Op.String())
				w.triggerReload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Settings watcher error", "error", err)
		}
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-w.doneCh:
			stop()
			return
		case <-w.reloadCh:
			stop()
			timer = time.AfterFunc(w.debounce, w.reload)
		}
	}
}

func (w *Watcher) triggerReload() {
	select {
	case w.reloadCh <- struct{}{}:
	default:
	}
}

func (w *Watcher) reload() {
	select {
	case <-w.doneCh:
		return
	default:
	}

	settings, err := LoadSettings(w.path)
	if err != nil {
		w.logger.Error("Failed to reload settings", "path", w.path, "error", err)
		return
	}
	w.logger.Info("Settings reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(settings)
	}
}
