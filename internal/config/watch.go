package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vango-dev/rangeslider/internal/errors"
)

// DefaultDebounce is the quiet period before a changed file is reloaded.
const DefaultDebounce = 100 * time.Millisecond

// WatcherConfig configures the config file watcher.
type WatcherConfig struct {
	// Path is the config file to follow.
	Path string

	// Debounce is the delay before reloading after the last change.
	Debounce time.Duration

	// Logger receives reload failures.
	Logger *slog.Logger
}

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	config   WatcherConfig
	onChange func(*Config)
	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
}

// NewWatcher creates a config file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	config.Logger = config.Logger.With("component", "config-watcher", "path", config.Path)
	return &Watcher{config: config}
}

// OnChange sets the callback for successfully loaded revisions.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start watches until ctx is cancelled or Stop is called. The directory
// holding the file is watched rather than the file itself, so editors that
// save by renaming a temporary file are followed too.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.New("E104").Wrap(err)
	}
	defer fw.Close()

	abs, err := filepath.Abs(w.config.Path)
	if err != nil {
		return errors.New("E104").Wrap(err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return errors.New("E104").
			WithDetail("Cannot watch " + filepath.Dir(abs)).
			Wrap(err)
	}
	name := filepath.Base(abs)

	timer := time.NewTimer(w.config.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stopCh:
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.config.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.config.Logger.Warn("watch error", "error", err)

		case <-timer.C:
			w.reload()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.config.Path)
	if err != nil {
		w.config.Logger.Error("config reload failed, keeping previous config", "error", err)
		return
	}
	w.config.Logger.Info("config reloaded")

	w.mu.Lock()
	fn := w.onChange
	w.mu.Unlock()
	if fn != nil {
		fn(cfg)
	}
}

// Watch is a shorthand for NewWatcher, OnChange and Start.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(*Config)) error {
	w := NewWatcher(WatcherConfig{Path: path, Logger: logger})
	w.OnChange(onChange)
	return w.Start(ctx)
}
