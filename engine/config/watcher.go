package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/session"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a config file whenever it changes and applies it to a session.
// Editing the file while the viewer runs takes effect on the next frame.
type Watcher interface {
	// Start begins watching. It returns once the watch is registered.
	Start() error

	// Close stops watching and waits for the event loop to exit.
	Close() error
}

type watcher struct {
	mu *sync.Mutex

	path     string
	sess     session.Session
	logger   *zap.Logger
	onReload func(*Config, error)

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
}

var _ Watcher = &watcher{}

// WatcherOption configures a Watcher.
type WatcherOption func(*watcher)

// WithLogger sets the watcher's logger.
func WithLogger(logger *zap.Logger) WatcherOption {
	return func(w *watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithOnReload registers a callback invoked after every reload attempt with the applied
// config, or nil and the error when the reload failed.
func WithOnReload(fn func(*Config, error)) WatcherOption {
	return func(w *watcher) {
		w.onReload = fn
	}
}

// NewWatcher creates a Watcher for path that applies reloads to s.
//
// Parameters:
//   - path: the config file to watch
//   - s: the session to apply reloads to
//   - options: functional options
//
// Returns:
//   - Watcher: the watcher, not yet started
func NewWatcher(path string, s session.Session, options ...WatcherOption) Watcher {
	w := &watcher{
		mu:     &sync.Mutex{},
		path:   filepath.Clean(path),
		sess:   s,
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(w)
	}
	return w
}

func (w *watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watcher: %w", err)
	}
	// Editors often replace the file instead of writing it, so watch the directory.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("config: watch %q: %w", w.path, err)
	}
	w.fsw = fsw
	w.done = make(chan struct{})

	w.wg.Add(1)
	go w.loop(fsw, w.done)
	w.logger.Info("watching config", zap.String("path", w.path))
	return nil
}

func (w *watcher) loop(fsw *fsnotify.Watcher, done chan struct{}) {
	defer w.wg.Done()
	for {
		select {
		case <-done:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *watcher) reload() {
	cfg, err := Load(w.path)
	if err == nil {
		err = cfg.Apply(w.sess)
	}
	if err != nil {
		// A half-written file fails to decode; the next write event retries.
		w.logger.Warn("config reload failed", zap.String("path", w.path), zap.Error(err))
		cfg = nil
	} else {
		w.logger.Info("config reloaded", zap.String("path", w.path))
	}
	if w.onReload != nil {
		w.onReload(cfg, err)
	}
}

func (w *watcher) Close() error {
	w.mu.Lock()
	fsw := w.fsw
	done := w.done
	w.fsw = nil
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	close(done)
	err := fsw.Close()
	w.wg.Wait()
	return err
}
