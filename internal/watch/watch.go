// Package watch rebuilds a bundle whenever the compiled plugin changes.
// It watches the directory that holds the plugin file, so builds that
// replace the file through a rename are picked up as well as in-place writes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last event before
// triggering a rebuild. Linkers often write the output in several chunks.
const DefaultDebounce = 300 * time.Millisecond

// minTick bounds how often pending changes are checked.
const minTick = time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Path is the file to watch.
	Path string
	// Debounce delays the callback until events stop arriving.
	Debounce time.Duration
	// OnChange runs after each settled change. Errors are logged, not fatal.
	OnChange func(ctx context.Context) error
	Logger   *slog.Logger
}

// Watcher triggers OnChange when Path is written, created or renamed into place.
type Watcher struct {
	config  Config
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	mu      sync.Mutex
	pending bool
	last    time.Time

	runs int
}

// New creates a watcher for cfg.Path. Call Run to start it.
func New(cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watch: no path given")
	}
	if cfg.OnChange == nil {
		return nil, errors.New("watch: no change callback given")
	}
	if cfg.Debounce < 0 {
		return nil, fmt.Errorf("watch: negative debounce %s", cfg.Debounce)
	}

	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cfg.Path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultDebounce
	}

	return &Watcher{
		config:  cfg,
		path:    abs,
		watcher: fsw,
		logger:  logger,
	}, nil
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.logger.Info("watching for changes", "path", w.path, "debounce", w.config.Debounce)

	ticker := time.NewTicker(max(w.config.Debounce/2, minTick))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// Runs returns how many times OnChange has been invoked.
func (w *Watcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}

// handleFSEvent records a pending change when the event concerns the watched file.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		// Remove/Rename of the old file is followed by a Create of the new one.
		return
	}

	w.mu.Lock()
	w.pending = true
	w.last = time.Now()
	w.mu.Unlock()

	w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
}

// flushPending runs OnChange once the debounce window has passed.
func (w *Watcher) flushPending(ctx context.Context) {
	w.mu.Lock()
	if !w.pending || time.Since(w.last) < w.config.Debounce {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.runs++
	w.mu.Unlock()

	if err := w.config.OnChange(ctx); err != nil {
		w.logger.Error("rebuild failed", "error", err)
	}
}
