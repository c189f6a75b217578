// Package watcher invalidates the corpus cache when a source file changes on
// disk. It watches the parent directories of the corpus files because editors
// and download jobs replace files by rename.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher watches a fixed set of files and fires one callback per burst of
// change events.
type Watcher struct {
	files    map[string]struct{} // absolute paths of watched files
	dirs     []string
	onChange func(path string)
	debounce time.Duration
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	timers   map[string]*time.Timer
	done     chan struct{}
	started  bool
	stopOnce sync.Once
	logger   *zap.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New creates a watcher over the given file paths. onChange is called with
// the changed file path after the debounce window closes.
func New(paths []string, onChange func(path string), opts ...Option) *Watcher {
	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		onChange: onChange,
		debounce: defaultDebounce,
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	seen := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			w.mu.Unlock()
			return err
		}
	}
	w.watcher = watcher
	w.started = true
	if w.logger != nil {
		w.logger.Debug("watcher starting", zap.Strings("dirs", w.dirs), zap.Int("files", len(w.files)))
	}
	w.mu.Unlock()
	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil && w.logger != nil {
				w.logger.Debug("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		abs = ev.Name
	}
	if _, ok := w.files[abs]; !ok {
		return
	}
	if w.logger != nil {
		w.logger.Debug("corpus file event", zap.String("path", abs), zap.String("op", ev.Op.String()))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.timers[abs]; ok {
		timer.Stop()
	}
	w.timers[abs] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, abs)
		w.mu.Unlock()
		w.onChange(abs)
	})
}

// Stop stops the watcher and cancels pending callbacks.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		for path, timer := range w.timers {
			timer.Stop()
			delete(w.timers, path)
		}
		if w.watcher != nil {
			_ = w.watcher.Close()
		}
		w.mu.Unlock()
	})
}
