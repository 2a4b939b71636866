// Package watch reruns a callback when a workbook changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce absorbs the burst of events a spreadsheet save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches one file. It subscribes to the parent directory because
// spreadsheet editors save by replacing the file.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(ctx context.Context)
	log      *zap.Logger
	now      func() time.Time

	pending time.Time
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func New(path string, debounce time.Duration, onChange func(ctx context.Context), log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		log:      log,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		if cerr := w.watcher.Close(); cerr != nil {
			w.log.Warn("closing watcher", zap.Error(cerr))
		}
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.log.Info("watching workbook", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.log.Warn("closing watcher", zap.Error(err))
	}
}

// Done is closed once the watch loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.debounce / 5)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			if w.due() {
				w.onChange(ctx)
			}
		}
	}
}

// handle records a relevant event; the callback fires once events stop
// arriving for the debounce period.
func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	w.log.Debug("workbook event", zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.pending = w.now()
	w.mu.Unlock()
}

// due reports whether a pending change has settled, clearing it if so.
func (w *Watcher) due() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || w.now().Sub(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}
