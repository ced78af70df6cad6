package catalog

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 300 * time.Millisecond

// Watcher reloads a Store when its backing file changes on disk. Events are
// debounced so an editor's write-rename-chmod burst triggers one reload.
type Watcher struct {
	store    *Store
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher

	mu      sync.Mutex
	pending bool
	started bool
	done    chan struct{}
}

func NewWatcher(store *Store, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if store == nil || store.Path() == "" {
		return nil, errors.New("watcher requires a file-backed store")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{store: store, debounce: debounce, logger: logger, fsw: fsw, done: make(chan struct{})}, nil
}

// Start watches the directory holding the dataset file. Watching the directory
// rather than the file survives editors that replace the file on save.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.store.Path())
	if err := w.fsw.Add(dir); err != nil {
		_ = w.fsw.Close()
		return err
	}
	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go w.loop(ctx)
	w.logger.Info("dataset watcher started", "path", w.store.Path(), "debounce", w.debounce)
	return nil
}

// Stop closes the underlying watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	err := w.fsw.Close()
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if started {
		<-w.done
	}
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()
	target := filepath.Clean(w.store.Path())

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.mu.Lock()
				w.pending = true
				w.mu.Unlock()
				w.logger.Debug("dataset change detected", "path", ev.Name, "op", ev.Op.String())
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("dataset watcher error", "error", err)
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if !w.pending {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.mu.Unlock()
	// Reload logs its own rejection; the previous dataset keeps serving.
	_, _ = w.store.Reload()
}
