package catalog

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Store serves the current dataset to concurrent readers and swaps it atomically on reload.
type Store struct {
	path    string
	logger  *slog.Logger
	current atomic.Pointer[Dataset]

	mu       sync.Mutex
	onChange []func(*Dataset)
}

// NewStore loads path (or the demo dataset when empty) and returns a ready store.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ds, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, logger: logger}
	s.current.Store(ds)
	return s, nil
}

// NewStaticStore wraps an already loaded dataset. Reload is a no-op for it.
func NewStaticStore(ds *Dataset) *Store {
	s := &Store{logger: slog.Default()}
	s.current.Store(ds)
	return s
}

func (s *Store) Path() string { return s.path }

func (s *Store) Current() *Dataset { return s.current.Load() }

// OnChange registers fn to run after every successful reload that changed the data.
func (s *Store) OnChange(fn func(*Dataset)) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// Reload re-reads the backing file. On error the previous dataset stays in place.
// It reports whether the dataset was replaced.
func (s *Store) Reload() (bool, error) {
	if s.path == "" {
		return false, nil
	}
	ds, err := Load(s.path)
	if err != nil {
		s.logger.Warn("dataset reload rejected, keeping previous", "path", s.path, "error", err)
		return false, fmt.Errorf("reload: %w", err)
	}
	prev := s.current.Load()
	if prev != nil && prev.Digest == ds.Digest {
		return false, nil
	}
	s.current.Store(ds)
	s.logger.Info("dataset reloaded",
		"path", s.path,
		"sha256", ds.Digest,
		"instances", len(ds.Instances),
		"non_compliant", len(ds.NonCompliant()))

	s.mu.Lock()
	hooks := append([]func(*Dataset){}, s.onChange...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(ds)
	}
	return true, nil
}
