package memory

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore is an in-memory implementation of driven.FileStore.
type FileStore struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// WriteErr, when set, is returned by every WriteFile call.
	WriteErr error
}

// NewFileStore creates a new in-memory file store.
func NewFileStore() *FileStore {
	return &FileStore{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// EnsureDir records the directory and its parents.
func (s *FileStore) EnsureDir(_ context.Context, dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for dir = path.Clean(dir); dir != "." && dir != "/"; dir = path.Dir(dir) {
		s.dirs[dir] = true
	}
	return nil
}

// WriteFile stores a copy of data at path.
func (s *FileStore) WriteFile(_ context.Context, p string, data []byte) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path.Clean(p)] = append([]byte(nil), data...)
	return nil
}

// Exists reports whether a file was written at path.
func (s *FileStore) Exists(_ context.Context, p string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[path.Clean(p)]
	return ok, nil
}

// ReadFile returns the stored bytes and whether they exist.
func (s *FileStore) ReadFile(p string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[path.Clean(p)]
	return data, ok
}

// HasDir reports whether EnsureDir was called for dir or a descendant.
func (s *FileStore) HasDir(dir string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirs[path.Clean(dir)]
}

// Paths returns all stored file paths under prefix, sorted.
func (s *FileStore) Paths(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for p := range s.files {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
