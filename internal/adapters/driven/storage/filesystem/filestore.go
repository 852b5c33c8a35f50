// Package filesystem stores materialised images on the local disk.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore writes files beneath a root directory.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at root.
func NewFileStore(root string) (*FileStore, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: storage root is empty", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving storage root: %w", err)
	}
	return &FileStore{root: abs}, nil
}

// Root returns the absolute storage root.
func (s *FileStore) Root() string {
	return s.root
}

// resolve maps a slash-separated relative path onto the root,
// rejecting paths that would escape it.
func (s *FileStore) resolve(rel string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(rel, "\\", "/"))
	full := filepath.Join(s.root, filepath.FromSlash(clean))
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q escapes storage root", domain.ErrInvalidInput, rel)
	}
	return full, nil
}

// EnsureDir creates the directory and any parents.
func (s *FileStore) EnsureDir(_ context.Context, dir string) error {
	full, err := s.resolve(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// WriteFile writes data to path, creating parent directories.
func (s *FileStore) WriteFile(_ context.Context, p string, data []byte) error {
	full, err := s.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", p, err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}
	return nil
}

// Exists reports whether a regular file exists at path.
func (s *FileStore) Exists(_ context.Context, p string) (bool, error) {
	full, err := s.resolve(p)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", p, err)
	}
	return info.Mode().IsRegular(), nil
}
