package driven

import "context"

// FileStore persists binary files under a storage root.
// Paths are slash-separated and relative to the root.
// Writes are write-if-absent from the caller's point of view: callers check
// Exists first and never compare content of existing files.
type FileStore interface {
	// EnsureDir creates the directory and any parents.
	EnsureDir(ctx context.Context, dir string) error

	// WriteFile writes data to path, replacing any existing file.
	WriteFile(ctx context.Context, path string, data []byte) error

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)
}
