package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ordersnap/internal/logger"
)

// DefaultSettle is how long a file must be quiet before it is reported.
const DefaultSettle = 500 * time.Millisecond

// snapshotExtensions are the file types accepted from the inbox.
var snapshotExtensions = map[string]bool{
	".mhtml": true,
	".mht":   true,
	".html":  true,
	".htm":   true,
}

// IsSnapshotFile reports whether name looks like a saved snapshot.
func IsSnapshotFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return snapshotExtensions[strings.ToLower(filepath.Ext(base))]
}

// Watcher reports snapshot files written into a directory.
type Watcher struct {
	dir    string
	settle time.Duration

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	pending map[string]time.Time
}

// New creates a watcher for dir. A zero settle uses DefaultSettle.
func New(dir string, settle time.Duration) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{
		dir:     dir,
		settle:  settle,
		pending: make(map[string]time.Time),
	}
}

// Existing returns the snapshot files already in the directory, sorted.
func (w *Watcher) Existing() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", w.dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && IsSnapshotFile(e.Name()) {
			paths = append(paths, filepath.Join(w.dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Watch starts watching and returns a channel of settled snapshot paths.
// The channel is closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan string, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}

	w.mu.Lock()
	w.fsw = fsw
	w.mu.Unlock()

	out := make(chan string)
	go w.run(ctx, fsw, out)
	return out, nil
}

// Close stops the underlying file watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw == nil {
		return nil
	}
	err := w.fsw.Close()
	w.fsw = nil
	return err
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, out chan<- string) {
	defer close(out)
	defer w.Close()

	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if path, ok := w.handleFsEvent(event); ok {
				w.touch(path, time.Now())
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("inbox watcher: %v", err)
		case now := <-ticker.C:
			for _, path := range w.settled(now) {
				select {
				case out <- path:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// handleFsEvent returns the snapshot path an event refers to, if any.
// Removals and renames drop a pending path.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !IsSnapshotFile(event.Name) {
		return "", false
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.mu.Lock()
		delete(w.pending, event.Name)
		w.mu.Unlock()
		return "", false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}

	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

func (w *Watcher) touch(path string, at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = at
}

// settled removes and returns paths quiet for at least the settle period.
func (w *Watcher) settled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.settle {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}
