package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

func TestNewFileStore_EmptyRoot(t *testing.T) {
	_, err := NewFileStore("")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFileStore_WriteAndExists(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.EnsureDir(ctx, "mhtml"))
	info, err := os.Stat(filepath.Join(root, "mhtml"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	exists, err := store.Exists(ctx, "mhtml/a.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.WriteFile(ctx, "mhtml/a.jpg", []byte("jpeg")))

	exists, err = store.Exists(ctx, "mhtml/a.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := os.ReadFile(filepath.Join(root, "mhtml", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestFileStore_WriteCreatesParents(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)

	require.NoError(t, store.WriteFile(context.Background(), "downloads/deep/b.png", []byte("png")))

	_, err = os.Stat(filepath.Join(root, "downloads", "deep", "b.png"))
	assert.NoError(t, err)
}

func TestFileStore_DirectoryIsNotAFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.EnsureDir(ctx, "mhtml"))

	exists, err := store.Exists(ctx, "mhtml")

	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileStore_PathsStayInsideRoot(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)

	require.NoError(t, store.WriteFile(context.Background(), "../../escape.jpg", []byte("x")))

	_, err = os.Stat(filepath.Join(root, "escape.jpg"))
	assert.NoError(t, err)
}
