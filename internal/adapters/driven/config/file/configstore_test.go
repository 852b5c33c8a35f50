package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_LoadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[storage]
root = "/srv/uploads"

[images]
download = false

[fetch]
rate_per_second = 5

[scraper]
container_selectors = ["section.purchase", "li.order"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/uploads", store.GetString("storage.root"))
	assert.False(t, store.GetBool("images.download"))
	_, exists := store.Get("images.download")
	assert.True(t, exists)
	assert.InDelta(t, 5.0, store.GetFloat("fetch.rate_per_second"), 0.0001)
	assert.Equal(t, []string{"section.purchase", "li.order"}, store.GetStringSlice("scraper.container_selectors"))
}

func TestConfigStore_SetPersistsAsTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.root", "/data"))
	require.NoError(t, store.Set("fetch.rate_per_second", 1.5))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[storage]")
	assert.Contains(t, string(data), "[fetch]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/data", reloaded.GetString("storage.root"))
	assert.InDelta(t, 1.5, reloaded.GetFloat("fetch.rate_per_second"), 0.0001)
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.root", 42))

	assert.Empty(t, store.GetString("storage.root"))
	assert.False(t, store.GetBool("storage.root"))
	assert.Nil(t, store.GetStringSlice("storage.root"))
	assert.InDelta(t, 42.0, store.GetFloat("storage.root"), 0.0001)
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetFloat("nope"))
	assert.False(t, store.GetBool("nope"))
	assert.Nil(t, store.GetStringSlice("nope"))
}

func TestConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a.b":   1,
		"a.c.d": "x",
		"top":   true,
	})

	assert.Equal(t, map[string]any{
		"a":   map[string]any{"b": 1, "c": map[string]any{"d": "x"}},
		"top": true,
	}, nested)
	assert.Equal(t, map[string]any{"a.b": 1, "a.c.d": "x", "top": true}, flattenMap(nested, ""))
}
