package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ankify", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	_, err := NewConfigStore(filepath.Join(file, "sub"))

	assert.Error(t, err)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[[[broken"), 0600))

	_, err := NewConfigStore(dir)

	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("tokenizer.mode", "search"))
	require.NoError(t, store.Set("dictionary.concurrency", 4))
	require.NoError(t, store.Set("dictionary.requests_per_second", 2.5))
	require.NoError(t, store.Set("debug", true))

	assert.Equal(t, "search", store.GetString("tokenizer.mode"))
	assert.Equal(t, 4, store.GetInt("dictionary.concurrency"))
	assert.InDelta(t, 2.5, store.GetFloat("dictionary.requests_per_second"), 0.0001)
	assert.InDelta(t, 4.0, store.GetFloat("dictionary.concurrency"), 0.0001)
	assert.True(t, store.GetBool("debug"))

	assert.Empty(t, store.GetString("dictionary.concurrency"))
	assert.Zero(t, store.GetInt("tokenizer.mode"))
	assert.Zero(t, store.GetFloat("tokenizer.mode"))
	assert.False(t, store.GetBool("tokenizer.mode"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("dictionary.backend", "sqlite"))
	require.NoError(t, store.Set("dictionary.timeout_seconds", 30))
	require.NoError(t, store.Set("dictionary.requests_per_second", 1.5))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", reopened.GetString("dictionary.backend"))
	assert.Equal(t, 30, reopened.GetInt("dictionary.timeout_seconds"))
	assert.InDelta(t, 1.5, reopened.GetFloat("dictionary.requests_per_second"), 0.0001)
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("dictionary.backend", "jisho"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	assert.Contains(t, string(data), "[dictionary]")
	assert.Regexp(t, `backend = ['"]jisho['"]`, string(data))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[tokenizer]
mode = "extended"

[dictionary]
backend = "memory"
requests_per_second = 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "extended", store.GetString("tokenizer.mode"))
	assert.Equal(t, "memory", store.GetString("dictionary.backend"))
	assert.InDelta(t, 3.0, store.GetFloat("dictionary.requests_per_second"), 0.0001)
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_Load_RemovedFileResets(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("k", "v"))
	require.NoError(t, os.Remove(store.Path()))

	require.NoError(t, store.Load())

	_, ok := store.Get("k")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}
	store := newTestStore(t)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("dictionary.concurrency", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("dictionary.concurrency")
		}()
	}
	wg.Wait()
}

func TestFlattenAndNestMap(t *testing.T) {
	flat := map[string]any{
		"a.b":   int64(1),
		"a.c.d": "x",
		"top":   true,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"a":   map[string]any{"b": int64(1), "c": map[string]any{"d": "x"}},
		"top": true,
	}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}
