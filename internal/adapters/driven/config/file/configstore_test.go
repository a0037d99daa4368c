package file

import (
	"os"
	"path/filepath"
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

func TestConfigStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("search.limit", 25))
	require.NoError(t, store.Set("output.format", "json"))

	assert.Equal(t, 25, store.GetInt("search.limit"))
	assert.Equal(t, "json", store.GetString("output.format"))

	_, ok := store.Get("missing.key")
	assert.False(t, ok)
}

func TestConfigStore_TypeMismatches(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("search.limit", 25))
	assert.Equal(t, "", store.GetString("search.limit"))
	assert.Equal(t, 0, store.GetInt("output.format"))
	assert.Nil(t, store.GetStringSlice("search.limit"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("search.limit", 15))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 15, reloaded.GetInt("search.limit"))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := `
[search]
limit = 7

[synonyms]
shareplay = ["groupactivities", "group activities"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 7, store.GetInt("search.limit"))
	assert.Equal(t, []string{"groupactivities", "group activities"}, store.GetStringSlice("synonyms.shareplay"))
}

func TestConfigStore_Keys(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("synonyms.shareplay", []string{"groupactivities"}))
	require.NoError(t, store.Set("synonyms.ml", []string{"machine learning"}))
	require.NoError(t, store.Set("search.limit", 5))

	keys := store.Keys("synonyms")
	assert.ElementsMatch(t, []string{"shareplay", "ml"}, keys)
	assert.Empty(t, store.Keys("nothing"))
}

func TestConfigStore_Path(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok := store.Get("anything")
	assert.False(t, ok)
}
