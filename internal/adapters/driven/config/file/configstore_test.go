package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyDocsDir, "/srv/docs"))
	require.NoError(t, store.Set(KeyChunkSize, 1500))
	require.NoError(t, store.Set(KeyDebounceMS, 250))

	assert.Equal(t, "/srv/docs", store.GetString(KeyDocsDir))
	assert.Equal(t, 1500, store.GetInt(KeyChunkSize))
	assert.Equal(t, 250, store.GetInt(KeyDebounceMS))
}

func TestConfigStore_MissingKeysReturnZeroValues(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", store.GetString(KeyBaseURL))
	assert.Equal(t, 0, store.GetInt(KeySearchLimit))
}

func TestConfigStore_MistypedKeysReturnZeroValues(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyChunkSize, "not a number"))
	require.NoError(t, store.Set(KeyDocsDir, 42))

	assert.Equal(t, 0, store.GetInt(KeyChunkSize))
	assert.Equal(t, "", store.GetString(KeyDocsDir))
}

func TestConfigStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyManifestPath, "docs/manifest.json"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "docs/manifest.json", reopened.GetString(KeyManifestPath))
}

func TestConfigStore_LoadsNestedTOMLAsDottedKeys(t *testing.T) {
	dir := t.TempDir()
	toml := "[content]\ndocs_dir = \"/srv/docs\"\n\n[search]\nchunk_size = 1200\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs", store.GetString(KeyDocsDir))
	assert.Equal(t, 1200, store.GetInt(KeyChunkSize))
}

func TestConfigStore_Path(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}
