package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestSource_Load(t *testing.T) {
	path := writeManifest(t, `[
		{
			"id": "getting-started",
			"title": "Getting Started",
			"category": "Guides",
			"tags": ["intro"],
			"filePath": "guides/getting-started.md",
			"description": "First steps"
		},
		{
			"id": "swarm-guide",
			"title": "Swarm Orchestration",
			"category": "Agents/Swarm",
			"filePath": "agents/swarm.md"
		}
	]`)
	source := NewSource(path)

	docs, err := source.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, domain.Document{
		ID:          "getting-started",
		Title:       "Getting Started",
		Category:    "Guides",
		Tags:        []string{"intro"},
		FilePath:    "guides/getting-started.md",
		Description: "First steps",
	}, docs[0])
	assert.Equal(t, "swarm-guide", docs[1].ID)
	assert.Empty(t, docs[1].Tags)
}

func TestSource_Load_MissingFile(t *testing.T) {
	source := NewSource(filepath.Join(t.TempDir(), "absent.json"))

	_, err := source.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifest)
}

func TestSource_Load_Malformed(t *testing.T) {
	path := writeManifest(t, `{"not": "an array"}`)
	source := NewSource(path)

	_, err := source.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifest)
}

func TestSource_Load_EmptyArray(t *testing.T) {
	path := writeManifest(t, `[]`)
	source := NewSource(path)

	docs, err := source.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSource_Path(t *testing.T) {
	source := NewSource("/some/manifest.json")
	assert.Equal(t, "/some/manifest.json", source.Path())
}

func TestLoadPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learning-paths.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{
			"id": "basics",
			"name": "Basics",
			"difficulty": "beginner",
			"documents": ["doc-a", "doc-b"],
			"estimatedTime": 45
		}
	]`), 0600))

	paths, err := LoadPaths(path)

	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "basics", paths[0].ID)
	assert.Equal(t, "Basics", paths[0].Name)
	assert.Equal(t, "beginner", paths[0].Difficulty)
	assert.Equal(t, []string{"doc-a", "doc-b"}, paths[0].Documents)
	assert.Equal(t, 45, paths[0].EstimatedTime)
}

func TestLoadPaths_MissingFileIsNotAnError(t *testing.T) {
	paths, err := LoadPaths(filepath.Join(t.TempDir(), "absent.json"))

	require.NoError(t, err)
	assert.Nil(t, paths)
}

func TestLoadPaths_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learning-paths.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"oops": true}`), 0600))

	_, err := LoadPaths(path)

	assert.Error(t, err)
}
