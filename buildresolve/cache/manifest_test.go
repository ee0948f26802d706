package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestWriteManifestSummarizesKeyCounts(t *testing.T) {
	dir := t.TempDir()
	m, err := NewFileManager(dir)
	assert.NoError(t, err)
	assert.NoError(t, m.NamedMap(MapBuildByID).Put("1", []byte(`{}`)))
	assert.NoError(t, m.NamedMap(MapBuildByID).Put("2", []byte(`{}`)))

	WriteManifest(dir, m, "run-abcd1234", []string{MapBuildByID, MapPncBuildByID})

	raw, err := os.ReadFile(filepath.Join(dir, "run-manifest.yaml"))
	assert.NoError(t, err)

	var manifest runManifest
	assert.NoError(t, yaml.Unmarshal(raw, &manifest))
	assert.Equal(t, "run-abcd1234", manifest.RunID)
	assert.Equal(t, 2, manifest.Maps[MapBuildByID])
	assert.Equal(t, 0, manifest.Maps[MapPncBuildByID])
}

func TestWriteManifestNoOpForNonFileManager(t *testing.T) {
	dir := t.TempDir()

	WriteManifest(dir, NewMemoryManager(), "run-id", []string{MapBuildByID})

	_, err := os.Stat(filepath.Join(dir, "run-manifest.yaml"))
	assert.True(t, os.IsNotExist(err))
}
