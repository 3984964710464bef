package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSaveKeepsExtension(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	stored, err := store.Save("before-repair.JPG", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.FileURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(stored.FileURL, ".jpg"))
	assert.NotContains(t, stored.FileURL, "before-repair")

	data, err := os.ReadFile(stored.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestDiskStoreSaveUniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	first, err := store.Save("clip.mp4", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save("clip.mp4", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first.FilePath, second.FilePath)
}

func TestDiskStoreRemoveMissingFile(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.NoError(t, store.Remove(filepath.Join(store.BaseDir(), "gone.png")))
	assert.NoError(t, store.Remove(""))
}
