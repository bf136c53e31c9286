package assets

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileLayered(t *testing.T) {
	base := fstest.MapFS{
		"models/tree/Tree.obj": {Data: []byte("base tree")},
		"textures/grass.jpg":   {Data: []byte("base grass")},
	}
	overlay := fstest.MapFS{
		"textures/grass.jpg": {Data: []byte("hd grass")},
	}
	m := NewManager(base, overlay)

	data, err := m.ReadFile("textures/grass.jpg")
	require.NoError(t, err)
	assert.Equal(t, "hd grass", string(data), "later sources win")

	data, err = m.ReadFile("models/tree/../tree/Tree.obj")
	require.NoError(t, err)
	assert.Equal(t, "base tree", string(data))

	_, err = m.ReadFile("models/missing.obj")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.True(t, m.Exists("textures/grass.jpg"))
	assert.False(t, m.Exists("textures/sand.jpg"))
}

func TestReadFileCaches(t *testing.T) {
	src := fstest.MapFS{"a.txt": {Data: []byte("one")}}
	m := NewManager(src)

	_, err := m.ReadFile("a.txt")
	require.NoError(t, err)

	// Changing the source does not affect cached reads.
	src["a.txt"] = &fstest.MapFile{Data: []byte("two")}
	data, err := m.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	hits, misses := m.Cache().Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, m.Cache().Len())

	m.Cache().Clear()
	data, err = m.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "skybox"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skybox", "top.jpg"), []byte("sky"), 0644))

	m := NewManager()
	require.NoError(t, m.AddDir(dir))

	data, err := m.ReadFile("skybox/top.jpg")
	require.NoError(t, err)
	assert.Equal(t, "sky", string(data))

	assert.Error(t, m.AddDir(filepath.Join(dir, "nope")))
	assert.Error(t, m.AddDir(filepath.Join(dir, "skybox", "top.jpg")))

	m.Close()
	_, err = m.ReadFile("skybox/top.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}
