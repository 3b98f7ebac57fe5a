package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCharacterDir(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "original"), 0o755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "original", name), []byte("img"), 0o644))
	}

	return dir
}

func TestCatalogScan(t *testing.T) {
	dir := writeCharacterDir(t, "beto.png", "ana.jpg", "carla.png", "notas.txt", "dado.gif")

	catalog := NewCatalog(dir)
	chars, err := catalog.Scan()
	require.NoError(t, err)

	// Only png/jpg count, sorted by filename.
	require.Len(t, chars, 3)
	assert.Equal(t, Character{Name: "ana", Filename: "ana.jpg"}, chars[0])
	assert.Equal(t, Character{Name: "beto", Filename: "beto.png"}, chars[1])
	assert.Equal(t, Character{Name: "carla", Filename: "carla.png"}, chars[2])
}

func TestCatalogScanMissingDir(t *testing.T) {
	catalog := NewCatalog(filepath.Join(t.TempDir(), "nada"))

	_, err := catalog.Scan()
	assert.Error(t, err)
}

func TestCatalogAvailableLevels(t *testing.T) {
	dir := writeCharacterDir(t, "ana.png")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "level", "2"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "level", "2", "ana.png"), []byte("img"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "level", "5"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "level", "5", "ana.png"), []byte("img"), 0o644))

	catalog := NewCatalog(dir)

	assert.Equal(t, []int{0, 2, 5}, catalog.AvailableLevels("ana"))

	// Level 0 always exists, even with no leveled art on disk.
	assert.Equal(t, []int{0}, catalog.AvailableLevels("beto"))
}
