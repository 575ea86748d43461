package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Disk = (*Local)(nil)

func TestLocal_PutGetDelete(t *testing.T) {
	disk, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, disk.Put("menus/menu_1.pdf", []byte("%PDF")))
	assert.True(t, disk.Exists("menus/menu_1.pdf"))
	assert.False(t, disk.Exists("menus"))

	data, err := disk.Get("menus/menu_1.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)

	assert.Equal(t, filepath.Join(disk.Root(), "menus", "menu_1.pdf"), disk.Path("menus/menu_1.pdf"))

	require.NoError(t, disk.Delete("menus/menu_1.pdf"))
	assert.False(t, disk.Exists("menus/menu_1.pdf"))
	assert.NoError(t, disk.Delete("menus/menu_1.pdf"))
}

func TestLocal_PutOverwritesWithoutLeftovers(t *testing.T) {
	disk, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, disk.Put("a.pdf", []byte("one")))
	require.NoError(t, disk.Put("a.pdf", []byte("two")))

	data, err := disk.Get("a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(disk.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocal_RejectsEscapingPaths(t *testing.T) {
	disk, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"", "/etc/passwd", "../x.pdf", "menus/../../x.pdf", "."} {
		assert.ErrorIs(t, disk.Put(p, []byte("x")), ErrInvalidPath, p)
		assert.False(t, disk.Exists(p), p)
		assert.Empty(t, disk.Path(p), p)
	}
}

func TestLocal_GetMissing(t *testing.T) {
	disk, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = disk.Get("nope.pdf")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
