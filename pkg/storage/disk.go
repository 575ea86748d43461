// Package storage keeps generated documents on disk.
//
//	disk, _ := storage.NewLocal(config.DocumentsRoot())
//	_ = disk.Put("menus/menu_3.pdf", data)
//	full := disk.Path("menus/menu_3.pdf")
//
// Paths are slash-separated and relative to the disk root; a path that
// would escape the root is rejected.
package storage

import "errors"

// ErrInvalidPath is returned for absolute paths and paths leaving the root.
var ErrInvalidPath = errors.New("storage: invalid path")

// Disk is the document store the services write through.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// Path returns the absolute filesystem location of path.
	Path(path string) string
}
