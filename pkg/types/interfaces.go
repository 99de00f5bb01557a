package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for pluck operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)

	// Open opens a file for reading
	Open(name string) (io.ReadCloser, error)

	// Create creates or truncates a file for writing
	Create(name string) (io.WriteCloser, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Remove deletes a file
	Remove(name string) error
}
