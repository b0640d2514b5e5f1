// Package system abstracts the file system the commands read schema documents from and write descriptors to.
package system

import (
	"io/fs"
	"os"
	"path/filepath"
)

type VirtualFS interface {
	fs.FS
}

// WritableVirtualFS is a VirtualFS that descriptors can be written to.
type WritableVirtualFS interface {
	VirtualFS
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
}

// FileSystem is the operating system file system. Names are OS paths, not slash separated fs.FS names.
type FileSystem struct{}

var (
	_ VirtualFS         = (*FileSystem)(nil)
	_ WritableVirtualFS = (*FileSystem)(nil)
)

func (fs *FileSystem) Open(name string) (fs.File, error) {
	return os.Open(filepath.Clean(name))
}

// WriteFile writes data to name, creating missing parent directories and replacing any existing file.
func (fs *FileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Clean(name), data, perm)
}

func (fs *FileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}
