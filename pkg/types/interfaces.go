package types

import (
	"io/fs"
)

// FS is the filesystem surface webgen operations run against. The
// production implementation delegates to the os package; tests swap in
// an afero-backed one.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations. Lstat does not follow links; backends
	// without symlink support may degrade it to Stat.
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Lstat(name string) (fs.FileInfo, error)

	// Tree maintenance
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}
