package filesystem

import (
	"io/fs"
	"os"

	"github.com/spf13/afero"
	"github.com/webgenlabs/webgen/pkg/types"
)

// aferoFS adapts an afero backend to types.FS. Symlink operations use
// the backend's capability interfaces when it has them; MemMapFs does
// not, so links degrade to files holding the target path, which is
// enough for tests to round-trip through Readlink.
type aferoFS struct {
	af afero.Afero
}

// NewAferoFS wraps an afero filesystem, typically afero.NewMemMapFs()
// in tests.
func NewAferoFS(backend afero.Fs) types.FS {
	return &aferoFS{af: afero.Afero{Fs: backend}}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.af.Stat(name)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if lst, ok := a.af.Fs.(afero.Lstater); ok {
		info, _, err := lst.LstatIfPossible(name)
		return info, err
	}
	return a.af.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.af.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return a.af.ReadFile(name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return a.af.WriteFile(name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.af.MkdirAll(path, perm)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := a.af.ReadDir(name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if linker, ok := a.af.Fs.(afero.Linker); ok {
		return linker.SymlinkIfPossible(oldname, newname)
	}
	return a.af.WriteFile(newname, []byte(oldname), 0777|os.ModeSymlink)
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if reader, ok := a.af.Fs.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	content, err := a.af.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (a *aferoFS) Remove(name string) error {
	return a.af.Remove(name)
}

func (a *aferoFS) RemoveAll(path string) error {
	return a.af.RemoveAll(path)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.af.Rename(oldpath, newpath)
}
