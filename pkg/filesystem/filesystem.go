package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"
)

// NewOS returns the OS-backed filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// IsDir reports whether path exists and is a directory
func IsDir(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file
func IsFile(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Exists reports whether anything exists at path
func Exists(fsys afero.Fs, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// CopyFile copies the bytes of src to dst. The target is 0644 plus the
// execute bits of src, whatever the other bits of src. An existing dst is
// truncated, even when it is read-only.
func CopyFile(fsys afero.Fs, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "copy", Path: src, Err: fs.ErrInvalid}
	}

	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return err
	}

	mode := 0644 | info.Mode().Perm()&0111
	if IsFile(fsys, dst) {
		if err := fsys.Chmod(dst, mode); err != nil {
			return err
		}
	}
	return afero.WriteFile(fsys, dst, data, mode)
}

// EnsureDir creates path and any missing parents
func EnsureDir(fsys afero.Fs, path string) error {
	return fsys.MkdirAll(path, 0755)
}
