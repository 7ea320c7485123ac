package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ListFiles walks fsys and returns the relative, slash-separated paths of all
// regular files, sorted. Directories themselves are not listed.
func ListFiles(fsys fs.FS) ([]string, error) {
	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// ContainsFiles returns true if the given fs.FS contains any files, and false otherwise.
func ContainsFiles(fsys fs.FS) (bool, error) {
	// errFound is a sentinel error used to stop the walk when a file is found.
	errFound := os.ErrExist

	err := fs.WalkDir(fsys, ".", func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return errFound
		}
		return nil
	})
	if err == errFound {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// NonEmptyFile reports whether path names an existing regular file with a
// size greater than zero.
func NonEmptyFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular() && fi.Size() > 0
}

// MoveFile renames src to dst, falling back to a copy-and-remove when the
// rename crosses filesystems. Parent directories of dst are created.
func MoveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	bs, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, bs, 0o644); err != nil {
		return err
	}
	return os.Remove(src)
}
