package filesystem

import (
	"io"
	"io/fs"

	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/types"
)

// DirPerm is the mode used for directories created on demand
const DirPerm fs.FileMode = 0755

// EnsureDir creates dir and any missing parents. Existing directories are
// left untouched; a file in the way is an error.
func EnsureDir(fsys types.FS, dir string) error {
	if err := fsys.MkdirAll(dir, DirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dir).
			WithDetail("directory", dir)
	}
	return nil
}

// Exists reports whether name exists
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// WriteStream writes r to name, truncating any existing file. On a failed
// copy the partial file is removed.
func WriteStream(fsys types.FS, name string, r io.Reader) (int64, error) {
	w, err := fsys.Create(name)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", name).
			WithDetail("destination", name)
	}

	n, err := io.Copy(w, r)
	closeErr := w.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = fsys.Remove(name)
		return n, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", name).
			WithDetail("destination", name)
	}
	return n, nil
}
