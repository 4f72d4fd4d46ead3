// Package atomicfile replaces files by writing a sibling temp file and
// renaming it into place.
package atomicfile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// WriteFile writes data to path atomically.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return Write(path, perm, func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(data))
		return err
	})
}

// Write streams the new contents of path through fill. The file at path is
// only replaced when fill succeeds.
//
// A zero perm keeps the mode of an existing file, or 0644 for a new one.
func Write(path string, perm os.FileMode, fill func(w io.Writer) error) error {
	if perm == 0 {
		perm = 0o644
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode().Perm()
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// chmod is unsupported on some filesystems.
	_ = tmp.Chmod(perm)

	if err := fill(tmp); err != nil {
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}

	if err := rename(tmpPath, path); err != nil {
		return err
	}
	committed = true
	return nil
}

// rename retries after removing the target, for platforms that refuse to
// rename over an existing file.
func rename(from, to string) error {
	err := os.Rename(from, to)
	if err == nil {
		return nil
	}
	_ = os.Remove(to)
	if err2 := os.Rename(from, to); err2 != nil {
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}
