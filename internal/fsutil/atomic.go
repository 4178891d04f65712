// Package fsutil provides crash-safe whole-file replacement.
package fsutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gofrs/flock"
)

// beforeRename runs after the temp file is fully written and closed, right
// before it is renamed onto the target. Tests swap it to simulate a crash.
var beforeRename = func(tmpPath string) error { return nil }

// WriteFileAtomic replaces path with the bytes produced by fill. A new file
// is created with perm; an existing one keeps its permission bits.
//
// The content goes to a temp file in the same directory (so the rename never
// crosses filesystems). While fill runs, the temp file holds an exclusive
// advisory lock, which serializes writers following this protocol on the same
// host. The buffered output is flushed and fsynced, the lock is released, and
// only then is the temp file renamed into place.
//
// If anything fails before the rename, the temp file is removed and path is
// left untouched. Readers of path observe either the old or the new content.
func WriteFileAtomic(path string, perm os.FileMode, fill func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}

	tmpPath := tmp.Name()
	lock := flock.New(tmpPath)
	cleanup := func() {
		_ = lock.Close()
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	// An existing target keeps its mode.
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}

	if err := lock.Lock(); err != nil {
		cleanup()
		return fmt.Errorf("lock %s: %w", tmpPath, err)
	}

	w := bufio.NewWriter(tmp)
	if err := fill(w); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}

	if err := w.Flush(); err != nil {
		cleanup()
		return fmt.Errorf("flush %s: %w", tmpPath, err)
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fsync %s: %w", tmpPath, err)
	}

	if err := lock.Unlock(); err != nil {
		cleanup()
		return fmt.Errorf("unlock %s: %w", tmpPath, err)
	}
	_ = lock.Close()

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := beforeRename(tmpPath); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Windows cannot rename over an existing destination.
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(path); statErr == nil {
				if rmErr := os.Remove(path); rmErr == nil {
					if renameErr := os.Rename(tmpPath, path); renameErr == nil {
						return syncDir(dir)
					}
				}
			}
		}
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s -> %s: %w", tmpPath, path, err)
	}

	return syncDir(dir)
}

// EnsureFile creates an empty file at path if nothing exists there yet.
// An existing file is never truncated.
func EnsureFile(path string, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return syncDir(filepath.Dir(path))
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return nil
	}
	defer f.Close()
	_ = f.Sync()
	return nil
}
