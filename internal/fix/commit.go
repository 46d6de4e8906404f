package fix

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// writeFile is swapped out by tests to inject failures.
var writeFile = atomicWrite

// Commit writes every change of cs to disk. Each file goes through a temp
// file in its own directory followed by a rename. If any write fails, files
// already written are restored and files already created are removed before
// the error is returned.
func Commit(cs *Changeset) error {
	if cs.Empty() {
		return ErrNoChanges
	}

	done := make([]FileChange, 0, len(cs.Changes))
	modes := make(map[string]os.FileMode, len(cs.Changes))

	for _, ch := range cs.Changes {
		mode, err := checkUnchanged(ch)
		if err != nil {
			return errors.Join(err, rollback(done, modes))
		}
		modes[ch.Path] = mode

		if ch.Created {
			if err := os.MkdirAll(filepath.Dir(ch.Path), 0o750); err != nil {
				return errors.Join(fmt.Errorf("create directory for %s: %w", ch.Display, err), rollback(done, modes))
			}
		}
		if err := writeFile(ch.Path, ch.After, mode); err != nil {
			return errors.Join(fmt.Errorf("write %s: %w", ch.Display, err), rollback(done, modes))
		}
		done = append(done, ch)
	}
	return nil
}

// checkUnchanged verifies the file on disk still matches what Plan saw and
// returns the mode to write it with.
func checkUnchanged(ch FileChange) (os.FileMode, error) {
	info, err := os.Stat(ch.Path)
	if ch.Created {
		if err == nil {
			return 0, fmt.Errorf("%s: file appeared since planning", ch.Display)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("stat %s: %w", ch.Display, err)
		}
		return 0o644, nil
	}
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", ch.Display, err)
	}
	// #nosec G304 -- path comes from the planned changeset
	current, err := os.ReadFile(ch.Path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", ch.Display, err)
	}
	if !bytes.Equal(current, ch.Before) {
		return 0, fmt.Errorf("%s: file modified since planning", ch.Display)
	}
	return info.Mode().Perm(), nil
}

func rollback(done []FileChange, modes map[string]os.FileMode) error {
	var errs []error
	for i := len(done) - 1; i >= 0; i-- {
		ch := done[i]
		if ch.Created {
			if err := os.Remove(ch.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("rollback remove %s: %w", ch.Display, err))
			}
			continue
		}
		if err := atomicWrite(ch.Path, ch.Before, modes[ch.Path]); err != nil {
			errs = append(errs, fmt.Errorf("rollback restore %s: %w", ch.Display, err))
		}
	}
	return errors.Join(errs...)
}

// atomicWrite replaces path with data via a temp file and rename.
func atomicWrite(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".typemend-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
