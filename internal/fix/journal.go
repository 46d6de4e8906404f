package fix

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrNoJournal is returned by ReadJournal when nothing has been committed.
var ErrNoJournal = errors.New("no undo journal found")

const journalVersion = 1

// JournalEntry is the pre-commit state of one file.
type JournalEntry struct {
	Path      string `msgpack:"path"`
	Display   string `msgpack:"display"`
	Created   bool   `msgpack:"created"`
	Before    []byte `msgpack:"before"`
	AfterHash []byte `msgpack:"after_sha256"`
	Mode      uint32 `msgpack:"mode"`
}

// Journal records the last committed changeset so it can be reverted.
type Journal struct {
	Version   int            `msgpack:"version"`
	CreatedAt time.Time      `msgpack:"created_at"`
	Entries   []JournalEntry `msgpack:"entries"`
}

// NewJournal captures the originals of every change in cs. Paths are stored
// in absolute form.
func NewJournal(cs *Changeset) (*Journal, error) {
	j := &Journal{
		Version:   journalVersion,
		CreatedAt: time.Now().UTC(),
		Entries:   make([]JournalEntry, 0, len(cs.Changes)),
	}
	for _, ch := range cs.Changes {
		abs, err := filepath.Abs(ch.Path)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", ch.Display, err)
		}
		mode := uint32(0o644)
		if !ch.Created {
			if info, err := os.Stat(ch.Path); err == nil {
				mode = uint32(info.Mode().Perm())
			}
		}
		sum := sha256.Sum256(ch.After)
		j.Entries = append(j.Entries, JournalEntry{
			Path:      abs,
			Display:   ch.Display,
			Created:   ch.Created,
			Before:    ch.Before,
			AfterHash: sum[:],
			Mode:      mode,
		})
	}
	return j, nil
}

// Save writes the journal to path, creating its directory.
func (j *Journal) Save(path string) error {
	data, err := msgpack.Marshal(j)
	if err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}
	if err := atomicWrite(path, data, 0o600); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// ReadJournal loads a journal written by Save.
func ReadJournal(path string) (*Journal, error) {
	// #nosec G304 -- journal path is derived from the project root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoJournal
		}
		return nil, fmt.Errorf("read journal: %w", err)
	}
	var j Journal
	if err := msgpack.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("decode journal %s: %w", path, err)
	}
	if j.Version != journalVersion {
		return nil, fmt.Errorf("journal %s: unsupported version %d", path, j.Version)
	}
	return &j, nil
}

// UndoResult lists what Undo did per file.
type UndoResult struct {
	Restored []string
	Removed  []string
}

// Undo reverts every entry of j. Unless force is set, it refuses to touch
// anything when a file no longer holds the content that was committed.
func Undo(j *Journal, force bool) (*UndoResult, error) {
	if !force {
		var conflicts []error
		for _, e := range j.Entries {
			if err := e.verify(); err != nil {
				conflicts = append(conflicts, err)
			}
		}
		if len(conflicts) > 0 {
			return nil, errors.Join(conflicts...)
		}
	}

	res := &UndoResult{}
	for i := len(j.Entries) - 1; i >= 0; i-- {
		e := j.Entries[i]
		if e.Created {
			if err := os.Remove(e.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return res, fmt.Errorf("remove %s: %w", e.Display, err)
			}
			res.Removed = append(res.Removed, e.Display)
			continue
		}
		if err := atomicWrite(e.Path, e.Before, os.FileMode(e.Mode)); err != nil {
			return res, fmt.Errorf("restore %s: %w", e.Display, err)
		}
		res.Restored = append(res.Restored, e.Display)
	}
	return res, nil
}

func (e JournalEntry) verify() error {
	// #nosec G304 -- path comes from the journal
	current, err := os.ReadFile(e.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: file no longer exists", e.Display)
		}
		return fmt.Errorf("read %s: %w", e.Display, err)
	}
	sum := sha256.Sum256(current)
	if !bytes.Equal(sum[:], e.AfterHash) {
		return fmt.Errorf("%s: modified since it was written", e.Display)
	}
	return nil
}
