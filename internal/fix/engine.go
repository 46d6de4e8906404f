package fix

import (
	"errors"
	"fmt"
	"sort"

	"typemend/internal/source"
)

// ErrNoChanges is returned when no fix survived planning.
var ErrNoChanges = errors.New("no applicable fixes found")

// AppliedFix records a fix accepted into a changeset.
type AppliedFix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	Path          string
	EditCount     int
}

// SkippedFix captures a rejected fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Path   string
	Reason string
}

// FileChange is the planned new content of a single file. Before and After
// hold on-disk bytes, with BOM and CRLF line endings restored.
type FileChange struct {
	File      source.FileID
	Path      string
	Display   string
	Before    []byte
	After     []byte
	Created   bool
	EditCount int
}

// Changeset is the outcome of Plan: the files to write and the per-fix report.
type Changeset struct {
	Changes []FileChange
	Applied []AppliedFix
	Skipped []SkippedFix
}

// Empty reports whether the changeset writes nothing.
func (cs *Changeset) Empty() bool {
	return cs == nil || len(cs.Changes) == 0
}

// Plan validates fixes in order and computes the resulting file contents
// without touching the disk. A fix whose edits overlap an accepted fix, fail
// their OldText guard, or target a file in the wrong state is skipped as a
// whole. Insertions at the same offset keep the order their fixes were given in.
func Plan(fs *source.FileSet, fixes []Fix) (*Changeset, error) {
	cs := &Changeset{
		Changes: make([]FileChange, 0),
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
	}
	if fs == nil {
		return cs, fmt.Errorf("fix: FileSet is nil")
	}

	accepted := make(map[source.FileID][]TextEdit)
	order := make([]source.FileID, 0)
	seen := make(map[string]bool)
	baseDir := fs.BaseDir()

	for i, f := range fixes {
		if f.ID == "" {
			f.ID = fmt.Sprintf("fix-%d", i)
		}
		path := primaryPath(fs, f, baseDir)
		skip := func(reason string) {
			cs.Skipped = append(cs.Skipped, SkippedFix{ID: f.ID, Title: f.Title, Path: path, Reason: reason})
		}

		if seen[f.ID] {
			skip("duplicate fix id")
			continue
		}
		seen[f.ID] = true

		if len(f.Edits) == 0 {
			skip("fix has no edits")
			continue
		}
		if reason := validate(fs, f, accepted); reason != "" {
			skip(reason)
			continue
		}

		for _, e := range f.Edits {
			if _, ok := accepted[e.Span.File]; !ok {
				order = append(order, e.Span.File)
			}
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		cs.Applied = append(cs.Applied, AppliedFix{
			ID:            f.ID,
			Title:         f.Title,
			Kind:          f.Kind,
			Applicability: f.Applicability,
			Path:          path,
			EditCount:     len(f.Edits),
		})
	}

	for _, id := range order {
		file := fs.Get(id)
		edits := accepted[id]
		sortEdits(edits)
		content := applyEdits(file.Content, edits)

		change := FileChange{
			File:      id,
			Path:      file.Path,
			Display:   file.RelPath(baseDir),
			After:     file.Encode(content),
			Created:   file.Missing(),
			EditCount: len(edits),
		}
		if !change.Created {
			change.Before = file.Encode(file.Content)
		}
		cs.Changes = append(cs.Changes, change)
	}

	sort.SliceStable(cs.Changes, func(i, j int) bool {
		return cs.Changes[i].Display < cs.Changes[j].Display
	})

	if len(cs.Changes) == 0 {
		return cs, ErrNoChanges
	}
	return cs, nil
}

func validate(fs *source.FileSet, f Fix, accepted map[source.FileID][]TextEdit) string {
	for i, e := range f.Edits {
		file := fs.Get(e.Span.File)
		if file == nil {
			return "unknown target file"
		}
		switch {
		case f.Kind == FixKindCreateFile && !file.Missing():
			return "file already exists"
		case f.Kind != FixKindCreateFile && file.Missing():
			return "target file does not exist"
		case file.Missing() && len(accepted[e.Span.File]) > 0:
			return "file is already being created"
		}
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(file.Content) {
			return "edit span out of range"
		}
		if e.OldText != "" && string(file.Content[e.Span.Start:e.Span.End]) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, prev := range accepted[e.Span.File] {
			if prev.Span.Overlaps(e.Span) {
				return "conflicts with previously accepted edits"
			}
		}
		for _, other := range f.Edits[:i] {
			if other.Span.Overlaps(e.Span) {
				return "fix contains overlapping edits"
			}
		}
	}
	return ""
}

// sortEdits orders edits by position; the sort is stable so insertions at the
// same offset stay in acceptance order.
func sortEdits(edits []TextEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Span.Start != edits[j].Span.Start {
			return edits[i].Span.Start < edits[j].Span.Start
		}
		return edits[i].Span.End < edits[j].Span.End
	})
}

// applyEdits splices sorted, non-overlapping edits into content.
func applyEdits(content []byte, edits []TextEdit) []byte {
	size := len(content)
	for _, e := range edits {
		size += len(e.NewText) - int(e.Span.Len())
	}
	out := make([]byte, 0, size)
	pos := uint32(0)
	for _, e := range edits {
		out = append(out, content[pos:e.Span.Start]...)
		out = append(out, e.NewText...)
		pos = e.Span.End
	}
	return append(out, content[pos:]...)
}

func primaryPath(fs *source.FileSet, f Fix, baseDir string) string {
	if len(f.Edits) == 0 {
		return ""
	}
	file := fs.Get(f.Edits[0].Span.File)
	if file == nil {
		return ""
	}
	return file.RelPath(baseDir)
}
