package fix

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Diff renders the change as a unified diff with context lines of context.
// Created files are diffed against /dev/null.
func (c *FileChange) Diff(context int) (string, error) {
	from := "a/" + c.Display
	if c.Created {
		from = "/dev/null"
	}
	ud := difflib.UnifiedDiff{
		A:        splitLines(c.Before),
		B:        splitLines(c.After),
		FromFile: from,
		ToFile:   "b/" + c.Display,
		Context:  context,
	}
	return difflib.GetUnifiedDiffString(ud)
}

// Diff concatenates the diffs of every change in the changeset.
func (cs *Changeset) Diff(context int) (string, error) {
	var out string
	for i := range cs.Changes {
		d, err := cs.Changes[i].Diff(context)
		if err != nil {
			return out, err
		}
		out += d
	}
	return out, nil
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := difflib.SplitLines(string(content))
	// SplitLines appends a bare "\n" element when content already ends in one.
	if content[len(content)-1] == '\n' {
		lines = lines[:len(lines)-1]
	}
	return lines
}
