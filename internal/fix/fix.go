// Package fix plans, previews, commits and reverts text edits against files
// tracked by a source.FileSet.
package fix

import (
	"typemend/internal/source"
)

// FixKind classifies a fix.
type FixKind uint8

const (
	// FixKindQuickFix is a local edit inside an existing file.
	FixKindQuickFix FixKind = iota
	// FixKindCreateFile writes a file that does not exist yet.
	FixKindCreateFile
	// FixKindStub inserts placeholder code to be filled in by hand.
	FixKindStub
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindCreateFile:
		return "create"
	case FixKindStub:
		return "stub"
	default:
		return "unknown"
	}
}

// FixApplicability tells how much trust an automatic fix deserves.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	default:
		return "unknown"
	}
}

// TextEdit replaces Span with NewText. When OldText is non-empty the edit
// only applies if the current text under Span equals it.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix is a titled group of edits that is applied all-or-nothing.
type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	Edits         []TextEdit
}
