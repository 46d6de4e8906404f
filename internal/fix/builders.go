package fix

import (
	"typemend/internal/source"
)

// Option mutates fix during construction.
type Option func(*Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app FixApplicability) Option {
	return func(f *Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind FixKind) Option {
	return func(f *Fix) {
		f.Kind = kind
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *Fix) {
		f.ID = id
	}
}

func applyOptions(f Fix, opts []Option) Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// InsertText creates fix that inserts text at span (Span.Start == Span.End).
func InsertText(title string, at source.Span, text string, guard string, opts ...Option) Fix {
	edit := TextEdit{
		Span:    at,
		NewText: text,
		OldText: guard,
	}
	fix := Fix{
		Title:         title,
		Kind:          FixKindQuickFix,
		Applicability: FixApplicabilityAlwaysSafe,
		Edits:         []TextEdit{edit},
	}
	return applyOptions(fix, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) Fix {
	edit := TextEdit{
		Span:    span,
		NewText: newText,
		OldText: expect,
	}
	fix := Fix{
		Title:         title,
		Kind:          FixKindQuickFix,
		Applicability: FixApplicabilityAlwaysSafe,
		Edits:         []TextEdit{edit},
	}
	return applyOptions(fix, opts)
}

// CreateFile writes content into a file registered with source.FileMissing.
// The fix is skipped by Plan when the file exists.
func CreateFile(title string, file source.FileID, content string, opts ...Option) Fix {
	fix := Fix{
		Title:         title,
		Kind:          FixKindCreateFile,
		Applicability: FixApplicabilityAlwaysSafe,
		Edits:         []TextEdit{{Span: source.Point(file, 0), NewText: content}},
	}
	return applyOptions(fix, opts)
}
