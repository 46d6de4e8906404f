package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatShort renders diagnostics one per line:
//
//	error TS2339 src/components/Foo.vue:12:5 Property 'x' does not exist on type 'IFooProps'.
//
// Diagnostics are rendered in the given order; call Bag.Sort first for a
// deterministic listing.
func FormatShort(diags []Diagnostic) string {
	var b strings.Builder
	for i, d := range diags {
		loc := "-"
		if d.HasLocation() {
			loc = fmt.Sprintf("%s:%d:%d", normalizePath(d.Path), d.Pos.Line, d.Pos.Col)
		}
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity, d.Code.ID(), loc, sanitizeMessage(d.Message))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
