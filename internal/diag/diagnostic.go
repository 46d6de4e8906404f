package diag

import (
	"regexp"
	"strconv"
	"strings"

	"typemend/internal/source"
)

// Diagnostic is one line of checker output describing a single error.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Path     string         // empty for location-less diagnostics
	Pos      source.LineCol // zero when Path is empty
	Message  string
	Raw      string
}

// HasLocation reports whether the diagnostic points into a file.
func (d Diagnostic) HasLocation() bool {
	return d.Path != ""
}

var (
	// file.ts(12,5): error TS2339: message
	parenLayout = regexp.MustCompile(`^([^\s(]+\.(?:d\.)?(?:[cm]?tsx?|vue))\((\d+),(\d+)\):\s*(error|warning|message)\s+(TS\d+):\s*(.+?)\s*$`)
	// file.ts:12:5 - error TS2339: message
	colonLayout = regexp.MustCompile(`^([^\s:]+\.(?:d\.)?(?:[cm]?tsx?|vue)):(\d+):(\d+)\s+-\s+(error|warning|message)\s+(TS\d+):\s*(.+?)\s*$`)
	// error TS5023: message
	bareLayout = regexp.MustCompile(`^(error|warning|message)\s+(TS\d+):\s*(.+?)\s*$`)
)

// ParseLine recognises a single checker output line. ANSI colour sequences
// are stripped first. The boolean is false for lines that carry no diagnostic.
func ParseLine(line string) (Diagnostic, bool) {
	clean := strings.TrimRight(StripANSI(line), "\r")
	for _, re := range []*regexp.Regexp{parenLayout, colonLayout} {
		m := re.FindStringSubmatch(clean)
		if m == nil {
			continue
		}
		return Diagnostic{
			Severity: ParseSeverity(m[4]),
			Code:     Code(m[5]),
			Path:     m[1],
			Pos:      source.LineCol{Line: parseUint32(m[2]), Col: parseUint32(m[3])},
			Message:  m[6],
			Raw:      line,
		}, true
	}
	if m := bareLayout.FindStringSubmatch(strings.TrimSpace(clean)); m != nil {
		return Diagnostic{
			Severity: ParseSeverity(m[1]),
			Code:     Code(m[2]),
			Message:  m[3],
			Raw:      line,
		}, true
	}
	return Diagnostic{}, false
}

var ansiSequence = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// StripANSI removes terminal colour escape sequences.
func StripANSI(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return ansiSequence.ReplaceAllString(s, "")
}

func parseUint32(s string) uint32 {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}
