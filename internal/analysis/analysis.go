// Package analysis turns raw type-checker output into the indexes the fixers
// work from: an error-code tally, missing properties per props interface, and
// missing handler/getter functions per component file.
package analysis

import (
	"regexp"
	"sort"
	"strings"

	"typemend/internal/diag"
)

// DefaultPathPrefix is the prefix a diagnostic line must start with for its
// missing functions to be attributed to a file.
const DefaultPathPrefix = "src/"

var (
	codePattern        = regexp.MustCompile(`error ([A-Za-z0-9]+):`)
	missingPropPattern = regexp.MustCompile(`Property '(\w+)' does not exist on type '[^']*?\b(I\w+Props)\b`)
	missingFuncPattern = regexp.MustCompile(`Property '(handle\w+|get\w+)' does not exist`)
)

// Options tunes Analyze.
type Options struct {
	// PathPrefix replaces DefaultPathPrefix when non-empty.
	PathPrefix string
	// MaxDiagnostics caps the structured diagnostic listing; 0 means unlimited.
	// The tallies and indexes are never capped.
	MaxDiagnostics int
}

// Report is the result of scanning one checker run.
type Report struct {
	Lines        int
	Codes        map[string]int
	MissingProps map[string]map[string]struct{}
	FilesToFix   *FileIndex
	Diagnostics  *diag.Bag
}

// CodeCount is one row of the error distribution.
type CodeCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// Analyze scans every line with three independent searches: the error code
// tally, the missing-property-on-interface report and the missing-function
// report. A line may feed any subset of them.
func Analyze(lines []string, opts Options) *Report {
	prefix := opts.PathPrefix
	if prefix == "" {
		prefix = DefaultPathPrefix
	}
	pathPattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `([^(:]+)`)

	r := &Report{
		Lines:        len(lines),
		Codes:        make(map[string]int),
		MissingProps: make(map[string]map[string]struct{}),
		FilesToFix:   NewFileIndex(),
		Diagnostics:  diag.NewBag(opts.MaxDiagnostics),
	}

	for _, raw := range lines {
		line := diag.StripANSI(raw)

		if m := codePattern.FindStringSubmatch(line); m != nil {
			r.Codes[m[1]]++
		}

		if m := missingPropPattern.FindStringSubmatch(line); m != nil {
			prop, iface := m[1], m[2]
			props, ok := r.MissingProps[iface]
			if !ok {
				props = make(map[string]struct{})
				r.MissingProps[iface] = props
			}
			props[prop] = struct{}{}
		}

		if m := missingFuncPattern.FindStringSubmatch(line); m != nil {
			if pm := pathPattern.FindStringSubmatch(line); pm != nil {
				if path := strings.TrimSpace(pm[1]); path != "" {
					r.FilesToFix.Add(path, m[1])
				}
			}
		}

		if d, ok := diag.ParseLine(raw); ok {
			r.Diagnostics.Add(d)
		}
	}
	return r
}

// TotalCodes returns the sum of all code counts.
func (r *Report) TotalCodes() int {
	total := 0
	for _, n := range r.Codes {
		total += n
	}
	return total
}

// TopCodes returns at most n codes by descending count; ties are broken by
// code so the ranking is stable. n <= 0 returns every code.
func (r *Report) TopCodes(n int) []CodeCount {
	out := make([]CodeCount, 0, len(r.Codes))
	for code, count := range r.Codes {
		out = append(out, CodeCount{Code: code, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Interfaces returns the interfaces with missing properties, sorted by name.
func (r *Report) Interfaces() []string {
	out := make([]string, 0, len(r.MissingProps))
	for iface := range r.MissingProps {
		out = append(out, iface)
	}
	sort.Strings(out)
	return out
}

// Props returns the missing properties of iface in lexicographic order.
func (r *Report) Props(iface string) []string {
	set := r.MissingProps[iface]
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
