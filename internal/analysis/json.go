package analysis

// Summary is the serialisable form of a Report used by `diagnose --format json`.
type Summary struct {
	Lines        int                 `json:"lines"`
	TotalErrors  int                 `json:"total_errors"`
	Distribution []CodeCount         `json:"distribution"`
	MissingProps map[string][]string `json:"missing_props"`
	FilesToFix   []FileFuncs         `json:"files_to_fix"`
}

// FileFuncs lists the missing functions of one file.
type FileFuncs struct {
	Path      string   `json:"path"`
	Functions []string `json:"functions"`
}

// Summarize builds a Summary listing top codes (all when top <= 0).
func (r *Report) Summarize(top int) Summary {
	s := Summary{
		Lines:        r.Lines,
		TotalErrors:  r.TotalCodes(),
		Distribution: r.TopCodes(top),
		MissingProps: make(map[string][]string, len(r.MissingProps)),
		FilesToFix:   make([]FileFuncs, 0, r.FilesToFix.Len()),
	}
	for _, iface := range r.Interfaces() {
		s.MissingProps[iface] = r.Props(iface)
	}
	for _, path := range r.FilesToFix.Paths() {
		s.FilesToFix = append(s.FilesToFix, FileFuncs{Path: path, Functions: r.FilesToFix.Distinct(path)})
	}
	return s
}
