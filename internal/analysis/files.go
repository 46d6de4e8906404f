package analysis

// FileIndex maps a component path to the function names reported missing in
// it. Paths keep first-seen order; names keep report order, duplicates included.
type FileIndex struct {
	order []string
	funcs map[string][]string
}

func NewFileIndex() *FileIndex {
	return &FileIndex{funcs: make(map[string][]string)}
}

// Add records fn as missing in path.
func (fi *FileIndex) Add(path, fn string) {
	if _, ok := fi.funcs[path]; !ok {
		fi.order = append(fi.order, path)
	}
	fi.funcs[path] = append(fi.funcs[path], fn)
}

// Len returns the number of distinct paths.
func (fi *FileIndex) Len() int {
	return len(fi.order)
}

// Paths returns paths in first-seen order.
func (fi *FileIndex) Paths() []string {
	return append([]string(nil), fi.order...)
}

// Funcs returns every name recorded for path, duplicates included.
func (fi *FileIndex) Funcs(path string) []string {
	return append([]string(nil), fi.funcs[path]...)
}

// Distinct returns the names recorded for path without repeats, in first-seen order.
func (fi *FileIndex) Distinct(path string) []string {
	names := fi.funcs[path]
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
