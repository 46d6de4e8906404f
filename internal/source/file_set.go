package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every file read or created during one run. Paths are keyed in
// clean slash form; re-adding a path registers a new version and the index
// points at the newest one.
type FileSet struct {
	files   []File
	index   map[string]FileID
	baseDir string
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase creates a FileSet whose display paths are relative to baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	s := NewFileSet()
	s.baseDir = baseDir
	return s
}

// BaseDir returns the base directory, falling back to the working directory.
func (s *FileSet) BaseDir() string {
	if s.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return s.baseDir
}

// Len returns the number of registered file versions.
func (s *FileSet) Len() int {
	return len(s.files)
}

// Add registers already normalized content under path and returns its new ID.
func (s *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(s.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	key := normalizePath(path)
	s.files = append(s.files, File{
		ID:      id,
		Path:    key,
		Content: content,
		Flags:   flags,
	})
	s.index[key] = id
	return id
}

// Load reads path from disk, stripping a BOM and folding CRLF, and registers
// it. A path that is already loaded returns the existing ID.
func (s *FileSet) Load(path string) (FileID, error) {
	if id, ok := s.index[normalizePath(path)]; ok && !s.files[id].Missing() {
		return id, nil
	}
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var flags FileFlags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return s.Add(path, content, flags), nil
}

// LoadOrMissing behaves like Load but registers an empty FileMissing entry
// when the path does not exist.
func (s *FileSet) LoadOrMissing(path string) (FileID, error) {
	id, err := s.Load(path)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return 0, err
	}
	if existing, ok := s.index[normalizePath(path)]; ok {
		return existing, nil
	}
	return s.Add(path, nil, FileMissing), nil
}

// Get returns the file with the given ID, or nil.
func (s *FileSet) Get(id FileID) *File {
	if int(id) >= len(s.files) {
		return nil
	}
	return &s.files[id]
}

// Display renders the path of id relative to the base directory.
func (s *FileSet) Display(id FileID) string {
	f := s.Get(id)
	if f == nil {
		return ""
	}
	return f.RelPath(s.BaseDir())
}
