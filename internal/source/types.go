// Package source holds the files typemend reads and edits, addressed by
// FileID and byte spans.
package source

// FileID identifies one loaded file inside a FileSet.
type FileID uint32

// FileFlags records how a file's in-memory content differs from disk.
type FileFlags uint8

const (
	// FileHadBOM means a UTF-8 byte order mark was stripped on load.
	FileHadBOM FileFlags = 1 << iota
	// FileNormalizedCRLF means CRLF line endings were folded to LF on load.
	FileNormalizedCRLF
	// FileMissing marks a path that does not exist yet; edits against it
	// create the file.
	FileMissing
)

// LineCol is a 1-based position reported by the checker. Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
