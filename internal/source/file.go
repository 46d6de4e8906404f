package source

// File is one file of a FileSet with its content normalized to LF and no BOM.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Flags   FileFlags
}

// Missing reports whether the file did not exist when it was registered.
func (f *File) Missing() bool {
	return f.Flags&FileMissing != 0
}

// Encode converts normalized content back to the on-disk form of f,
// restoring the BOM and CRLF line endings it was loaded with.
func (f *File) Encode(content []byte) []byte {
	out := content
	if f.Flags&FileNormalizedCRLF != 0 {
		out = restoreCRLF(out)
	}
	if f.Flags&FileHadBOM != 0 {
		out = append(append(make([]byte, 0, len(out)+len(utf8BOM)), utf8BOM...), out...)
	}
	return out
}

// RelPath renders the path relative to baseDir, or absolute when it lies
// outside of it.
func (f *File) RelPath(baseDir string) string {
	if rel, err := RelativePath(f.Path, baseDir); err == nil {
		return rel
	}
	return f.Path
}
