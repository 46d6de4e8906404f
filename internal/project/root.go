package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the file FindManifest looks for.
const ManifestName = "typemend.toml"

// FindManifest walks up from startDir to locate typemend.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the manifest at explicit when it is set, otherwise the
// nearest typemend.toml above startDir. Without any manifest the built-in
// defaults apply with startDir as the root.
func Discover(startDir, explicit string) (*Manifest, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if ok {
		return Load(path)
	}
	if startDir == "" {
		startDir = "."
	}
	root, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	return &Manifest{Root: root, Config: Default()}, nil
}
