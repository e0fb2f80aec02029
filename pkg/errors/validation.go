package errors

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputPath checks that path names a file, not a directory.
//
// The rules follow what a caller can know without touching the file:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - The last element must be a file name: paths ending in a separator,
//     ".", ".." or a filesystem root are rejected
//   - An existing directory is rejected
//
// All violations are reported as [ErrCodePathIsNoFile].
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodePathIsNoFile, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodePathIsNoFile, "path contains invalid characters: %q", path)
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodePathIsNoFile, "path %q has no file name", path)
	}

	switch base := filepath.Base(path); base {
	case ".", "..", string(filepath.Separator):
		return New(ErrCodePathIsNoFile, "path %q has no file name", path)
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return New(ErrCodePathIsNoFile, "path %q is a directory", path)
	}

	return nil
}

// sceneExtensions is the set of supported scene file extensions.
var sceneExtensions = map[string]bool{
	".toml": true,
	".json": true,
}

// ValidateSceneFilename checks that filename carries a supported scene
// extension (.toml or .json, case-insensitive).
func ValidateSceneFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidScene, "scene filename cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !sceneExtensions[ext] {
		return New(ErrCodeInvalidScene, "unsupported scene file %q (want .toml or .json)", filename)
	}

	return nil
}
