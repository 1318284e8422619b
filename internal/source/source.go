// Package source implements LALG's file-loading boundary: a whole-file
// read with an extension allow-list check, wrapping any failure as an
// IoError per spec.md §7.
//
// Grounded on the teacher's cmd/*/main.go pattern of a single os.ReadFile
// call at the CLI boundary, pulled out into its own collaborator per
// spec.md §2's pipeline diagram (FileSource is an explicit component,
// not inline CLI code).
package source

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lalg-lang/lalg/internal/errors"
)

// DefaultExtensions are the two source dialects spec.md §6 names: the
// LALG variant (.lalg) and the Pascal variant (.pas).
var DefaultExtensions = []string{".lalg", ".pas"}

// FileSource reads a single source file from disk, rejecting any
// extension not in its allow-list before touching the filesystem.
type FileSource struct {
	allowedExt map[string]bool
}

// New returns a FileSource accepting the given extensions (each including
// its leading dot, e.g. ".lalg"). An empty list falls back to
// DefaultExtensions.
func New(extensions []string) *FileSource {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}
	return &FileSource{allowedExt: allowed}
}

// Load reads path in full, returning its contents as a string. It fails
// fast on a disallowed extension without ever opening the file, and
// wraps any OS-level read failure as an IoError.
func (fs *FileSource) Load(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !fs.allowedExt[ext] {
		return "", errors.New(errors.KindIO, 0, 0,
			"unrecognized source extension "+ext+" for "+path).WithSource("", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to read "+path).WithSource("", path)
	}
	return string(data), nil
}
