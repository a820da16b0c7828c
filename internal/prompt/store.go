// Package prompt resolves a (variant, language) pair to prompt template
// text and merges the template with user-supplied values.
//
// Templates are plain UTF-8 files deployed alongside the binary; at request
// time the package treats them as a read-only key-value lookup from a
// logical path ("story/general/en.md") to text. A missing template is a
// configuration fault, never a user error.
package prompt

import (
	"fmt"
	"io/fs"
)

// Store is the template lookup the resolver reads from. Implementations
// must be safe for concurrent reads.
type Store interface {
	// Load returns the template text stored under the logical path.
	// A miss returns a *TemplateMissingError.
	Load(path string) (string, error)
}

// TemplateMissingError reports a template lookup miss. The Path names a
// deployed file, so handlers must log it but never echo it to clients.
type TemplateMissingError struct {
	Path string
	Err  error
}

func (e *TemplateMissingError) Error() string {
	return fmt.Sprintf("prompt template %q not found: %v", e.Path, e.Err)
}

func (e *TemplateMissingError) Unwrap() error { return e.Err }

// FSStore serves templates from an fs.FS, typically os.DirFS over the
// deployed prompts directory. Tests use fstest.MapFS.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore wraps fsys as a template store.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// Load implements Store.
func (s *FSStore) Load(path string) (string, error) {
	data, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		return "", &TemplateMissingError{Path: path, Err: err}
	}
	return string(data), nil
}
