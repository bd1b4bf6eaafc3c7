// Package resolve maps bare filenames reported by tools (Doxygen in
// particular omits directories) to real paths under a working directory,
// so the IDE hyperlink lands on an openable file.
package resolve

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Resolver finds files by basename under a root directory. Lookups are
// cached, so repeated diagnostics against the same file walk the tree once.
// Not safe for concurrent use; the engine consumes input single-threaded.
type Resolver struct {
	root  string
	cache map[string]string
}

// New creates a resolver rooted at dir.
func New(dir string) *Resolver {
	return &Resolver{
		root:  dir,
		cache: make(map[string]string),
	}
}

// Resolve returns the first path under the root whose basename equals name.
// Names that already carry a path separator are assumed to be relative or
// absolute paths and are returned unchanged, as are names with no match.
func (r *Resolver) Resolve(name string) string {
	if strings.ContainsAny(name, `/\`) {
		return name
	}
	if hit, ok := r.cache[name]; ok {
		return hit
	}

	found := name
	_ = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: keep searching the rest.
			return nil
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})

	r.cache[name] = found
	return found
}
