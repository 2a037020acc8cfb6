package modules

import (
	"path"
	"strings"
)

// IndexPage is the doc file name a package initializer collapses into.
const IndexPage = "index.md"

// Entry maps one source module to its reference page.
type Entry struct {
	Source  string   // source path relative to the source root
	NavKey  []string // navigation segments
	DocPath string   // page path relative to the reference subdir
	Ident   string   // dotted module identifier
}

// Name is the last navigation segment.
func (e Entry) Name() string {
	return e.NavKey[len(e.NavKey)-1]
}

// Resolve maps the slash-separated source path rel to its Entry.
// An initializer module collapses into its package's index page; ok is false
// when that leaves no segments, as for a top-level initializer, or when the
// file name has no stem.
func Resolve(rel, initializer string) (entry Entry, ok bool) {
	ext := path.Ext(rel)
	stripped := strings.TrimSuffix(rel, ext)
	parts := strings.Split(stripped, "/")
	docPath := stripped + ".md"
	if parts[len(parts)-1] == "" {
		return Entry{}, false
	}

	if parts[len(parts)-1] == initializer {
		parts = parts[:len(parts)-1]
		if len(parts) == 0 {
			return Entry{}, false
		}
		docPath = path.Join(path.Dir(docPath), IndexPage)
	}

	return Entry{
		Source:  rel,
		NavKey:  parts,
		DocPath: docPath,
		Ident:   strings.Join(parts, "."),
	}, true
}
