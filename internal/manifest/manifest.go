// Package manifest records the reference pages written by a generation run
// so the next run can skip unchanged pages and prune stale ones.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// FileName is the manifest's name inside the generated tree.
const FileName = ".docops-manifest.yaml"

// SchemaVersion is bumped when the manifest layout changes incompatibly.
const SchemaVersion = 1

// ErrUnsupportedSchema indicates a manifest written by a newer layout.
var ErrUnsupportedSchema = errors.New("unsupported manifest schema version")

// Manifest is the record of one generation run.
type Manifest struct {
	Version int    `yaml:"version"`
	RunID   string `yaml:"run_id,omitempty"`
	Commit  string `yaml:"commit,omitempty"`
	Pages   []Page `yaml:"pages"`
}

// Page is one generated file, relative to the generated tree.
type Page struct {
	Doc         string `yaml:"doc"`
	Ident       string `yaml:"ident,omitempty"`
	EditPath    string `yaml:"edit_path,omitempty"` // source relative to the project root
	EditURL     string `yaml:"edit_url,omitempty"`
	Fingerprint string `yaml:"fingerprint"`
}

// New returns an empty manifest for the current schema.
func New() *Manifest {
	return &Manifest{Version: SchemaVersion}
}

// Fingerprint returns the content fingerprint stored for a page.
func Fingerprint(content []byte) string {
	return mdfp.CalculateFingerprintFromParts("", string(content))
}

// Add records a page, replacing any earlier record with the same Doc.
func (m *Manifest) Add(p Page) {
	for i := range m.Pages {
		if m.Pages[i].Doc == p.Doc {
			m.Pages[i] = p
			return
		}
	}
	m.Pages = append(m.Pages, p)
}

// Lookup returns the record for doc.
func (m *Manifest) Lookup(doc string) (Page, bool) {
	if m == nil {
		return Page{}, false
	}
	for _, p := range m.Pages {
		if p.Doc == doc {
			return p, true
		}
	}
	return Page{}, false
}

// Stale returns the pages recorded in m that next no longer lists, sorted by Doc.
func (m *Manifest) Stale(next *Manifest) []Page {
	if m == nil {
		return nil
	}
	var stale []Page
	for _, p := range m.Pages {
		if _, ok := next.Lookup(p.Doc); !ok {
			stale = append(stale, p)
		}
	}
	slices.SortFunc(stale, func(a, b Page) int { return strings.Compare(a.Doc, b.Doc) })
	return stale
}

// ToYAML serializes the manifest with pages in Doc order.
func (m *Manifest) ToYAML() ([]byte, error) {
	out := *m
	out.Pages = slices.Clone(m.Pages)
	slices.SortFunc(out.Pages, func(a, b Page) int { return strings.Compare(a.Doc, b.Doc) })
	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromYAML deserializes a manifest.
func FromYAML(data []byte) (*Manifest, error) {
	m := New()
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if m.Version > SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSchema, m.Version)
	}
	return m, nil
}

// Load reads the manifest at path. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	// #nosec G304 -- path is the manifest inside the configured output tree
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return FromYAML(data)
}

// Save writes the manifest to path, replacing it atomically.
func (m *Manifest) Save(path string) error {
	data, err := m.ToYAML()
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("create manifest temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}
