package refgen

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
	"git.home.luguber.info/inful/docops/internal/literatenav"
)

// BrokenLink is a nav item whose page is missing.
type BrokenLink struct {
	Title    string
	Filename string
}

// Check reads the literate nav summaryName inside outDir and reports every
// link whose target page does not exist. External links are ignored.
func Check(outDir, summaryName string) ([]BrokenLink, error) {
	summaryPath := filepath.Join(outDir, filepath.FromSlash(summaryName))
	// #nosec G304 -- summary lives in the configured output tree
	data, err := os.ReadFile(summaryPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.NotFoundError("navigation summary not found").
				WithContext("path", summaryPath).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read navigation summary").
			WithContext("path", summaryPath).
			Build()
	}

	base := path.Dir(filepath.ToSlash(summaryName))
	var broken []BrokenLink
	for _, item := range literatenav.Parse(data) {
		if item.Filename == "" || strings.Contains(item.Filename, "://") {
			continue
		}
		target := path.Join(base, item.Filename)
		if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(target))); err != nil {
			broken = append(broken, BrokenLink{Title: item.Title, Filename: item.Filename})
		}
	}
	return broken, nil
}
