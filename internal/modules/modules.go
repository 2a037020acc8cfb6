// Package modules enumerates source modules below a source root and maps
// them to reference page locations.
package modules

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docops/internal/logfields"
)

var (
	// ErrSourceRootNotFound indicates the configured source root does not exist.
	ErrSourceRootNotFound = errors.New("source root not found")

	// ErrSourceWalkFailed indicates traversal of the source tree failed.
	ErrSourceWalkFailed = errors.New("source tree walk failed")
)

// Filter decides which discovered files are excluded.
type Filter struct {
	// SkipDirs excludes a file when any segment of its path matches.
	SkipDirs []string
	// SkipFiles excludes a file whose base name without extension matches.
	SkipFiles []string
}

// Skip reasons reported by Scan.
const (
	ReasonSkipDir  = "skip_dir"
	ReasonSkipFile = "skip_file"
	ReasonHidden   = "hidden"
)

// Skip is a discovered file Scan left out.
type Skip struct {
	Path   string
	Reason string
}

// SkipReason reports why the slash-separated path rel is excluded, or "" when
// it is kept. Dot-named files, including a bare extension such as ".py",
// have no usable module name and are always excluded.
func (f Filter) SkipReason(rel string) string {
	segments := strings.Split(filepath.ToSlash(rel), "/")
	for _, seg := range segments {
		if slices.Contains(f.SkipDirs, seg) {
			return ReasonSkipDir
		}
	}
	base := segments[len(segments)-1]
	if strings.HasPrefix(base, ".") {
		return ReasonHidden
	}
	if slices.Contains(f.SkipFiles, strings.TrimSuffix(base, path.Ext(base))) {
		return ReasonSkipFile
	}
	return ""
}

// Scan returns the slash-separated paths, relative to root, of every regular
// file with extension ext that the filter retains, sorted by path segments.
// Matching files the filter excludes are returned as skips in walk order.
func Scan(root, ext string, filter Filter) ([]string, []Skip, error) {
	var found []string
	var skipped []Skip
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root && errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrSourceRootNotFound, root)
			}
			return err
		}
		if !d.Type().IsRegular() || filepath.Ext(p) != ext {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if reason := filter.SkipReason(rel); reason != "" {
			slog.Debug("Skipping module", logfields.File(rel), slog.String("reason", reason))
			skipped = append(skipped, Skip{Path: rel, Reason: reason})
			return nil
		}
		found = append(found, rel)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSourceRootNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrSourceWalkFailed, root, err)
	}

	SortPaths(found)
	return found, skipped, nil
}

// SortPaths orders slash-separated paths by comparing their segments in turn,
// so "a/b.py" sorts before "a-b.py" even though '/' is the larger byte.
func SortPaths(paths []string) {
	slices.SortFunc(paths, func(a, b string) int {
		return slices.Compare(strings.Split(a, "/"), strings.Split(b, "/"))
	})
}
