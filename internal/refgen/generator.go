package refgen

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/docops/internal/config"
	"git.home.luguber.info/inful/docops/internal/docstring"
	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
	"git.home.luguber.info/inful/docops/internal/literatenav"
	"git.home.luguber.info/inful/docops/internal/logfields"
	"git.home.luguber.info/inful/docops/internal/manifest"
	"git.home.luguber.info/inful/docops/internal/metrics"
	"git.home.luguber.info/inful/docops/internal/modules"
)

// Result summarizes one generation run.
type Result struct {
	Modules   int
	Written   int
	Unchanged int
	Pruned    int
	// Kept counts stale pages left in place because they were edited by hand.
	Kept        int
	SummaryPath string
	Nav         *literatenav.Nav
	Manifest    *manifest.Manifest
}

// Generator writes the reference tree for one project.
type Generator struct {
	root     string
	cfg      config.ReferenceConfig
	recorder metrics.Recorder
	runID    string
	commit   string
}

// New creates a Generator for the project at root. cfg must have defaults applied.
func New(root string, cfg config.ReferenceConfig) *Generator {
	return &Generator{root: root, cfg: cfg, recorder: metrics.NoopRecorder{}}
}

// WithRecorder injects a metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// WithProvenance stamps the manifest with the run ID and source commit.
func (g *Generator) WithProvenance(runID, commit string) *Generator {
	g.runID = runID
	g.commit = commit
	return g
}

// SourceRoot is the absolute directory scanned for modules.
func (g *Generator) SourceRoot() string {
	return filepath.Join(g.root, filepath.FromSlash(g.cfg.SourceDir))
}

// OutputDir is the absolute directory the reference tree is written to.
func (g *Generator) OutputDir() string {
	return filepath.Join(g.root, filepath.FromSlash(g.cfg.DocsDir), filepath.FromSlash(g.cfg.Subdir))
}

// Generate scans the source tree and brings the reference tree up to date.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	start := time.Now()
	defer func() { g.recorder.ObserveGeneration(time.Since(start)) }()

	filter := modules.Filter{SkipDirs: g.cfg.SkipDirs, SkipFiles: g.cfg.SkipFiles}
	sources, skipped, err := modules.Scan(g.SourceRoot(), g.cfg.Extension, filter)
	if err != nil {
		if errors.Is(err, modules.ErrSourceRootNotFound) {
			return Result{}, ferrors.NotFoundError("source directory not found").
				WithCause(err).
				WithContext("path", g.SourceRoot()).
				Build()
		}
		return Result{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to scan source tree").
			WithContext("path", g.SourceRoot()).
			Build()
	}

	for _, skip := range skipped {
		g.recorder.IncSkipped(skip.Reason)
	}

	outDir := g.OutputDir()
	manifestPath := filepath.Join(outDir, manifest.FileName)
	prev, err := manifest.Load(manifestPath)
	if err != nil {
		slog.Warn("Ignoring unreadable manifest", logfields.Path(manifestPath), logfields.Error(err))
		prev = manifest.New()
	}

	res := Result{Nav: &literatenav.Nav{}}
	next := manifest.New()
	next.RunID = g.runID
	next.Commit = g.commit

	for _, rel := range sources {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		entry, ok := modules.Resolve(rel, g.cfg.Initializer)
		if !ok {
			slog.Debug("Skipping top-level initializer", logfields.File(rel))
			g.recorder.IncSkipped("top_level_initializer")
			continue
		}
		res.Modules++

		if err := res.Nav.Set(entry.NavKey, entry.DocPath); err != nil {
			return res, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to register navigation entry").
				WithContext("module", entry.Ident).
				Build()
		}

		summary := ""
		if g.cfg.Descriptions {
			summary, _ = docstring.Summary(filepath.Join(g.SourceRoot(), filepath.FromSlash(rel)))
		}

		editPath := path.Join(filepath.ToSlash(g.cfg.SourceDir), rel)
		page := manifest.Page{
			Doc:      entry.DocPath,
			Ident:    entry.Ident,
			EditPath: editPath,
			EditURL:  g.editURL(editPath),
		}
		if err := g.emit(outDir, &page, []byte(Stub(entry, summary)), prev, &res); err != nil {
			return res, err
		}
		next.Add(page)
		slog.Debug("Reference page", logfields.Module(entry.Ident), logfields.DocPath(entry.DocPath))
	}
	g.recorder.SetModules(res.Modules)

	summaryPage := manifest.Page{Doc: g.cfg.Summary}
	if err := g.emit(outDir, &summaryPage, []byte(res.Nav.BuildLiterate()), prev, &res); err != nil {
		return res, err
	}
	next.Add(summaryPage)
	res.SummaryPath = filepath.Join(outDir, filepath.FromSlash(g.cfg.Summary))

	for _, stale := range prev.Stale(next) {
		g.prune(outDir, stale, &res)
	}

	if err := next.Save(manifestPath); err != nil {
		return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to save manifest").
			WithContext("path", manifestPath).
			Build()
	}
	res.Manifest = next

	slog.Info("Reference pages generated",
		logfields.Count(res.Modules),
		slog.Int("written", res.Written),
		slog.Int("unchanged", res.Unchanged),
		slog.Int("pruned", res.Pruned),
		logfields.Path(outDir))
	return res, nil
}

func (g *Generator) editURL(editPath string) string {
	if g.cfg.EditURI == "" {
		return ""
	}
	return strings.TrimSuffix(g.cfg.EditURI, "/") + "/" + editPath
}

// emit writes content to page.Doc unless the previous run produced the same
// bytes and they are still on disk.
func (g *Generator) emit(outDir string, page *manifest.Page, content []byte, prev *manifest.Manifest, res *Result) error {
	page.Fingerprint = manifest.Fingerprint(content)
	full := filepath.Join(outDir, filepath.FromSlash(page.Doc))

	if old, ok := prev.Lookup(page.Doc); ok && old.Fingerprint == page.Fingerprint && onDisk(full, page.Fingerprint) {
		res.Unchanged++
		g.recorder.IncPage(metrics.PageUnchanged)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create page directory").
			WithContext("path", filepath.Dir(full)).
			Build()
	}
	// #nosec G306 -- generated documentation is world-readable
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryGenerate, "failed to write page").
			WithContext("path", full).
			Build()
	}
	res.Written++
	g.recorder.IncPage(metrics.PageWritten)
	return nil
}

// prune removes a page no longer generated. Pages edited since they were
// written are left in place.
func (g *Generator) prune(outDir string, page manifest.Page, res *Result) {
	full := filepath.Join(outDir, filepath.FromSlash(page.Doc))
	// #nosec G304 -- path is inside the generated tree
	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		slog.Warn("Cannot read stale page", logfields.DocPath(page.Doc), logfields.Error(err))
		return
	}
	if manifest.Fingerprint(data) != page.Fingerprint {
		slog.Warn("Stale page was modified, leaving it in place", logfields.DocPath(page.Doc))
		res.Kept++
		return
	}
	if err := os.Remove(full); err != nil {
		slog.Warn("Failed to prune stale page", logfields.DocPath(page.Doc), logfields.Error(err))
		return
	}
	removeEmptyParents(outDir, filepath.Dir(full))
	res.Pruned++
	g.recorder.IncPage(metrics.PagePruned)
	slog.Info("Pruned stale page", logfields.DocPath(page.Doc))
}

func onDisk(full, fingerprint string) bool {
	// #nosec G304 -- path is inside the generated tree
	data, err := os.ReadFile(full)
	return err == nil && manifest.Fingerprint(data) == fingerprint
}

// removeEmptyParents deletes empty directories from dir up to, not including, stop.
func removeEmptyParents(stop, dir string) {
	for dir != stop && strings.HasPrefix(dir, stop+string(filepath.Separator)) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
