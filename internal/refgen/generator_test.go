package refgen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docops/internal/config"
	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
	"git.home.luguber.info/inful/docops/internal/manifest"
	"git.home.luguber.info/inful/docops/internal/metrics"
	"git.home.luguber.info/inful/docops/internal/modules"
	"git.home.luguber.info/inful/docops/internal/testutil/testutils"
)

func project(t *testing.T, files map[string]string) (string, config.ReferenceConfig) {
	t.Helper()
	root := t.TempDir()
	testutils.WriteTree(t, root, files)
	return root, config.Default().Reference
}

func TestGenerate_StubsAndSummary(t *testing.T) {
	root, cfg := project(t, map[string]string{
		"python/a.py":                 "x = 1\n",
		"python/b/__init__.py":        "",
		"python/b/c.py":               "",
		"python/b/__pycache__/c.py":   "",
		"python/__init__.py":          "",
		"python/tool/__main__.py":     "",
		"python/_dev/scratch.py":      "",
		"python/b/.deprecated/old.py": "",
	})

	res, err := New(root, cfg).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Modules)
	testutils.NewFileAssertions(t, filepath.Join(root, "docs", "technical")).
		AssertFileContent("a.md", "::: a").
		AssertFileContent("b/index.md", "::: b").
		AssertFileContent("b/c.md", "::: b.c").
		AssertFileContent("SUMMARY.md", "* [a](a.md)\n* [b](b/index.md)\n    * [c](b/c.md)\n").
		AssertFileMissing("index.md").
		AssertFileMissing("tool").
		AssertFileExists(manifest.FileName).
		AssertFileCount(".", 5)

	p, ok := res.Manifest.Lookup("b/c.md")
	require.True(t, ok)
	assert.Equal(t, "python/b/c.py", p.EditPath)
	assert.Equal(t, "b.c", p.Ident)
	assert.Empty(t, p.EditURL)
	assert.Equal(t, filepath.Join(root, "docs", "technical", "SUMMARY.md"), res.SummaryPath)
}

type skipRecorder struct {
	metrics.NoopRecorder
	skipped map[string]int
}

func (r *skipRecorder) IncSkipped(reason string) { r.skipped[reason]++ }

func TestGenerate_CountsSkippedFiles(t *testing.T) {
	root, cfg := project(t, map[string]string{
		"python/a.py":                 "",
		"python/.py":                  "",
		"python/b/.hidden.py":         "",
		"python/__init__.py":          "",
		"python/tool/__main__.py":     "",
		"python/b/__pycache__/c.py":   "",
		"python/b/.deprecated/old.py": "",
	})
	rec := &skipRecorder{skipped: map[string]int{}}

	res, err := New(root, cfg).WithRecorder(rec).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Modules)
	assert.Equal(t, map[string]int{
		modules.ReasonHidden:    2,
		modules.ReasonSkipFile:  1,
		modules.ReasonSkipDir:   2,
		"top_level_initializer": 1,
	}, rec.skipped)
	testutils.NewFileAssertions(t, filepath.Join(root, "docs", "technical")).
		AssertFileContent("SUMMARY.md", "* [a](a.md)\n").
		AssertFileMissing(".md")
}

func TestGenerate_NestedSectionsWithoutIndex(t *testing.T) {
	root, cfg := project(t, map[string]string{
		"python/pkg/sub/mod.py": "",
		"python/pkg/other.py":   "",
	})

	_, err := New(root, cfg).Generate(context.Background())
	require.NoError(t, err)

	testutils.NewFileAssertions(t, filepath.Join(root, "docs", "technical")).
		AssertFileContent("SUMMARY.md", "* pkg\n    * [other](pkg/other.md)\n    * sub\n        * [mod](pkg/sub/mod.md)\n").
		AssertFileContent("pkg/sub/mod.md", "::: pkg.sub.mod")
}

func TestGenerate_UnchangedRunWritesNothing(t *testing.T) {
	root, cfg := project(t, map[string]string{
		"python/a.py":   "",
		"python/b/c.py": "",
	})
	gen := New(root, cfg)

	first, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, first.Written)

	second, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.Written)
	assert.Equal(t, 3, second.Unchanged)
}

func TestGenerate_RewritesDeletedOrEditedPage(t *testing.T) {
	root, cfg := project(t, map[string]string{"python/a.py": "", "python/b.py": ""})
	gen := New(root, cfg)
	_, err := gen.Generate(context.Background())
	require.NoError(t, err)

	out := gen.OutputDir()
	require.NoError(t, os.Remove(filepath.Join(out, "a.md")))
	require.NoError(t, os.WriteFile(filepath.Join(out, "b.md"), []byte("edited"), 0o600))

	res, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Written)
	testutils.NewFileAssertions(t, out).
		AssertFileContent("a.md", "::: a").
		AssertFileContent("b.md", "::: b")
}

func TestGenerate_PrunesRemovedModules(t *testing.T) {
	root, cfg := project(t, map[string]string{
		"python/a.py":        "",
		"python/old/gone.py": "",
	})
	gen := New(root, cfg)
	_, err := gen.Generate(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "python", "old")))
	res, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Pruned)
	testutils.NewFileAssertions(t, gen.OutputDir()).
		AssertFileMissing("old/gone.md").
		AssertFileMissing("old").
		AssertFileContent("SUMMARY.md", "* [a](a.md)\n")
	_, ok := res.Manifest.Lookup("old/gone.md")
	assert.False(t, ok)
}

func TestGenerate_KeepsHandEditedStalePage(t *testing.T) {
	root, cfg := project(t, map[string]string{"python/a.py": "", "python/b.py": ""})
	gen := New(root, cfg)
	_, err := gen.Generate(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(gen.OutputDir(), "b.md"), []byte("# Notes\n"), 0o600))
	require.NoError(t, os.Remove(filepath.Join(root, "python", "b.py")))

	res, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Pruned)
	assert.Equal(t, 1, res.Kept)
	testutils.NewFileAssertions(t, gen.OutputDir()).AssertFileContent("b.md", "# Notes\n")
}

func TestGenerate_LeavesUntrackedFilesAlone(t *testing.T) {
	root, cfg := project(t, map[string]string{
		"python/a.py":                "",
		"docs/technical/overview.md": "hand written",
	})

	_, err := New(root, cfg).Generate(context.Background())
	require.NoError(t, err)
	testutils.NewFileAssertions(t, filepath.Join(root, "docs", "technical")).
		AssertFileContent("overview.md", "hand written")
}

func TestGenerate_Descriptions(t *testing.T) {
	root, cfg := project(t, map[string]string{
		"python/pkg/__init__.py": "\"\"\"Package tools.\n\nLonger text.\n\"\"\"\n",
		"python/pkg/plain.py":    "import os\n",
		"python/pkg/broken.py":   "\"\"\"never closed\n",
	})
	cfg.Descriptions = true

	_, err := New(root, cfg).Generate(context.Background())
	require.NoError(t, err)

	testutils.NewFileAssertions(t, filepath.Join(root, "docs", "technical")).
		AssertFileContent("pkg/index.md", "# pkg\n\n_Package tools._\n\n---\n\n::: pkg").
		AssertFileContent("pkg/plain.md", "::: pkg.plain").
		AssertFileContent("pkg/broken.md", "::: pkg.broken")
}

func TestGenerate_EditURLAndProvenance(t *testing.T) {
	root, cfg := project(t, map[string]string{"src/mod.py": ""})
	cfg.SourceDir = "src"
	cfg.EditURI = "https://example.com/repo/edit/main/"

	res, err := New(root, cfg).WithProvenance("run-42", "abc123").Generate(context.Background())
	require.NoError(t, err)

	p, ok := res.Manifest.Lookup("mod.md")
	require.True(t, ok)
	assert.Equal(t, "src/mod.py", p.EditPath)
	assert.Equal(t, "https://example.com/repo/edit/main/src/mod.py", p.EditURL)

	loaded, err := manifest.Load(filepath.Join(root, "docs", "technical", manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "run-42", loaded.RunID)
	assert.Equal(t, "abc123", loaded.Commit)
}

func TestGenerate_MissingSourceRoot(t *testing.T) {
	root := t.TempDir()
	_, err := New(root, config.Default().Reference).Generate(context.Background())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	assert.ErrorIs(t, err, modules.ErrSourceRootNotFound)
}

func TestGenerate_EmptySourceTreeWritesEmptySummary(t *testing.T) {
	root, cfg := project(t, map[string]string{"python/README.txt": "no modules"})

	res, err := New(root, cfg).Generate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Modules)
	testutils.NewFileAssertions(t, filepath.Join(root, "docs", "technical")).
		AssertFileContent("SUMMARY.md", "")
}

func TestGenerate_CanceledContext(t *testing.T) {
	root, cfg := project(t, map[string]string{"python/a.py": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(root, cfg).Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStub(t *testing.T) {
	entry, ok := modules.Resolve("pkg/mod.py", "__init__")
	require.True(t, ok)
	assert.Equal(t, "::: pkg.mod", Stub(entry, ""))
	assert.Equal(t, "# mod\n\n_Summary._\n\n---\n\n::: pkg.mod", Stub(entry, "Summary."))
}
