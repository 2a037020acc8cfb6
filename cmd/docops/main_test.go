package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/docops/internal/testutil/testutils"
)

func TestRun_DeployDryRun(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteTree(t, dir, map[string]string{"package.py": "version = \"3.2.1\"\n"})

	assert.Equal(t, 0, run([]string{"--root", dir, "deploy", "--dry-run", "--set-default"}))
}

func TestRun_DeployMissingPackageFile(t *testing.T) {
	assert.Equal(t, 1, run([]string{"--root", t.TempDir(), "deploy", "--dry-run"}))
}

func TestRun_DeployWithoutVersionLine(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteTree(t, dir, map[string]string{"package.py": "name = \"tool\"\n"})

	assert.Equal(t, 1, run([]string{"--root", dir, "deploy", "--dry-run"}))
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteTree(t, dir, map[string]string{"docops.yaml": "deploy:\n  version_scheme: calendar\n"})

	assert.Equal(t, 7, run([]string{"--root", dir, "deploy", "--dry-run"}))
}

func TestRun_ReferenceThenCheck(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteTree(t, dir, map[string]string{"python/pkg/mod.py": ""})

	assert.Equal(t, 0, run([]string{"--root", dir, "reference"}))
	testutils.NewFileAssertions(t, filepath.Join(dir, "docs", "technical")).
		AssertFileContent("pkg/mod.md", "::: pkg.mod")
	assert.Equal(t, 0, run([]string{"--root", dir, "check"}))
}

func TestRun_CheckWithoutSummary(t *testing.T) {
	assert.Equal(t, 1, run([]string{"--root", t.TempDir(), "check"}))
}
