package deploy

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docops/internal/config"
	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
	"git.home.luguber.info/inful/docops/internal/packaging"
)

// recordingRunner records commands and replies with scripted exit codes.
type recordingRunner struct {
	codes    map[string]int
	errs     map[string]error
	commands []Command
}

func (r *recordingRunner) Run(_ context.Context, c Command) (int, error) {
	r.commands = append(r.commands, c)
	sub := c.Args[0]
	if err := r.errs[sub]; err != nil {
		return -1, err
	}
	return r.codes[sub], nil
}

func packageFile(t *testing.T, version string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.py")
	require.NoError(t, os.WriteFile(path, []byte("name = \"tool\"\nversion = \""+version+"\"\n"), 0o600))
	return path
}

func baseRequest(t *testing.T) Request {
	return Request{
		PackageFile: packageFile(t, "18.1.0"),
		Scheme:      config.VersionSchemeFull,
		Options:     Options{Tool: "mike", Alias: "latest"},
	}
}

func TestDeploy_Success(t *testing.T) {
	runner := &recordingRunner{}
	res, err := New(runner).Deploy(context.Background(), baseRequest(t))
	require.NoError(t, err)

	require.Len(t, runner.commands, 1)
	assert.Equal(t, "mike deploy --update-aliases 18.1.0 latest", runner.commands[0].String())
	assert.Equal(t, "18.1.0", res.PackageVersion)
	assert.Equal(t, "18.1.0", res.DocsVersion)
	assert.False(t, res.DefaultSet)
}

func TestDeploy_PushAndSetDefault(t *testing.T) {
	req := baseRequest(t)
	req.Options.Push = true
	req.Options.SetDefault = true
	req.Options.Alias = "stable"

	runner := &recordingRunner{}
	res, err := New(runner).Deploy(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, runner.commands, 2)
	assert.Equal(t, "mike deploy --update-aliases 18.1.0 stable --push", runner.commands[0].String())
	assert.Equal(t, "mike set-default stable --push", runner.commands[1].String())
	assert.True(t, res.DefaultSet)
}

func TestDeploy_FailurePropagatesExitCodeAndSkipsSetDefault(t *testing.T) {
	req := baseRequest(t)
	req.Options.SetDefault = true

	runner := &recordingRunner{codes: map[string]int{"deploy": 1}}
	_, err := New(runner).Deploy(context.Background(), req)
	require.Error(t, err)

	exitErr, ok := ferrors.AsExit(err)
	require.True(t, ok)
	assert.Equal(t, 1, exitErr.Code)
	require.Len(t, runner.commands, 1, "set-default must not run after a failed deploy")
	assert.Equal(t, 1, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestDeploy_SetDefaultFailureIsIgnored(t *testing.T) {
	req := baseRequest(t)
	req.Options.SetDefault = true

	runner := &recordingRunner{codes: map[string]int{"set-default": 2}}
	res, err := New(runner).Deploy(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.DefaultSet)
	require.NotNil(t, res.DefaultErr)
	assert.Equal(t, ferrors.SeverityWarning, res.DefaultErr.Severity())
	assert.Equal(t, ferrors.CategoryExternal, res.DefaultErr.Category())
	assert.Equal(t, 2, res.DefaultErr.Fields()["exit_code"])

	startErr := errors.New("cannot start")
	runner = &recordingRunner{errs: map[string]error{"set-default": startErr}}
	res, err = New(runner).Deploy(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res.DefaultErr)
	assert.ErrorIs(t, res.DefaultErr, startErr)
	assert.Equal(t, ferrors.SeverityWarning, res.DefaultErr.Severity())
}

func TestDeploy_StartFailureIsReturned(t *testing.T) {
	startErr := ferrors.ExternalError("mike not found on PATH").Build()
	runner := &recordingRunner{errs: map[string]error{"deploy": startErr}}

	_, err := New(runner).Deploy(context.Background(), baseRequest(t))
	require.ErrorIs(t, err, startErr)
}

func TestDeploy_MajorMinorScheme(t *testing.T) {
	req := baseRequest(t)
	req.Scheme = config.VersionSchemeMajorMinor

	runner := &recordingRunner{}
	res, err := New(runner).Deploy(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "18.1", res.DocsVersion)
	assert.Equal(t, "18.1.0", res.PackageVersion)
	assert.Equal(t, []string{"deploy", "--update-aliases", "18.1", "latest"}, runner.commands[0].Args)
}

func TestDeploy_ExtractionErrorsRunNothing(t *testing.T) {
	req := baseRequest(t)
	req.PackageFile = filepath.Join(t.TempDir(), "package.py")

	runner := &recordingRunner{}
	_, err := New(runner).Deploy(context.Background(), req)
	require.ErrorIs(t, err, packaging.ErrDescriptorNotFound)
	assert.Empty(t, runner.commands)
}

func TestDeploy_DryRun(t *testing.T) {
	req := baseRequest(t)
	req.Options.SetDefault = true

	var out bytes.Buffer
	_, err := New(&DryRunRunner{Out: &out}).Deploy(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t,
		"Would run: mike deploy --update-aliases 18.1.0 latest\nWould run: mike set-default latest\n",
		out.String())
}

func TestCommands_TargetOptions(t *testing.T) {
	o := Options{Tool: "mike", Version: "1.2", Alias: "latest", Push: true, Remote: "upstream", Branch: "site", Title: "1.2 (beta)"}

	assert.Equal(t,
		[]string{"deploy", "--update-aliases", "1.2", "latest", "--push", "--remote", "upstream", "--branch", "site", "--title", "1.2 (beta)"},
		DeployCommand(o).Args)
	assert.Equal(t,
		[]string{"set-default", "latest", "--push", "--remote", "upstream", "--branch", "site"},
		SetDefaultCommand(o).Args)
}
