package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
)

// ErrToolNotFound indicates the versioning tool is not on PATH.
var ErrToolNotFound = errors.New("versioning tool not found")

// Runner executes a Command and reports its exit status.
//
// Contract:
//
//	Run(ctx, cmd) (exitCode, err)
//	  err is non-nil only when the command could not be started at all;
//	  a command that ran and failed returns its non-zero exit code and a nil error.
type Runner interface {
	Run(ctx context.Context, cmd Command) (int, error)
}

// ExecRunner runs the tool as a child process with inherited output streams.
type ExecRunner struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner working in dir and writing to the process streams.
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{Dir: dir, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) (int, error) {
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return -1, ferrors.ExternalError(c.Name+" not found on PATH").
			WithCause(fmt.Errorf("%w: %w", ErrToolNotFound, err)).
			WithContext("tool", c.Name).
			Build()
	}

	// #nosec G204 -- tool comes from LookPath, arguments are built by DeployCommand/SetDefaultCommand
	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = r.Dir
	cmd.Stdin = nil
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	slog.Debug("ExecRunner invoking tool", "path", path, "dir", r.Dir)

	err = cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, ferrors.WrapError(err, ferrors.CategoryExternal, "failed to run "+c.Name).
			Fatal().
			WithContext("command", c.String()).
			Build()
	}
	return 0, nil
}

// DryRunRunner prints commands instead of running them.
type DryRunRunner struct {
	Out io.Writer
}

func (r *DryRunRunner) Run(_ context.Context, c Command) (int, error) {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	_, _ = fmt.Fprintf(out, "Would run: %s\n", c)
	return 0, nil
}
