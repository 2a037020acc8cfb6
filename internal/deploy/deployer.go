package deploy

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docops/internal/config"
	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
	"git.home.luguber.info/inful/docops/internal/logfields"
	"git.home.luguber.info/inful/docops/internal/metrics"
	"git.home.luguber.info/inful/docops/internal/packaging"
)

// Request is one deploy invocation.
type Request struct {
	PackageFile string
	Scheme      config.VersionScheme
	Options     Options // Version is filled in from PackageFile
}

// Result summarizes a completed deploy.
type Result struct {
	PackageVersion string
	DocsVersion    string
	Alias          string
	// DefaultSet reports whether set-default ran and exited 0.
	DefaultSet bool
	// DefaultErr is the warning logged when set-default failed.
	DefaultErr *ferrors.ClassifiedError
}

// Deployer publishes built documentation under the package version.
type Deployer struct {
	runner   Runner
	recorder metrics.Recorder
}

// New creates a Deployer that invokes the versioning tool through runner.
func New(runner Runner) *Deployer {
	return &Deployer{runner: runner, recorder: metrics.NoopRecorder{}}
}

// WithRecorder injects a metrics recorder.
func (d *Deployer) WithRecorder(r metrics.Recorder) *Deployer {
	if r != nil {
		d.recorder = r
	}
	return d
}

// DocsVersion picks the version name the docs are published under.
func DocsVersion(version string, scheme config.VersionScheme) string {
	if scheme == config.VersionSchemeMajorMinor {
		return packaging.MajorMinor(version)
	}
	return version
}

// Deploy extracts the version and publishes the docs.
//
// A non-zero deploy exit status is returned as *errors.ExitError carrying the
// same code, and set-default is never attempted. The set-default step is
// fire-and-forget: its outcome is logged but never fails the deploy.
func (d *Deployer) Deploy(ctx context.Context, req Request) (Result, error) {
	version, err := packaging.ExtractVersion(req.PackageFile)
	if err != nil {
		return Result{}, err
	}

	opts := req.Options
	opts.Version = DocsVersion(version, req.Scheme)
	res := Result{PackageVersion: version, DocsVersion: opts.Version, Alias: opts.Alias}

	slog.Info("Package version", logfields.Version(version))
	slog.Info("Documentation version", logfields.Version(opts.Version))

	deployCmd := DeployCommand(opts)
	slog.Info("Running", logfields.Command(deployCmd.String()))
	code, err := d.run(ctx, "deploy", deployCmd)
	if err != nil {
		return res, err
	}
	if code != 0 {
		slog.Error("Failed to deploy documentation", logfields.ExitCode(code))
		return res, &ferrors.ExitError{Command: deployCmd.String(), Code: code}
	}

	if opts.SetDefault {
		defaultCmd := SetDefaultCommand(opts)
		slog.Info("Setting default", logfields.Command(defaultCmd.String()))
		if warn := d.setDefault(ctx, defaultCmd); warn != nil {
			res.DefaultErr = warn
			slog.LogAttrs(ctx, warn.Level(), warn.Message(), warn.Attrs()...)
		} else {
			res.DefaultSet = true
		}
	}

	slog.Info("Documentation deployed",
		logfields.Version(opts.Version),
		logfields.Alias(opts.Alias))
	return res, nil
}

// setDefault runs c and reports any failure as a warning.
func (d *Deployer) setDefault(ctx context.Context, c Command) *ferrors.ClassifiedError {
	code, err := d.run(ctx, "set_default", c)
	switch {
	case err != nil:
		return ferrors.WrapError(err, ferrors.CategoryExternal, "Set-default could not run").
			Warning().
			WithContext(logfields.KeyCommand, c.String()).
			Build()
	case code != 0:
		return ferrors.NewError(ferrors.CategoryExternal, "Set-default exited non-zero").
			Warning().
			WithContext(logfields.KeyCommand, c.String()).
			WithContext(logfields.KeyExitCode, code).
			Build()
	}
	return nil
}

func (d *Deployer) run(ctx context.Context, step string, c Command) (int, error) {
	start := time.Now()
	code, err := d.runner.Run(ctx, c)
	d.recorder.ObserveCommand(step, time.Since(start), code)
	return code, err
}
