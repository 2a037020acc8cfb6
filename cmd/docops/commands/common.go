package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docops/internal/config"
	"git.home.luguber.info/inful/docops/internal/git"
	"git.home.luguber.info/inful/docops/internal/logfields"
	"git.home.luguber.info/inful/docops/internal/metrics"
	"git.home.luguber.info/inful/docops/internal/observability"
)

// Global carries per-invocation state shared by subcommands.
type Global struct {
	Ctx      context.Context
	RunID    string
	Recorder metrics.Recorder

	registry    *prom.Registry
	metricsFile string
}

// NewGlobal prepares the run context, the run-scoped logger and, when a
// metrics file is requested, a Prometheus registry.
func NewGlobal(ctx context.Context, cli *CLI, command string) *Global {
	runID := observability.NewRunID()
	ctx = observability.WithRunID(ctx, runID)
	if name := strings.Fields(command); len(name) > 0 {
		ctx = observability.WithCommand(ctx, name[0])
	}
	slog.SetDefault(observability.Logger(ctx))

	g := &Global{Ctx: ctx, RunID: runID, Recorder: metrics.NoopRecorder{}, metricsFile: cli.MetricsFile}
	if cli.MetricsFile != "" {
		g.registry = prom.NewRegistry()
		g.Recorder = metrics.NewPrometheusRecorder(g.registry)
	}
	return g
}

// Finish flushes run metrics to the textfile, if one was requested.
func (g *Global) Finish() error {
	if g.registry == nil {
		return nil
	}
	return metrics.WriteTextfile(g.registry, g.metricsFile)
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (default: docops.yaml in the project root)"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Root        string           `help:"Project root (default: enclosing git work tree or current directory)" type:"existingdir"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Deploy    DeployCmd    `cmd:"" help:"Deploy built documentation under the package version"`
	Reference ReferenceCmd `cmd:"" help:"Generate reference stub pages and the navigation summary"`
	Check     CheckCmd     `cmd:"" help:"Report navigation summary links to missing pages"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// Project is the resolved project root with its configuration.
type Project struct {
	Root   string
	Config *config.Config
	// Commit is the checked out commit, empty outside a repository.
	Commit string
}

// ProjectRoot resolves --root, falling back to the enclosing git work tree
// and then the current directory.
func (c *CLI) ProjectRoot() (string, error) {
	if c.Root != "" {
		return filepath.Abs(c.Root)
	}
	root, _, err := git.ResolveRoot(".")
	return root, err
}

// ConfigPath is --config or the default file in root.
func (c *CLI) ConfigPath(root string) (path string, optional bool) {
	if c.Config != "" {
		return c.Config, false
	}
	return filepath.Join(root, config.DefaultFileName), true
}

// LoadProject resolves the root and loads its configuration.
func (c *CLI) LoadProject() (*Project, error) {
	root, err := c.ProjectRoot()
	if err != nil {
		return nil, err
	}
	cfgPath, optional := c.ConfigPath(root)
	cfg, err := config.Load(cfgPath, optional)
	if err != nil {
		return nil, err
	}

	p := &Project{Root: root, Config: cfg}
	if head, err := git.ReadHead(root); err == nil {
		p.Commit = head.Hash
		slog.Debug("Resolved project", logfields.Path(root), logfields.Commit(head.Short()))
	} else {
		slog.Debug("Resolved project outside git", logfields.Path(root))
	}
	return p, nil
}
