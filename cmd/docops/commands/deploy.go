package commands

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docops/internal/config"
	"git.home.luguber.info/inful/docops/internal/deploy"
	"git.home.luguber.info/inful/docops/internal/logfields"
	"git.home.luguber.info/inful/docops/internal/packaging"
)

// DeployCmd implements the 'deploy' command.
type DeployCmd struct {
	Push       bool   `help:"Push the documentation branch after deploying"`
	SetDefault bool   `name:"set-default" help:"Make the alias the site's default version"`
	Alias      string `help:"Alias to update alongside the version (default: latest)"`
	MajorMinor bool   `name:"major-minor" help:"Deploy under MAJOR.MINOR instead of the full version"`
	DryRun     bool   `name:"dry-run" help:"Print the commands instead of running them"`

	// runner overrides the process runner in tests.
	runner deploy.Runner
}

func (d *DeployCmd) Run(g *Global, root *CLI) error {
	p, err := root.LoadProject()
	if err != nil {
		return err
	}
	return d.run(g, p)
}

func (d *DeployCmd) run(g *Global, p *Project) error {
	cfg := p.Config.Deploy

	scheme := cfg.VersionScheme
	if d.MajorMinor {
		scheme = config.VersionSchemeMajorMinor
	}
	alias := cfg.Alias
	if d.Alias != "" {
		alias = d.Alias
	}

	runner := d.runner
	switch {
	case runner != nil:
	case d.DryRun:
		runner = &deploy.DryRunRunner{Out: os.Stdout}
	default:
		runner = deploy.NewExecRunner(p.Root)
	}

	if p.Commit != "" {
		slog.Info("Deploying from commit", logfields.Commit(p.Commit))
	}

	_, err := deploy.New(runner).WithRecorder(g.Recorder).Deploy(g.Ctx, deploy.Request{
		PackageFile: packaging.Locate(p.Root, cfg.PackageFile),
		Scheme:      scheme,
		Options: deploy.Options{
			Tool:       cfg.Tool,
			Alias:      alias,
			Push:       d.Push || cfg.Push,
			SetDefault: d.SetDefault,
			Remote:     cfg.Remote,
			Branch:     cfg.Branch,
			Title:      cfg.Title,
		},
	})
	return err
}
