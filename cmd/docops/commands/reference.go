package commands

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/docops/internal/refgen"
	"git.home.luguber.info/inful/docops/internal/watch"
)

// ReferenceCmd implements the 'reference' command.
type ReferenceCmd struct {
	Watch        bool `help:"Regenerate whenever the source tree changes"`
	Descriptions bool `help:"Prefix each page with the module docstring summary"`
}

func (r *ReferenceCmd) Run(g *Global, root *CLI) error {
	p, err := root.LoadProject()
	if err != nil {
		return err
	}
	return r.run(g, p)
}

func (r *ReferenceCmd) run(g *Global, p *Project) error {
	cfg := p.Config.Reference
	if r.Descriptions {
		cfg.Descriptions = true
	}
	gen := refgen.New(p.Root, cfg).
		WithRecorder(g.Recorder).
		WithProvenance(g.RunID, p.Commit)

	if _, err := gen.Generate(g.Ctx); err != nil {
		return err
	}
	if !r.Watch {
		return nil
	}

	task := func(ctx context.Context) error {
		_, err := gen.Generate(ctx)
		return err
	}
	// Only module files can change the output.
	ignore := func(path string) bool {
		ext := filepath.Ext(path)
		return ext != "" && ext != cfg.Extension
	}
	return watch.New([]string{gen.SourceRoot()}, cfg.DebounceDuration(), ignore, task).Run(g.Ctx)
}
