package commands

import (
	"fmt"
	"io"
	"os"

	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
	"git.home.luguber.info/inful/docops/internal/refgen"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	out io.Writer
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	p, err := root.LoadProject()
	if err != nil {
		return err
	}
	return c.run(p)
}

func (c *CheckCmd) run(p *Project) error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	cfg := p.Config.Reference
	gen := refgen.New(p.Root, cfg)

	broken, err := refgen.Check(gen.OutputDir(), cfg.Summary)
	if err != nil {
		return err
	}
	for _, b := range broken {
		_, _ = fmt.Fprintf(out, "missing page: %s (%s)\n", b.Filename, b.Title)
	}
	if len(broken) > 0 {
		return ferrors.ValidationError(fmt.Sprintf("%d navigation links point to missing pages", len(broken))).
			WithContext("summary", cfg.Summary).
			Build()
	}
	_, _ = fmt.Fprintln(out, "navigation summary is consistent")
	return nil
}
