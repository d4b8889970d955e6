package commands

import (
	"context"

	"git.home.luguber.info/inful/restviz/internal/extract"
)

// ExtractCmd implements the 'extract' command.
type ExtractCmd struct {
	ExtractFlags `embed:""`
}

func (e *ExtractCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	p, err := OpenProject(g, root, e.ExtractFlags)
	if err != nil {
		return err
	}
	defer p.Flush()
	return p.Lifecycle.RunGoal(ctx, extract.GoalName, p.GoalContext())
}
