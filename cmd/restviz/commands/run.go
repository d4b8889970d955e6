package commands

import (
	"context"
	"fmt"
	"strings"

	rverrors "git.home.luguber.info/inful/restviz/internal/errors"
	"git.home.luguber.info/inful/restviz/internal/goal"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	Phase string `arg:"" help:"Lifecycle phase to run up to (e.g. generate-resources)"`

	ExtractFlags `embed:""`
}

func (r *RunCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	phase := goal.Phase(r.Phase)
	if !phase.IsValid() {
		names := make([]string, 0, len(goal.Phases()))
		for _, p := range goal.Phases() {
			names = append(names, p.String())
		}
		return rverrors.ValidationFailed("phase", fmt.Sprintf("unknown phase %q, expected one of %s", r.Phase, strings.Join(names, ", ")))
	}

	p, err := OpenProject(g, root, r.ExtractFlags)
	if err != nil {
		return err
	}
	defer p.Flush()
	return p.Lifecycle.Run(ctx, phase, p.GoalContext())
}
