package commands

import (
	"fmt"
	"text/tabwriter"
)

// GoalsCmd implements the 'goals' command.
type GoalsCmd struct{}

func (c *GoalsCmd) Run(g *Global, root *CLI) error {
	p, err := OpenProject(g, root, ExtractFlags{})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(g.stdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GOAL\tPHASE\tTHREAD-SAFE\tRESOLUTION\tDESCRIPTION")
	for _, gl := range p.Registry.List() {
		md := gl.Metadata()
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n", md.Name, md.Phase, md.ThreadSafe, md.Resolution, md.Description)
	}
	return w.Flush()
}
