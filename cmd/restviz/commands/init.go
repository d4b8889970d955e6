package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/restviz/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing project file"`
	Output string `name:"output" help:"Directory to write restviz.yaml into (default: the --config path)"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	cfgPath, _ := root.ConfigPath()
	if i.Output != "" {
		cfgPath = filepath.Join(i.Output, config.DefaultConfigFile)
	}

	out := g.stdout()
	fmt.Fprintf(out, "Writing project file to %s\n", cfgPath)
	if err := config.Init(cfgPath, i.Force); err != nil {
		fmt.Fprintln(out, "Initialization failed")
		return err
	}
	fmt.Fprintln(out, "initialized successfully")
	return nil
}
