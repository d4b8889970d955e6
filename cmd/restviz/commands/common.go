// Package commands implements the restviz CLI commands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/restviz/internal/config"
	"git.home.luguber.info/inful/restviz/internal/extract"
)

// Global carries state shared by all commands.
type Global struct {
	// Logger overrides the logger built from the project file.
	Logger *slog.Logger
	// Stdout receives user-facing command output.
	Stdout io.Writer
	// Resolver overrides the extractor runtime built from the project file.
	Resolver extract.Resolver
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Project file path (default: restviz.yaml, optional)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Extract ExtractCmd `cmd:"" help:"Generate the REST resource graph data"`
	Run     RunCmd     `cmd:"" help:"Run every goal bound to the lifecycle up to a phase"`
	Goals   GoalsCmd   `cmd:"" help:"List registered goals"`
	Watch   WatchCmd   `cmd:"" help:"Re-run the extract goal when sources change"`
	Init    InitCmd    `cmd:"" help:"Initialize a new project file"`
}

// ConfigPath returns the project file to use and whether it was given
// explicitly. An explicit file must exist; the default one is optional.
func (c *CLI) ConfigPath() (string, bool) {
	if c.Config == "" {
		return config.DefaultConfigFile, false
	}
	return c.Config, true
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(os.Getenv(config.EnvLogLevel)).SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// ExtractFlags are the extract goal parameters accepted on the command line.
// They take precedence over the environment and the project file.
type ExtractFlags struct {
	TargetDirectory string `name:"target-directory" short:"o" help:"Output directory for the generated data (default: <build-dir>/rest-viz-assets)"`
	DataTargetName  string `name:"data-target-name" help:"Name of the generated data file (default: graph-data.edn)"`
	PrettyPrint     *bool  `name:"pretty-print" help:"Write human-readable data"`
}

// Apply overrides cfg with the flags that were given. A relative target
// directory resolves against the project base directory, like the same
// value from the environment or the project file.
func (f ExtractFlags) Apply(cfg *config.Config) {
	if dir := f.TargetDirectory; dir != "" {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cfg.Project.BaseDir, dir)
		}
		cfg.Extract.TargetDirectory = dir
	}
	if f.DataTargetName != "" {
		cfg.Extract.DataTargetName = f.DataTargetName
	}
	if f.PrettyPrint != nil {
		cfg.Extract.PrettyPrint = *f.PrettyPrint
	}
}
