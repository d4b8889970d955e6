package commands

import (
	"context"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/restviz/internal/extract"
	"git.home.luguber.info/inful/restviz/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period after the last change before re-running (default from project file, 500ms)"`
	Initial  bool          `help:"Run once before waiting for changes" default:"true" negatable:""`

	ExtractFlags `embed:""`
}

func (c *WatchCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	p, err := OpenProject(g, root, c.ExtractFlags)
	if err != nil {
		return err
	}

	debounce := p.Config.Watch.Debounce
	if c.Debounce > 0 {
		debounce = c.Debounce
	}

	paths, ignore := watchPaths(p)
	w, err := watch.New(watch.Config{
		Paths:      paths,
		Ignore:     ignore,
		Debounce:   debounce,
		RunOnStart: c.Initial,
		Recorder:   p.Recorder(),
		Logger:     p.Logger,
	}, func(ctx context.Context) error {
		defer p.Flush()
		return p.Lifecycle.RunGoal(ctx, extract.GoalName, p.GoalContext())
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// watchPaths returns the source directories to watch and the output
// directories whose changes are ignored.
func watchPaths(p *Project) (paths, ignore []string) {
	base := p.Config.Project.BaseDir
	for _, dir := range p.Config.Project.SourceDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(base, dir)
		}
		paths = append(paths, dir)
	}
	ignore = []string{p.Config.Project.BuildDir}
	if target := p.Config.Extract.TargetDirectory; target != "" {
		if abs, err := filepath.Abs(target); err == nil {
			ignore = append(ignore, abs)
		}
	}
	return paths, ignore
}
