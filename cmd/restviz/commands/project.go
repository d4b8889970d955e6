package commands

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/restviz/internal/config"
	"git.home.luguber.info/inful/restviz/internal/extract"
	"git.home.luguber.info/inful/restviz/internal/extractor"
	"git.home.luguber.info/inful/restviz/internal/goal"
	"git.home.luguber.info/inful/restviz/internal/logfields"
	"git.home.luguber.info/inful/restviz/internal/metrics"
	"git.home.luguber.info/inful/restviz/internal/session"
)

// Project bundles everything a command needs to run goals.
type Project struct {
	Config    *config.Config
	Registry  *goal.Registry
	Lifecycle *goal.Lifecycle
	Logger    *slog.Logger

	prom *metrics.PrometheusRecorder
}

// OpenProject loads the project file, applies flag overrides and wires the
// goal registry.
func OpenProject(g *Global, root *CLI, flags ExtractFlags) (*Project, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, err
	}
	flags.Apply(cfg)
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	logger := projectLogger(g, root, cfg)

	var resolver extract.Resolver
	if g != nil && g.Resolver != nil {
		resolver = g.Resolver
	} else {
		resolver = extractor.NewDefaultRuntime(cfg.Extractor)
	}

	p := &Project{
		Config:   cfg,
		Registry: NewRegistry(cfg, resolver),
		Logger:   logger,
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.TextfilePath != "" {
		p.prom = metrics.NewPrometheusRecorder(nil)
		recorder = p.prom
	}
	p.Lifecycle = goal.NewLifecycle(p.Registry).WithObserver(recorder)
	return p, nil
}

func loadConfig(root *CLI) (*config.Config, error) {
	path, explicit := root.ConfigPath()
	if explicit {
		return config.Load(path)
	}
	return config.LoadOrDefault(path)
}

// NewRegistry builds the registration table of every goal restviz provides.
func NewRegistry(cfg *config.Config, resolver extract.Resolver) *goal.Registry {
	return goal.NewRegistry().MustRegister(
		extract.New(extract.Options{
			TargetDirectory: cfg.Extract.TargetDirectory,
			DataTargetName:  cfg.Extract.DataTargetName,
			PrettyPrint:     cfg.Extract.PrettyPrint,
		}, resolver),
	)
}

func projectLogger(g *Global, root *CLI, cfg *config.Config) *slog.Logger {
	if g != nil && g.Logger != nil {
		return g.Logger
	}
	if root.Verbose {
		cfg.Logging.Level = config.LogLevelDebug
	}
	return cfg.Logging.NewLogger(os.Stderr)
}

// GoalContext opens a fresh build session for one run.
func (p *Project) GoalContext() *goal.Context {
	return goal.NewContext(session.New(p.Config), p.Logger)
}

// Recorder returns the metrics recorder observing goal runs.
func (p *Project) Recorder() metrics.Recorder {
	if p.prom == nil {
		return metrics.NoopRecorder{}
	}
	return p.prom
}

// Flush writes the metrics textfile when one is configured. Failures are
// logged; metrics never fail a build.
func (p *Project) Flush() {
	if p.prom == nil {
		return
	}
	if err := p.prom.WriteTextfile(p.Config.Metrics.TextfilePath); err != nil {
		p.Logger.Warn("Failed to write metrics", logfields.Path(p.Config.Metrics.TextfilePath), logfields.Error(err))
	}
}
