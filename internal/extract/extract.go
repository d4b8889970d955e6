// Package extract implements the extract goal: it hands the build session and
// the visualization output settings to the REST resource extractor.
package extract

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/restviz/internal/config"
	rverrors "git.home.luguber.info/inful/restviz/internal/errors"
	"git.home.luguber.info/inful/restviz/internal/extractor"
	"git.home.luguber.info/inful/restviz/internal/goal"
	"git.home.luguber.info/inful/restviz/internal/logfields"
)

// GoalName is the name the goal is registered under.
const GoalName = "extract"

// DefaultDataTargetName is used when Options.DataTargetName is empty.
const DefaultDataTargetName = config.DefaultDataTargetName

// Options are the goal parameters.
type Options struct {
	// TargetDirectory is the output directory. Required.
	TargetDirectory string
	// DataTargetName is the data file name inside TargetDirectory.
	DataTargetName string
	// PrettyPrint asks the extractor for human-readable output.
	PrettyPrint bool
}

// Config canonicalizes the options into the extractor configuration.
func (o Options) Config() (extractor.Config, error) {
	if o.TargetDirectory == "" {
		return extractor.Config{}, fmt.Errorf("target directory is required")
	}
	dir, err := Canonicalize(o.TargetDirectory)
	if err != nil {
		return extractor.Config{}, fmt.Errorf("resolve target directory %s: %w", o.TargetDirectory, err)
	}
	name := o.DataTargetName
	if name == "" {
		name = DefaultDataTargetName
	}
	return extractor.Config{
		TargetDirectory: dir,
		DataTargetName:  name,
		PrettyPrint:     o.PrettyPrint,
	}, nil
}

// Resolver loads extractor namespaces and resolves entry points.
// *extractor.Runtime implements it.
type Resolver interface {
	Require(ctx context.Context, ns string) error
	Resolve(ns, name string) (extractor.EntryPoint, error)
}

// Goal is the extract goal. It holds no mutable state and is safe to execute
// concurrently for independent sessions.
type Goal struct {
	opts       Options
	resolver   Resolver
	namespace  string
	entryPoint string
}

// New creates the extract goal bound to the built-in extractor entry point.
func New(opts Options, resolver Resolver) *Goal {
	return &Goal{
		opts:       opts,
		resolver:   resolver,
		namespace:  extractor.DefaultNamespace,
		entryPoint: extractor.DefaultEntryPoint,
	}
}

// Metadata implements goal.Goal.
func (g *Goal) Metadata() goal.Metadata {
	return goal.Metadata{
		Name:        GoalName,
		Phase:       goal.PhaseGenerateResources,
		Description: "Generate the REST resource visualization data files",
		ThreadSafe:  true,
		Resolution:  goal.ResolutionCompilePlusRuntime,
	}
}

// Options returns the goal parameters.
func (g *Goal) Options() Options {
	return g.opts
}

// Execute implements goal.Goal. Every failure is reported as a single goal
// execution error carrying the underlying message and cause.
func (g *Goal) Execute(ctx context.Context, goalCtx *goal.Context) error {
	if err := g.execute(ctx, goalCtx); err != nil {
		return rverrors.GoalExecutionFailed(GoalName, err)
	}
	return nil
}

func (g *Goal) execute(ctx context.Context, goalCtx *goal.Context) error {
	if goalCtx == nil || goalCtx.Session == nil {
		return fmt.Errorf("build session is required")
	}

	cfg, err := g.opts.Config()
	if err != nil {
		return err
	}

	if err := g.resolver.Require(ctx, g.namespace); err != nil {
		return err
	}
	ep, err := g.resolver.Resolve(g.namespace, g.entryPoint)
	if err != nil {
		return err
	}

	logger := goalCtx.Logger
	logger.Debug("Invoking extractor",
		logfields.Namespace(g.namespace),
		logfields.EntryPoint(g.entryPoint),
		logfields.Path(cfg.TargetDirectory),
		logfields.File(cfg.DataTargetName))

	return ep.Invoke(ctx, goalCtx.Session, logger, cfg)
}
