package goal

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/restviz/internal/logfields"
)

// Observer is notified after each goal execution. metrics.Recorder satisfies it.
type Observer interface {
	ObserveGoal(goal string, phase string, d time.Duration, err error)
}

// Lifecycle runs registered goals phase by phase.
type Lifecycle struct {
	registry *Registry
	observer Observer
}

// NewLifecycle creates a lifecycle over the given registry.
func NewLifecycle(registry *Registry) *Lifecycle {
	return &Lifecycle{registry: registry}
}

// WithObserver attaches an execution observer.
func (l *Lifecycle) WithObserver(o Observer) *Lifecycle {
	l.observer = o
	return l
}

// Run executes every goal bound to phases up to and including target, in
// lifecycle order. The first failing goal stops the run; its error is
// returned unchanged.
func (l *Lifecycle) Run(ctx context.Context, target Phase, goalCtx *Context) error {
	if !target.IsValid() {
		return fmt.Errorf("unknown lifecycle phase %q", target)
	}

	for _, phase := range phaseOrder[:target.Index()+1] {
		for _, g := range l.registry.ListByPhase(phase) {
			if err := l.Execute(ctx, g, goalCtx); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunGoal executes a single goal by name.
func (l *Lifecycle) RunGoal(ctx context.Context, name string, goalCtx *Context) error {
	g, err := l.registry.Get(name)
	if err != nil {
		return err
	}
	return l.Execute(ctx, g, goalCtx)
}

// Execute runs one goal, logging and observing its outcome. A nil goalCtx,
// or one without a logger, gets the default logger and no session.
func (l *Lifecycle) Execute(ctx context.Context, g Goal, goalCtx *Context) error {
	if goalCtx == nil {
		goalCtx = NewContext(nil, nil)
	} else if goalCtx.Logger == nil {
		goalCtx = NewContext(goalCtx.Session, nil)
	}

	md := g.Metadata()
	logger := goalCtx.Logger.With(logfields.Goal(md.Name), logfields.Phase(md.Phase.String()))
	if goalCtx.Session != nil {
		logger = logger.With(logfields.ExecutionID(goalCtx.Session.ID))
	}

	logger.Info("Executing goal")
	started := time.Now()
	err := g.Execute(ctx, &Context{Session: goalCtx.Session, Logger: logger})
	elapsed := time.Since(started)

	if l.observer != nil {
		l.observer.ObserveGoal(md.Name, md.Phase.String(), elapsed, err)
	}
	if err != nil {
		logger.Error("Goal failed", logfields.Duration(elapsed), logfields.Error(err))
		return err
	}
	logger.Info("Goal completed", logfields.Duration(elapsed))
	return nil
}
