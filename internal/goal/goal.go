// Package goal provides the goal registration table and build lifecycle for
// restviz. A goal is a named unit of work bound to a lifecycle phase; the
// runner looks goals up by name or runs every goal bound up to a phase.
package goal

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/restviz/internal/session"
)

// Goal represents a unit of build work with metadata and an execution method.
type Goal interface {
	// Metadata returns the goal's registration metadata.
	Metadata() Metadata

	// Execute runs the goal synchronously. It returns nil on success and a
	// single error describing the failure otherwise.
	Execute(ctx context.Context, goalCtx *Context) error
}

// Metadata describes a goal's identity and how the runner should treat it.
type Metadata struct {
	// Name is the unique goal identifier (e.g., "extract").
	Name string

	// Phase is the lifecycle phase the goal is bound to by default.
	Phase Phase

	// Description provides a human-readable summary of the goal's purpose.
	Description string

	// ThreadSafe reports whether the goal may run concurrently with other
	// goals of independent sessions.
	ThreadSafe bool

	// Resolution is the dependency scope the goal expects to be resolved.
	Resolution ResolutionScope
}

// String returns a human-readable representation of the goal metadata.
func (m Metadata) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Phase)
}

// Validate checks if the goal metadata is valid.
func (m Metadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("goal name is required")
	}
	if !m.Phase.IsValid() {
		return fmt.Errorf("invalid lifecycle phase: %q", m.Phase)
	}
	if m.Resolution != "" && !m.Resolution.IsValid() {
		return fmt.Errorf("invalid resolution scope: %q", m.Resolution)
	}
	return nil
}

// ResolutionScope names the dependency scope a goal requires.
type ResolutionScope string

const (
	ResolutionNone               ResolutionScope = "none"
	ResolutionCompile            ResolutionScope = "compile"
	ResolutionRuntime            ResolutionScope = "runtime"
	ResolutionCompilePlusRuntime ResolutionScope = "compile+runtime"
)

// IsValid returns true if the scope is recognized.
func (s ResolutionScope) IsValid() bool {
	switch s {
	case ResolutionNone, ResolutionCompile, ResolutionRuntime, ResolutionCompilePlusRuntime:
		return true
	default:
		return false
	}
}

// Context provides goals with the ambient build state.
type Context struct {
	// Session is the build session. Goals treat it as read-only.
	Session *session.Session

	// Logger provides structured logging for goal operations.
	Logger *slog.Logger
}

// NewContext creates a goal context. A nil logger falls back to slog.Default().
func NewContext(sess *session.Session, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{Session: sess, Logger: logger}
}
