package metrics

import (
	"context"
	"errors"
	"time"
)

// OutcomeLabel enumerates goal outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Outcome classifies a goal execution error.
func Outcome(err error) OutcomeLabel {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeFailed
	}
}

// Recorder defines observability hooks for goal executions. It satisfies
// goal.Observer.
type Recorder interface {
	ObserveGoal(goal, phase string, d time.Duration, err error)
	IncWatchTrigger()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveGoal(string, string, time.Duration, error) {}
func (NoopRecorder) IncWatchTrigger()                                {}
