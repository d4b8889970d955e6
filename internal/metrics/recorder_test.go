package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want OutcomeLabel
	}{
		{"nil", nil, OutcomeSuccess},
		{"plain error", errors.New("boom"), OutcomeFailed},
		{"canceled", context.Canceled, OutcomeCanceled},
		{"wrapped deadline", fmt.Errorf("extractor: %w", context.DeadlineExceeded), OutcomeCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveGoal("extract", "generate-resources", time.Second, errors.New("boom"))
		r.IncWatchTrigger()
	})
}
