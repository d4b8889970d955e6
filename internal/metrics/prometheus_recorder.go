package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "restviz"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	goalDuration  *prom.HistogramVec
	goalOutcomes  *prom.CounterVec
	lastSuccess   *prom.GaugeVec
	watchTriggers prom.Counter
}

// NewPrometheusRecorder constructs and registers the goal metrics on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		goalDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "goal_duration_seconds",
			Help:      "Duration of goal executions",
			Buckets:   prom.DefBuckets,
		}, []string{"goal", "phase"}),
		goalOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "goal_outcomes_total",
			Help:      "Goal executions by outcome",
		}, []string{"goal", "outcome"}),
		lastSuccess: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "goal_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful goal execution",
		}, []string{"goal"}),
		watchTriggers: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_triggers_total",
			Help:      "Goal runs triggered by source changes",
		}),
	}
	reg.MustRegister(pr.goalDuration, pr.goalOutcomes, pr.lastSuccess, pr.watchTriggers)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveGoal(goal, phase string, d time.Duration, err error) {
	if p == nil {
		return
	}
	p.goalDuration.WithLabelValues(goal, phase).Observe(d.Seconds())
	outcome := Outcome(err)
	p.goalOutcomes.WithLabelValues(goal, string(outcome)).Inc()
	if outcome == OutcomeSuccess {
		p.lastSuccess.WithLabelValues(goal).SetToCurrentTime()
	}
}

func (p *PrometheusRecorder) IncWatchTrigger() {
	if p == nil {
		return
	}
	p.watchTriggers.Inc()
}

// WriteTextfile writes the recorder's registry in the Prometheus text format.
// The parent directory is created when missing.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
