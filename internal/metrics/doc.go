// Package metrics records goal execution metrics.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing, so callers never need nil checks:
//
//	lifecycle := goal.NewLifecycle(registry).WithObserver(metrics.NoopRecorder{})
//
// When a textfile path is configured the CLI swaps in a PrometheusRecorder
// and writes its registry with WriteTextfile once the run finishes, for
// pickup by the node_exporter textfile collector.
package metrics
