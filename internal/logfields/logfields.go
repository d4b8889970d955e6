package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyGoal        = "goal"
	KeyPhase       = "phase"
	KeyExecutionID = "execution_id"
	KeyNamespace   = "namespace"
	KeyEntryPoint  = "entry_point"
	KeyPath        = "path"
	KeyFile        = "file"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Goal(name string) slog.Attr        { return slog.String(KeyGoal, name) }
func Phase(name string) slog.Attr       { return slog.String(KeyPhase, name) }
func ExecutionID(id string) slog.Attr   { return slog.String(KeyExecutionID, id) }
func Namespace(ns string) slog.Attr     { return slog.String(KeyNamespace, ns) }
func EntryPoint(name string) slog.Attr  { return slog.String(KeyEntryPoint, name) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func File(f string) slog.Attr           { return slog.String(KeyFile, f) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Duration(d time.Duration) slog.Attr { return DurationMS(float64(d.Microseconds()) / 1000) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
