package extractor

import (
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/restviz/internal/session"
)

// ProtocolVersion is sent with every request so extractors can reject
// requests they do not understand.
const ProtocolVersion = 1

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Request is written as a single JSON document to the extractor's stdin.
type Request struct {
	ProtocolVersion int             `json:"protocol_version"`
	EntryPoint      string          `json:"entry_point"`
	Session         session.Session `json:"session"`
	Config          Config          `json:"config"`
}

// Response is read as a single JSON document from the extractor's stdout.
type Response struct {
	Status string   `json:"status"`
	Files  []string `json:"files,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// LogLine is the structured form of a stderr line. Lines that are not JSON
// objects are logged verbatim at info level.
type LogLine struct {
	Level   string `json:"level"`
	Message string `json:"msg"`
}

// SlogLevel maps the extractor's level name to slog.
func (l LogLine) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
