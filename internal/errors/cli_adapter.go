package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
)

// Process exit codes by error category. Errors outside the taxonomy exit 1.
var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryConfig:     7,
	CategoryInternal:   10,
	CategoryFileSystem: 11,
	CategoryRuntime:    12,
	CategoryGoal:       13,
	CategoryExtractor:  13,
}

// CLIErrorAdapter turns an error returned by a command into a message on
// stderr and a process exit code.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates an adapter writing to stderr and exiting the process.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger, out: os.Stderr, exit: os.Exit}
}

// ExitCodeFor returns 0 for nil, the category's code for a RestVizError
// anywhere in the chain, and 1 otherwise.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	rve, ok := As(err)
	if !ok {
		return 1
	}
	if code, known := exitCodes[rve.Category]; known {
		return code
	}
	return 1
}

// FormatError renders err for the terminal. Goal failures read
// "goal: <message>"; config and validation errors print the bare message.
// Verbose mode prints the full chain.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	rve, ok := As(err)
	switch {
	case !ok:
		return fmt.Sprintf("Error: %v", err)
	case a.verbose:
		return rve.Error()
	case rve.Category == CategoryConfig, rve.Category == CategoryValidation:
		return rve.Message
	default:
		return string(rve.Category) + ": " + rve.Message
	}
}

// HandleError reports err and exits with its code. A nil error is a no-op.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	a.report(err)
	fmt.Fprintln(a.out, a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

// report logs err when the printed message alone would hide useful detail:
// always in verbose mode, for unclassified errors, and for internal and
// runtime failures.
func (a *CLIErrorAdapter) report(err error) {
	rve, ok := As(err)
	if !ok {
		a.logger.Error("Unclassified error", slog.Any("error", err))
		return
	}
	if !a.verbose && rve.Category != CategoryInternal && rve.Category != CategoryRuntime {
		return
	}

	attrs := []slog.Attr{slog.String("category", string(rve.Category))}
	keys := make([]string, 0, len(rve.Context))
	for k := range rve.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, rve.Context[k]))
	}
	a.logger.LogAttrs(context.Background(), rve.Severity.level(), rve.Message, attrs...)
}

func (s ErrorSeverity) level() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
