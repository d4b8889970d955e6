package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/restviz/internal/logfields"
	"git.home.luguber.info/inful/restviz/internal/session"
)

// ProcessEntryPoint runs an external extractor process per invocation.
type ProcessEntryPoint struct {
	Name    string
	Command string
	Args    []string
	Env     map[string]string
	Timeout time.Duration // 0 means no timeout
}

// Invoke starts the process, sends the request and waits for the response.
func (p *ProcessEntryPoint) Invoke(ctx context.Context, sess *session.Session, logger *slog.Logger, cfg Config) error {
	if sess == nil {
		return fmt.Errorf("no build session")
	}
	if logger == nil {
		logger = slog.Default()
	}

	payload, err := json.Marshal(Request{
		ProtocolVersion: ProtocolVersion,
		EntryPoint:      p.Name,
		Session:         sess.Snapshot(),
		Config:          cfg,
	})
	if err != nil {
		return fmt.Errorf("encode extractor request: %w", err)
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	cmd.Dir = sess.Project.BaseDir
	cmd.Env = p.environ()
	cmd.Stdin = bytes.NewReader(payload)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	procLogger := logger.With(slog.String("source", "extractor"))
	stderr := newLogWriter(ctx, procLogger)
	cmd.Stderr = stderr
	cmd.WaitDelay = 2 * time.Second

	procLogger.Debug("Starting extractor", slog.String("command", p.Command), slog.Any("args", p.Args))
	waitErr := cmd.Run()
	stderr.Flush()

	var execErr *exec.Error
	if errors.As(waitErr, &execErr) {
		return fmt.Errorf("start extractor %s: %w", p.Command, waitErr)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && p.Timeout > 0 {
			return fmt.Errorf("extractor timed out after %s", p.Timeout)
		}
		return fmt.Errorf("extractor interrupted: %w", ctxErr)
	}

	resp, decodeErr := decodeResponse(stdout.Bytes())
	if waitErr != nil {
		if decodeErr == nil && resp.Error != "" {
			return errors.New(resp.Error)
		}
		if msg := stderr.Tail(); msg != "" {
			return fmt.Errorf("extractor failed: %w: %s", waitErr, msg)
		}
		return fmt.Errorf("extractor failed: %w", waitErr)
	}
	if decodeErr != nil {
		return decodeErr
	}
	if resp.Status != StatusOK {
		if resp.Error != "" {
			return errors.New(resp.Error)
		}
		return fmt.Errorf("extractor reported status %q", resp.Status)
	}

	for _, f := range resp.Files {
		procLogger.Info("Extractor wrote file", logfields.File(f))
	}
	return nil
}

func (p *ProcessEntryPoint) environ() []string {
	env := os.Environ()
	keys := make([]string, 0, len(p.Env))
	for k := range p.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+p.Env[k])
	}
	return env
}

func decodeResponse(data []byte) (Response, error) {
	var resp Response
	if len(bytes.TrimSpace(data)) == 0 {
		return resp, fmt.Errorf("extractor produced no response")
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return resp, fmt.Errorf("decode extractor response: %w", err)
	}
	return resp, nil
}

// logWriter turns the extractor's stderr stream into log records, one per line.
type logWriter struct {
	ctx    context.Context
	logger *slog.Logger
	mu     sync.Mutex
	buf    []byte
	tail   []string
}

const tailSize = 5

func newLogWriter(ctx context.Context, logger *slog.Logger) *logWriter {
	return &logWriter{ctx: ctx, logger: logger}
}

// Write implements io.Writer.
func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush logs a trailing line that was not newline terminated.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

// Tail returns the last few lines joined for inclusion in error messages.
func (w *logWriter) Tail() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.Join(w.tail, "; ")
}

func (w *logWriter) emit(line string) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return
	}
	var ll LogLine
	if strings.HasPrefix(line, "{") && json.Unmarshal([]byte(line), &ll) == nil && ll.Message != "" {
		w.logger.Log(w.ctx, ll.SlogLevel(), ll.Message)
		line = ll.Message
	} else {
		w.logger.Info(line)
	}
	w.tail = append(w.tail, line)
	if len(w.tail) > tailSize {
		w.tail = w.tail[len(w.tail)-tailSize:]
	}
}
