// Package watch re-runs a goal when project sources change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/restviz/internal/logfields"
	"git.home.luguber.info/inful/restviz/internal/metrics"
)

// RunFunc performs one goal run.
type RunFunc func(ctx context.Context) error

// Config configures a Watcher.
type Config struct {
	// Paths are watched recursively. Missing paths are skipped.
	Paths []string
	// Ignore lists directories whose events never trigger a run, typically
	// the build directory the goal writes into.
	Ignore []string
	// Debounce is the quiet window after the last event before a run starts.
	Debounce time.Duration
	// RunOnStart triggers a run as soon as the watcher is ready.
	RunOnStart bool
	Recorder   metrics.Recorder
	Logger     *slog.Logger
}

// Watcher coalesces bursts of filesystem events into single runs. Runs
// happen on the event loop goroutine, so two runs never overlap; events that
// arrive during a run schedule exactly one follow-up run.
type Watcher struct {
	cfg     Config
	run     RunFunc
	watcher *fsnotify.Watcher
	ignore  []string

	readyOnce sync.Once
	ready     chan struct{}
}

// New creates a watcher. Call Run to start it.
func New(cfg Config, run RunFunc) (*Watcher, error) {
	if run == nil {
		return nil, errors.New("run function is required")
	}
	if cfg.Debounce <= 0 {
		return nil, errors.New("debounce must be > 0")
	}
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.NoopRecorder{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ignore := make([]string, 0, len(cfg.Ignore))
	for _, dir := range cfg.Ignore {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve ignored directory %s: %w", dir, err)
		}
		ignore = append(ignore, abs)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		cfg:     cfg,
		run:     run,
		watcher: fw,
		ignore:  ignore,
		ready:   make(chan struct{}),
	}, nil
}

// Ready is closed once Run has registered all watches.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is done. Run errors are logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.cfg.Logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	watched := 0
	for _, root := range w.cfg.Paths {
		n, err := w.addTree(root)
		if err != nil {
			return err
		}
		watched += n
	}
	if watched == 0 {
		return fmt.Errorf("no existing directories to watch in %s", strings.Join(w.cfg.Paths, ", "))
	}
	w.cfg.Logger.Info("Watching sources", slog.Int("directories", watched), slog.Duration("debounce", w.cfg.Debounce))
	w.readyOnce.Do(func() { close(w.ready) })

	quiet := time.NewTimer(w.cfg.Debounce)
	if !w.cfg.RunOnStart {
		quiet.Stop()
	}
	defer quiet.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.cfg.Logger.Debug("Source change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if _, err := w.addTree(event.Name); err != nil {
						w.cfg.Logger.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			quiet.Reset(w.cfg.Debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.cfg.Logger.Error("Watcher error", logfields.Error(err))

		case <-quiet.C:
			w.cfg.Recorder.IncWatchTrigger()
			if err := w.run(ctx); err != nil {
				w.cfg.Logger.Error("Run failed", logfields.Error(err))
			}
		}
	}
}

// addTree watches root and every directory below it.
func (w *Watcher) addTree(root string) (int, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return 0, fmt.Errorf("resolve watch path %s: %w", root, err)
	}
	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		w.cfg.Logger.Warn("Skipping missing watch path", logfields.Path(abs))
		return 0, nil
	}

	count := 0
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		count++
		return nil
	})
	return count, err
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod || w.ignored(event.Name) {
		return false
	}
	base := filepath.Base(event.Name)
	// Editor swap and backup files.
	return !strings.HasPrefix(base, ".#") && !strings.HasSuffix(base, "~") && !strings.HasSuffix(base, ".swp")
}

func (w *Watcher) ignored(path string) bool {
	for _, dir := range w.ignore {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
