package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"git.home.luguber.info/inful/restviz/internal/session"
)

// EntryPoint is a callable extraction routine.
type EntryPoint interface {
	Invoke(ctx context.Context, sess *session.Session, logger *slog.Logger, cfg Config) error
}

// EntryPointFunc adapts a function to EntryPoint.
type EntryPointFunc func(ctx context.Context, sess *session.Session, logger *slog.Logger, cfg Config) error

// Invoke calls f.
func (f EntryPointFunc) Invoke(ctx context.Context, sess *session.Session, logger *slog.Logger, cfg Config) error {
	return f(ctx, sess, logger, cfg)
}

// Namespace is a loaded set of named entry points.
type Namespace struct {
	name    string
	entries map[string]EntryPoint
}

// NewNamespace creates an empty namespace.
func NewNamespace(name string) *Namespace {
	return &Namespace{name: name, entries: make(map[string]EntryPoint)}
}

// Name returns the namespace name.
func (n *Namespace) Name() string { return n.name }

// Define binds an entry point under name, replacing any previous binding.
func (n *Namespace) Define(name string, ep EntryPoint) *Namespace {
	n.entries[name] = ep
	return n
}

// Loader produces a namespace. After a successful load it is not run again;
// a failed load is retried by the next Require.
type Loader func(ctx context.Context) (*Namespace, error)

var (
	ErrUnknownNamespace   = errors.New("unknown namespace")
	ErrNamespaceNotLoaded = errors.New("namespace not loaded")
	ErrEntryPointNotFound = errors.New("entry point not found")
)

type namespaceSlot struct {
	loader Loader
	load   sync.Mutex // serializes loader runs
	ns     *Namespace
	done   bool
}

// Runtime holds namespace loaders and their loaded results. It is safe for
// concurrent use.
type Runtime struct {
	mu    sync.RWMutex
	slots map[string]*namespaceSlot
}

// NewRuntime creates a runtime with no namespaces defined.
func NewRuntime() *Runtime {
	return &Runtime{slots: make(map[string]*namespaceSlot)}
}

// Define registers the loader for a namespace. Defining a namespace again
// discards any previously loaded state.
func (r *Runtime) Define(ns string, loader Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[ns] = &namespaceSlot{loader: loader}
}

// Require ensures the namespace is loaded. The loader runs until it succeeds
// once; later calls return immediately, so Require is safe to call on every
// invocation. Concurrent callers wait for a load in progress.
func (r *Runtime) Require(ctx context.Context, ns string) error {
	r.mu.RLock()
	slot, ok := r.slots[ns]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("require %s: %w", ns, ErrUnknownNamespace)
	}

	slot.load.Lock()
	defer slot.load.Unlock()

	r.mu.RLock()
	done := slot.done
	r.mu.RUnlock()
	if done {
		return nil
	}

	loaded, err := slot.loader(ctx)
	if err == nil && loaded == nil {
		err = fmt.Errorf("loader returned no namespace")
	}
	if err != nil {
		return fmt.Errorf("require %s: %w", ns, err)
	}

	r.mu.Lock()
	slot.ns, slot.done = loaded, true
	r.mu.Unlock()
	return nil
}

// Resolve looks up an entry point in a loaded namespace.
func (r *Runtime) Resolve(ns, name string) (EntryPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.slots[ns]
	if !ok {
		return nil, fmt.Errorf("resolve %s/%s: %w", ns, name, ErrUnknownNamespace)
	}
	if !slot.done {
		return nil, fmt.Errorf("resolve %s/%s: %w", ns, name, ErrNamespaceNotLoaded)
	}
	ep, ok := slot.ns.entries[name]
	if !ok {
		return nil, fmt.Errorf("resolve %s/%s: %w", ns, name, ErrEntryPointNotFound)
	}
	return ep, nil
}
