package extractor

import (
	"context"
	"fmt"
	"os/exec"

	"git.home.luguber.info/inful/restviz/internal/config"
)

// Names of the built-in REST resource extractor.
const (
	DefaultNamespace  = "rest-resources-viz.extract"
	DefaultEntryPoint = "run-extractor"
)

// NewDefaultRuntime returns a runtime with the built-in namespace defined.
// Loading the namespace locates the configured extractor executable.
func NewDefaultRuntime(cfg config.ExtractorConfig) *Runtime {
	rt := NewRuntime()
	rt.Define(DefaultNamespace, ProcessLoader(DefaultNamespace, DefaultEntryPoint, cfg))
	return rt
}

// ProcessLoader returns a loader binding entryPoint to the extractor process
// described by cfg. The loader fails when the command cannot be found.
func ProcessLoader(ns, entryPoint string, cfg config.ExtractorConfig) Loader {
	return func(context.Context) (*Namespace, error) {
		path, err := exec.LookPath(cfg.Command)
		if err != nil {
			return nil, fmt.Errorf("extractor executable %q: %w", cfg.Command, err)
		}
		return NewNamespace(ns).Define(entryPoint, &ProcessEntryPoint{
			Name:    entryPoint,
			Command: path,
			Args:    append([]string(nil), cfg.Args...),
			Env:     cfg.Env,
			Timeout: cfg.Timeout,
		}), nil
	}
}
