package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Defaults for the extract goal and the project layout.
const (
	DefaultDataTargetName   = "graph-data.edn"
	DefaultAssetsDirName    = "rest-viz-assets"
	DefaultBuildDir         = "target"
	DefaultExtractorCommand = "restviz-extractor"
	DefaultWatchDebounce    = 500 * time.Millisecond
)

// DefaultSourceDirs returns the source directories used when none are configured.
func DefaultSourceDirs() []string {
	return []string{"src/main/java", "src/main/resources"}
}

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// ProjectDefaultApplier resolves the project layout.
type ProjectDefaultApplier struct{}

func (ProjectDefaultApplier) Domain() string { return "project" }

func (ProjectDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Project.BaseDir == "" {
		cfg.Project.BaseDir = "."
	}
	base, err := filepath.Abs(cfg.Project.BaseDir)
	if err != nil {
		return fmt.Errorf("resolve base directory: %w", err)
	}
	cfg.Project.BaseDir = base

	if cfg.Project.Name == "" {
		cfg.Project.Name = filepath.Base(base)
	}
	if cfg.Project.BuildDir == "" {
		cfg.Project.BuildDir = DefaultBuildDir
	}
	if !filepath.IsAbs(cfg.Project.BuildDir) {
		cfg.Project.BuildDir = filepath.Join(base, cfg.Project.BuildDir)
	}
	if len(cfg.Project.SourceDirs) == 0 {
		cfg.Project.SourceDirs = DefaultSourceDirs()
	}
	return nil
}

// ExtractDefaultApplier fills the extract goal parameters. The target
// directory defaults to <build directory>/rest-viz-assets; relative paths
// resolve against the project base directory.
type ExtractDefaultApplier struct{}

func (ExtractDefaultApplier) Domain() string { return "extract" }

func (ExtractDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Extract.TargetDirectory == "" {
		cfg.Extract.TargetDirectory = filepath.Join(cfg.Project.BuildDir, DefaultAssetsDirName)
	} else if !filepath.IsAbs(cfg.Extract.TargetDirectory) {
		cfg.Extract.TargetDirectory = filepath.Join(cfg.Project.BaseDir, cfg.Extract.TargetDirectory)
	}
	if cfg.Extract.DataTargetName == "" {
		cfg.Extract.DataTargetName = DefaultDataTargetName
	}
	return nil
}

// RuntimeDefaultApplier covers extractor, logging and watch settings.
type RuntimeDefaultApplier struct{}

func (RuntimeDefaultApplier) Domain() string { return "runtime" }

func (RuntimeDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Extractor.Command == "" {
		cfg.Extractor.Command = DefaultExtractorCommand
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	return nil
}

// defaultAppliers run in order; extract defaults depend on the project layout.
var defaultAppliers = []DefaultApplier{
	ProjectDefaultApplier{},
	ExtractDefaultApplier{},
	RuntimeDefaultApplier{},
}

// ApplyDefaults applies all domain defaults to cfg.
func ApplyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("apply %s defaults: %w", applier.Domain(), err)
		}
	}
	return nil
}
