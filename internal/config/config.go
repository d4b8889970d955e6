// Package config loads the restviz project file (restviz.yaml), environment
// overrides and defaults into a single typed Config.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	rverrors "git.home.luguber.info/inful/restviz/internal/errors"
)

// DefaultConfigFile is the project file looked up when --config is not given.
const DefaultConfigFile = "restviz.yaml"

// Config represents the project configuration
type Config struct {
	Project   ProjectConfig   `yaml:"project"`
	Extract   ExtractConfig   `yaml:"extract"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
	Watch     WatchConfig     `yaml:"watch,omitempty"`
}

// ProjectConfig describes the project a build session is opened for.
type ProjectConfig struct {
	Name       string            `yaml:"name,omitempty"`
	BaseDir    string            `yaml:"base_directory,omitempty"`
	BuildDir   string            `yaml:"build_directory,omitempty"` // relative to BaseDir unless absolute
	SourceDirs []string          `yaml:"source_directories,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`
	Offline    bool              `yaml:"offline,omitempty"`
}

// ExtractConfig holds the parameters of the extract goal.
type ExtractConfig struct {
	TargetDirectory string `yaml:"target_directory,omitempty"`
	DataTargetName  string `yaml:"data_target_name,omitempty"`
	PrettyPrint     bool   `yaml:"pretty_print,omitempty"`
}

// ExtractorConfig describes the external extractor process.
type ExtractorConfig struct {
	Command string            `yaml:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	Timeout time.Duration     `yaml:"timeout,omitempty"` // 0 disables the timeout
}

// LoggingConfig selects log level and handler format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// MetricsConfig controls the Prometheus textfile written after each run.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile,omitempty"`
}

// WatchConfig tunes the source watcher.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty"`
}

// Load loads configuration from the specified file, then applies environment
// overrides and defaults.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, rverrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, rverrors.ConfigInvalid(configPath, fmt.Errorf("failed to read config file: %w", err))
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, rverrors.ConfigInvalid(configPath, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to a default configuration
// when the file does not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		loadEnvFiles()
		cfg := &Config{}
		if err := finish(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(configPath)
}

// Parse decodes YAML content (after environment variable expansion) into a
// Config with environment overrides and defaults applied.
func Parse(data []byte) (*Config, error) {
	expandedData := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := finish(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func finish(cfg *Config) error {
	if err := ApplyEnv(cfg, os.Getenv); err != nil {
		return err
	}
	if err := ApplyDefaults(cfg); err != nil {
		return err
	}
	return ValidateConfig(cfg)
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Project: ProjectConfig{
			Name:       "my-service",
			BuildDir:   DefaultBuildDir,
			SourceDirs: DefaultSourceDirs(),
		},
		Extract: ExtractConfig{
			DataTargetName: DefaultDataTargetName,
		},
		Extractor: ExtractorConfig{
			Command: DefaultExtractorCommand,
			Timeout: 5 * time.Minute,
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return rverrors.WorkspaceError("write config", err).WithContext("path", configPath)
	}

	return nil
}
