package config

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables overriding the project file.
const (
	EnvTargetDirectory = "RESTVIZ_TARGET_DIRECTORY"
	EnvDataTargetName  = "RESTVIZ_DATA_TARGET_NAME"
	EnvPrettyPrint     = "RESTVIZ_PRETTY_PRINT"
	EnvExtractor       = "RESTVIZ_EXTRACTOR"
	EnvLogLevel        = "RESTVIZ_LOG_LEVEL"
	EnvOffline         = "RESTVIZ_OFFLINE"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env and .env.local when present. Existing process
// environment variables are not overwritten.
func loadEnvFiles() {
	for _, envPath := range envFiles {
		if err := godotenv.Load(envPath); err == nil {
			slog.Debug("Loaded environment variables", "file", envPath)
		}
	}
}

// ApplyEnv overrides project file values with RESTVIZ_* environment variables.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvTargetDirectory); v != "" {
		cfg.Extract.TargetDirectory = v
	}
	if v := getenv(EnvDataTargetName); v != "" {
		cfg.Extract.DataTargetName = v
	}
	if v := getenv(EnvPrettyPrint); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvPrettyPrint, v, err)
		}
		cfg.Extract.PrettyPrint = b
	}
	if v := getenv(EnvExtractor); v != "" {
		cfg.Extractor.Command = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = LogLevel(v)
	}
	if v := getenv(EnvOffline); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvOffline, v, err)
		}
		cfg.Project.Offline = b
	}
	return nil
}
