package config

import (
	rverrors "git.home.luguber.info/inful/restviz/internal/errors"
)

// ValidateConfig validates a configuration after defaults have been applied.
func ValidateConfig(cfg *Config) error {
	if cfg.Extract.DataTargetName == "" {
		return rverrors.ValidationFailed("extract.data_target_name", "must not be empty")
	}
	if cfg.Extractor.Command == "" {
		return rverrors.ValidationFailed("extractor.command", "must not be empty")
	}
	if cfg.Extractor.Timeout < 0 {
		return rverrors.ValidationFailed("extractor.timeout", "must not be negative")
	}
	return nil
}
