package config

import (
	"fmt"
	"time"
)

type SnapshotConfig struct {
	// URL is the direct location of the canonical daily-snapshot document.
	URL string `mapstructure:"url"`
	// ProxyURL is tried when the direct fetch fails. Optional.
	ProxyURL      string        `mapstructure:"proxy-url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *SnapshotConfig) Validate() error {
	if cfg.URL == "" {
		return fmt.Errorf("snapshot url is required")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("snapshot timeout must be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return fmt.Errorf("snapshot max-retry-times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("snapshot retry-interval must be positive")
	}
	return nil
}
