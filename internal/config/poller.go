package config

import (
	"errors"
	"time"
)

type PollerConfig struct {
	SnapshotPollingInterval time.Duration `mapstructure:"snapshot-polling-interval"`
	StatsPollingInterval    time.Duration `mapstructure:"stats-polling-interval"`
	PersistInterval         time.Duration `mapstructure:"persist-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.SnapshotPollingInterval <= 0 {
		return errors.New("snapshot-polling-interval must be positive")
	}
	if cfg.StatsPollingInterval <= 0 {
		return errors.New("stats-polling-interval must be positive")
	}
	if cfg.PersistInterval <= 0 {
		return errors.New("persist-interval must be positive")
	}
	return nil
}
