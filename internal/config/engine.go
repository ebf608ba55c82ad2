package config

import "fmt"

type EngineConfig struct {
	// MaxSessionLedgers bounds the in-memory session store; the oldest
	// sequences are evicted first.
	MaxSessionLedgers int `mapstructure:"max-session-ledgers"`
	// RollupRetentionDays caps the persisted per-day rollup table.
	RollupRetentionDays int `mapstructure:"rollup-retention-days"`
	// BootstrapLedgers is how many recent ledgers to backfill on startup.
	BootstrapLedgers int `mapstructure:"bootstrap-ledgers"`
	// PersistedLedgers bounds the recent-ledger blob written to storage.
	PersistedLedgers int `mapstructure:"persisted-ledgers"`
}

func (cfg *EngineConfig) Validate() error {
	if cfg.MaxSessionLedgers <= 0 {
		return fmt.Errorf("max-session-ledgers must be positive")
	}
	if cfg.RollupRetentionDays <= 0 {
		return fmt.Errorf("rollup-retention-days must be positive")
	}
	if cfg.BootstrapLedgers < 0 {
		return fmt.Errorf("bootstrap-ledgers must not be negative")
	}
	if cfg.PersistedLedgers <= 0 {
		return fmt.Errorf("persisted-ledgers must be positive")
	}
	if cfg.PersistedLedgers > cfg.MaxSessionLedgers {
		return fmt.Errorf("persisted-ledgers must not exceed max-session-ledgers")
	}
	return nil
}
