package db

import (
	"context"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	// SaveRecentLedgers overwrites the bounded recent-ledger blob together
	// with a save timestamp.
	SaveRecentLedgers(ctx context.Context, ledgers []types.Ledger) error
	// GetRecentLedgers returns the persisted ledger window and its save
	// timestamp. A missing document yields a NotFoundError.
	GetRecentLedgers(ctx context.Context) ([]types.Ledger, int64, error)
	// SaveDailyRollups overwrites the per-day rollup table.
	SaveDailyRollups(ctx context.Context, rollups map[string]*types.DayRollup) error
	// GetDailyRollups returns the persisted rollup table. A missing document
	// yields a NotFoundError.
	GetDailyRollups(ctx context.Context) (map[string]*types.DayRollup, error)
}
