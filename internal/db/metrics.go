package db

import (
	"context"
	"time"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/observability/metrics"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveRecentLedgers(ctx context.Context, ledgers []types.Ledger) error {
	return d.run("SaveRecentLedgers", func() error {
		return d.db.SaveRecentLedgers(ctx, ledgers)
	})
}

func (d *DbWithMetrics) GetRecentLedgers(ctx context.Context) (ledgers []types.Ledger, savedAt int64, err error) {
	//nolint:errcheck
	d.run("GetRecentLedgers", func() error {
		ledgers, savedAt, err = d.db.GetRecentLedgers(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveDailyRollups(ctx context.Context, rollups map[string]*types.DayRollup) error {
	return d.run("SaveDailyRollups", func() error {
		return d.db.SaveDailyRollups(ctx, rollups)
	})
}

func (d *DbWithMetrics) GetDailyRollups(ctx context.Context) (rollups map[string]*types.DayRollup, err error) {
	//nolint:errcheck
	d.run("GetDailyRollups", func() error {
		rollups, err = d.db.GetDailyRollups(ctx)
		return err
	})
	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
