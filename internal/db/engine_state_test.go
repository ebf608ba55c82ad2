//go:build integration

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
	"github.com/ledgerpulse/xrpl-metrics-indexer/testutil"
)

func TestRecentLedgersRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now().UnixMilli()
	ledgers := []types.Ledger{
		*testutil.RandomLedger(100, now-8000, 2),
		*testutil.RandomLedger(101, now-4000, 3),
		*testutil.RandomLedger(102, now, 1),
	}

	require.NoError(t, testDB.SaveRecentLedgers(ctx, ledgers))

	restored, savedAt, err := testDB.GetRecentLedgers(ctx)
	require.NoError(t, err)
	assert.Equal(t, ledgers, restored)
	assert.NotZero(t, savedAt)

	// a second save overwrites the singleton document
	require.NoError(t, testDB.SaveRecentLedgers(ctx, ledgers[:1]))
	restored, _, err = testDB.GetRecentLedgers(ctx)
	require.NoError(t, err)
	assert.Len(t, restored, 1)
}

func TestDailyRollupsRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wallet := testutil.RandomAddress()
	rollups := map[string]*types.DayRollup{
		"2025-06-14": {
			Date:            "2025-06-14",
			TxCount:         1200,
			ActiveWallets:   1,
			WalletAddresses: map[string]struct{}{wallet: {}},
		},
		"2025-06-15": {
			Date:          "2025-06-15",
			TxCount:       900,
			ActiveWallets: 250,
		},
	}

	require.NoError(t, testDB.SaveDailyRollups(ctx, rollups))

	restored, err := testDB.GetDailyRollups(ctx)
	require.NoError(t, err)
	require.Len(t, restored, 2)

	withIdentities := restored["2025-06-14"]
	require.NotNil(t, withIdentities)
	assert.Equal(t, uint64(1200), withIdentities.TxCount)
	assert.Contains(t, withIdentities.WalletAddresses, wallet)

	aggregateOnly := restored["2025-06-15"]
	require.NotNil(t, aggregateOnly)
	assert.Equal(t, uint64(900), aggregateOnly.TxCount)
	assert.Nil(t, aggregateOnly.WalletAddresses)
}

