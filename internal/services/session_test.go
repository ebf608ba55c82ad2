package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
	"github.com/ledgerpulse/xrpl-metrics-indexer/testutil"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func TestSessionStoreIdempotence(t *testing.T) {
	store := newSessionStore(100, fixedClock)

	ledger := testutil.RandomLedger(10, testNow.UnixMilli(), 3)
	require.True(t, store.ingest(ledger))
	assert.False(t, store.ingest(ledger))
	assert.Equal(t, 1, store.size())
}

func TestSessionStoreOrdering(t *testing.T) {
	// arrival order [5, 3, 4] must produce the same view as [3, 4, 5]
	base := testNow.UnixMilli()
	ledgers := []*types.Ledger{
		testutil.RandomLedger(3, base-8000, 2),
		testutil.RandomLedger(4, base-4000, 1),
		testutil.RandomLedger(5, base, 4),
	}

	outOfOrder := newSessionStore(100, fixedClock)
	for _, i := range []int{2, 0, 1} {
		require.True(t, outOfOrder.ingest(ledgers[i]))
	}

	inOrder := newSessionStore(100, fixedClock)
	for _, ledger := range ledgers {
		require.True(t, inOrder.ingest(ledger))
	}

	assert.Equal(t, 3, outOfOrder.size())
	for i, ledger := range outOfOrder.ledgers {
		assert.Equal(t, inOrder.ledgers[i].Sequence, ledger.Sequence)
	}

	seqA, okA := outOfOrder.latestSequence()
	seqB, okB := inOrder.latestSequence()
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, seqB, seqA)

	assert.Len(t, outOfOrder.transactionsSince(time.Hour), 7)
	assert.Equal(t, inOrder.dayRollups(), outOfOrder.dayRollups())
}

func TestSessionStoreBound(t *testing.T) {
	const maxLedgers = 5
	store := newSessionStore(maxLedgers, fixedClock)

	base := testNow.UnixMilli()
	for seq := uint64(1); seq <= 20; seq++ {
		store.ingest(testutil.RandomLedger(seq, base+int64(seq)*4000, 1))
	}

	require.Equal(t, maxLedgers, store.size())
	// the surviving entries are always the highest sequences
	assert.Equal(t, uint64(16), store.ledgers[0].Sequence)
	assert.Equal(t, uint64(20), store.ledgers[maxLedgers-1].Sequence)

	// evicted sequences can be ingested again
	assert.True(t, store.ingest(testutil.RandomLedger(1, base, 1)))
}

func TestSessionStoreIntervalWindow(t *testing.T) {
	store := newSessionStore(100, fixedClock)

	base := testNow.UnixMilli()
	for seq := uint64(1); seq <= 30; seq++ {
		store.ingest(testutil.RandomLedger(seq, base+int64(seq)*4000, 2))
	}

	samples := store.intervalSamples()
	require.Len(t, samples, intervalWindowSize)
	for _, sample := range samples {
		assert.Equal(t, 4.0, sample.IntervalSec)
		assert.Equal(t, 2, sample.TxnCount)
	}
}

func TestSessionStoreSkipsNonPositiveIntervals(t *testing.T) {
	store := newSessionStore(100, fixedClock)

	base := testNow.UnixMilli()
	store.ingest(testutil.RandomLedger(2, base, 1))
	// earlier close time than the latest accepted ledger
	store.ingest(testutil.RandomLedger(1, base-5000, 1))

	assert.Empty(t, store.intervalSamples())
}

func TestSessionStoreDayRollups(t *testing.T) {
	store := newSessionStore(100, fixedClock)

	day1 := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC).UnixMilli()
	day2 := time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC).UnixMilli()

	shared := testutil.RandomTransaction()
	l1 := &types.Ledger{Sequence: 1, CloseTimeMs: day1, Transactions: []types.Transaction{shared, testutil.RandomTransaction()}}
	l2 := &types.Ledger{Sequence: 2, CloseTimeMs: day2, Transactions: []types.Transaction{shared}}
	hashOnly := &types.Ledger{Sequence: 3, CloseTimeMs: day2, Transactions: []types.Transaction{{Hash: testutil.RandomTxHash()}}}

	require.True(t, store.ingest(l1))
	require.True(t, store.ingest(l2))
	require.True(t, store.ingest(hashOnly))

	rollups := store.dayRollups()
	require.Len(t, rollups, 2)

	first := rollups["2025-06-14"]
	require.NotNil(t, first)
	assert.Equal(t, uint64(2), first.TxCount)
	assert.Equal(t, uint64(2), first.ActiveWallets)

	second := rollups["2025-06-15"]
	require.NotNil(t, second)
	assert.Equal(t, uint64(2), second.TxCount)
	// the hash-only transaction has no account and must not count
	assert.Equal(t, uint64(1), second.ActiveWallets)
	assert.Contains(t, second.WalletAddresses, shared.Account)
}

func TestSessionStoreSnapshot(t *testing.T) {
	store := newSessionStore(100, fixedClock)

	base := testNow.UnixMilli()
	for seq := uint64(1); seq <= 10; seq++ {
		store.ingest(testutil.RandomLedger(seq, base+int64(seq)*4000, 1))
	}

	persisted := store.snapshot(3)
	require.Len(t, persisted, 3)
	assert.Equal(t, uint64(8), persisted[0].Sequence)
	assert.Equal(t, uint64(10), persisted[2].Sequence)
}
