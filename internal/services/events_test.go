package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/clients/xrplclient"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

func rawLedgerFixture(sequence string, txns int) *xrplclient.RawLedger {
	return rawLedgerFixtureAt(sequence, 800000000, txns)
}

func rawLedgerFixtureAt(sequence string, closeTime int64, txns int) *xrplclient.RawLedger {
	raw := &xrplclient.RawLedger{
		LedgerIndex: json.Number(sequence),
		CloseTime:   &closeTime,
	}
	for range txns {
		raw.Transactions = append(raw.Transactions, json.RawMessage(
			`{"TransactionType": "Payment", "Account": "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", "Fee": "12"}`,
		))
	}
	return raw
}

func TestProcessRawLedgerEvent(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	require.NoError(t, s.processEvent(ctx, rawLedgerEvent{raw: rawLedgerFixture("100", 2)}))
	assert.Equal(t, 1, s.session.size())

	// the session aggregates land in the rollup table immediately
	day := "2025-05-08" // 800000000 ledger-epoch seconds
	require.Contains(t, s.rollups, day)
	assert.Equal(t, uint64(2), s.rollups[day].TxCount)
}

func TestRawLedgerSeedsFirstSeenForPriorDay(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	// close time 2025-06-14T10:00Z, the day before the fixed clock: the
	// wallet must land in its cohort even though the ledger is not today's
	raw := rawLedgerFixtureAt("100", 803210400, 1)
	require.NoError(t, s.processEvent(ctx, rawLedgerEvent{raw: raw}))

	require.Contains(t, s.rollups, "2025-06-14")
	assert.Equal(t, "2025-06-14", s.firstSeen["rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"])
}

func TestProcessDuplicateLedgerEvent(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	raw := rawLedgerFixture("100", 1)
	require.NoError(t, s.processEvent(ctx, rawLedgerEvent{raw: raw}))
	require.NoError(t, s.processEvent(ctx, rawLedgerEvent{raw: raw}))
	assert.Equal(t, 1, s.session.size())
}

func TestProcessMalformedLedgerEvent(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	// a ledger without a sequence is skipped, not an error
	require.NoError(t, s.processEvent(ctx, rawLedgerEvent{raw: &xrplclient.RawLedger{}}))
	assert.Zero(t, s.session.size())
}

func TestProcessComputeStatsEvent(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	assert.Nil(t, s.LatestStats())

	require.NoError(t, s.processEvent(ctx, rawLedgerEvent{raw: rawLedgerFixture("100", 1)}))
	require.NoError(t, s.processEvent(ctx, computeStatsEvent{}))

	snapshot := s.LatestStats()
	require.NotNil(t, snapshot)
	assert.Equal(t, uint64(100), snapshot.LatestSequence)
}

func TestProcessRemoteSnapshotEvent(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	snapshot := &types.RemoteSnapshot{
		Days: map[string]*types.RemoteDay{
			"2025-06-15": {TxCount: 40, TPS: 12.5, AvgFee: 0.00003},
			"2025-06-10": {TxCount: 10, TPS: 99},
		},
	}
	require.NoError(t, s.processEvent(ctx, remoteSnapshotEvent{snapshot: snapshot}))

	// only the current day's figures become authoritative
	assert.InDelta(t, 12.5, s.networkInfo.TPS, 1e-9)
	assert.InDelta(t, 0.00003, s.networkInfo.AvgFeeXRP, 1e-12)

	stats := s.computeStats(testNow)
	assert.InDelta(t, 12.5, stats.TPS, 1e-9)
	assert.InDelta(t, 30.0, stats.AvgFeeDrops, 1e-9)
}

func TestProcessServerInfoEvent(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	info := &xrplclient.ServerInfo{LoadFactor: 2}
	info.ValidatedLedger.BaseFeeXRP = 0.00001
	require.NoError(t, s.processEvent(ctx, serverInfoEvent{info: info}))

	assert.InDelta(t, 0.00002, s.networkInfo.AvgFeeXRP, 1e-12)
}

func TestProcessServerStatusEvent(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	require.NoError(t, s.processEvent(ctx, serverStatusEvent{status: xrplclient.ServerStatus{
		LoadBase:     256,
		LoadFactor:   512,
		BaseFeeDrops: 10,
	}}))

	// 10 drops scaled by 512/256
	assert.InDelta(t, 20.0/1_000_000, s.networkInfo.AvgFeeXRP, 1e-12)
}
