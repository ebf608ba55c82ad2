package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/config"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

func newTestService() *Service {
	cfg := &config.Config{
		Engine: config.EngineConfig{
			MaxSessionLedgers:   100,
			RollupRetentionDays: 60,
			PersistedLedgers:    50,
		},
	}
	return &Service{
		cfg:          cfg,
		session:      newSessionStore(cfg.Engine.MaxSessionLedgers, fixedClock),
		rollups:      make(map[string]*types.DayRollup),
		firstSeen:    make(map[string]string),
		engineEvents: make(chan engineEvent, 16),
		clock:        fixedClock,
	}
}

func walletSet(addrs ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(addrs))
	for _, addr := range addrs {
		set[addr] = struct{}{}
	}
	return set
}

func TestReconcileTodayPrecedence(t *testing.T) {
	s := newTestService()
	today := s.today()

	s.rollups[today] = &types.DayRollup{Date: today, TxCount: 50, ActiveWallets: 5}

	s.reconcileRollups(&types.RemoteSnapshot{
		Days: map[string]*types.RemoteDay{
			today:        {TxCount: 80, ActiveWallets: 9},
			"2025-06-14": {TxCount: 200, ActiveWallets: 40},
		},
	})

	// local wins for today even though the remote value is larger
	assert.Equal(t, uint64(50), s.rollups[today].TxCount)
	assert.Equal(t, uint64(5), s.rollups[today].ActiveWallets)
	// yesterday had no local entry, so the remote value lands as-is
	require.Contains(t, s.rollups, "2025-06-14")
	assert.Equal(t, uint64(200), s.rollups["2025-06-14"].TxCount)
}

func TestReconcileMonotonicMerge(t *testing.T) {
	s := newTestService()
	const day = "2025-06-10"

	s.rollups[day] = &types.DayRollup{Date: day, TxCount: 100, ActiveWallets: 10}

	snapshotA := &types.RemoteSnapshot{
		Days: map[string]*types.RemoteDay{
			day: {TxCount: 150, ActiveWallets: 8},
		},
	}
	snapshotB := &types.RemoteSnapshot{
		Days: map[string]*types.RemoteDay{
			day: {TxCount: 120, ActiveWallets: 20},
		},
	}

	s.reconcileRollups(snapshotA)
	s.reconcileRollups(snapshotB)
	s.reconcileRollups(snapshotA)

	// each counter ends at the maximum any source reported
	assert.Equal(t, uint64(150), s.rollups[day].TxCount)
	assert.Equal(t, uint64(20), s.rollups[day].ActiveWallets)

	// merging the same source again changes nothing
	before := s.rollups[day].Clone()
	s.reconcileRollups(snapshotB)
	assert.Equal(t, before, s.rollups[day])
}

func TestReconcileWalletSetUnion(t *testing.T) {
	s := newTestService()
	const day = "2025-06-10"

	s.rollups[day] = &types.DayRollup{
		Date:            day,
		TxCount:         10,
		ActiveWallets:   2,
		WalletAddresses: walletSet("rAlice11111111111111111111", "rBob222222222222222222222"),
	}

	s.reconcileRollups(&types.RemoteSnapshot{
		Days: map[string]*types.RemoteDay{
			day: {
				TxCount:         5,
				ActiveWallets:   2,
				WalletAddresses: []string{"rBob222222222222222222222", "rCarol3333333333333333333"},
			},
		},
	})

	rollup := s.rollups[day]
	assert.Len(t, rollup.WalletAddresses, 3)
	// the count is bumped to the union size when the union is larger
	assert.Equal(t, uint64(3), rollup.ActiveWallets)
}

func TestReconcileFirstSeen(t *testing.T) {
	s := newTestService()
	const wallet = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"

	s.firstSeen[wallet] = "2025-06-10"

	s.reconcileRollups(&types.RemoteSnapshot{
		FirstSeen: map[string]string{
			wallet:      "2025-06-01",
			"not-valid": "2025-06-02",
		},
	})

	// the earlier day wins, malformed wallet keys are dropped
	assert.Equal(t, "2025-06-01", s.firstSeen[wallet])
	assert.NotContains(t, s.firstSeen, "not-valid")

	// a later remote day never moves first-seen backward
	s.reconcileRollups(&types.RemoteSnapshot{
		FirstSeen: map[string]string{wallet: "2025-06-05"},
	})
	assert.Equal(t, "2025-06-01", s.firstSeen[wallet])
}

func TestTrimRollups(t *testing.T) {
	s := newTestService()
	s.cfg.Engine.RollupRetentionDays = 3

	for _, day := range []string{"2025-06-10", "2025-06-11", "2025-06-12", "2025-06-13", "2025-06-14"} {
		s.rollups[day] = &types.DayRollup{Date: day, TxCount: 1}
	}
	s.trimRollups()

	require.Len(t, s.rollups, 3)
	assert.NotContains(t, s.rollups, "2025-06-10")
	assert.NotContains(t, s.rollups, "2025-06-11")
	assert.Contains(t, s.rollups, "2025-06-14")
}

func TestMergeLiveRollups(t *testing.T) {
	s := newTestService()
	today := s.today()

	ledger := &types.Ledger{
		Sequence:    1,
		CloseTimeMs: testNow.UnixMilli(),
		Transactions: []types.Transaction{
			{Type: "Payment", Account: "rAlice11111111111111111111", FeeDrops: 10},
			{Type: "Payment", Account: "rBob222222222222222222222", FeeDrops: 12},
		},
	}
	require.True(t, s.session.ingest(ledger))

	s.mergeLiveRollups()

	rollup := s.rollups[today]
	require.NotNil(t, rollup)
	assert.Equal(t, uint64(2), rollup.TxCount)
	assert.Equal(t, uint64(2), rollup.ActiveWallets)
}
