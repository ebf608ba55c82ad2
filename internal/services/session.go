package services

import (
	"sort"
	"time"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/utils"
)

// intervalWindowSize caps the sliding window of inter-ledger interval
// samples used for throughput estimation.
const intervalWindowSize = 10

// sessionStore is the append-only, deduplicated, bounded, sequence-ordered
// collection of live ledgers. It is not safe for concurrent use; the event
// processor is its only caller.
type sessionStore struct {
	maxLedgers int
	ledgers    []*types.Ledger
	seen       map[uint64]struct{}
	intervals  []types.IntervalSample
	clock      func() time.Time
}

func newSessionStore(maxLedgers int, clock func() time.Time) *sessionStore {
	return &sessionStore{
		maxLedgers: maxLedgers,
		seen:       make(map[uint64]struct{}),
		clock:      clock,
	}
}

// ingest appends a ledger, returning false when the sequence was already
// stored (re-delivery is a no-op, not an error). Arrival order is not
// sequence order, so the store re-sorts after every insert and evicts the
// lowest sequences beyond the bound.
func (s *sessionStore) ingest(ledger *types.Ledger) bool {
	if _, dup := s.seen[ledger.Sequence]; dup {
		return false
	}

	if len(s.ledgers) > 0 {
		prev := s.ledgers[len(s.ledgers)-1]
		deltaSec := float64(ledger.CloseTimeMs-prev.CloseTimeMs) / 1000
		// backfill arrives out of order; only forward deltas are meaningful
		if deltaSec > 0 {
			s.intervals = append(s.intervals, types.IntervalSample{
				IntervalSec: deltaSec,
				TxnCount:    len(ledger.Transactions),
			})
			if len(s.intervals) > intervalWindowSize {
				s.intervals = s.intervals[len(s.intervals)-intervalWindowSize:]
			}
		}
	}

	s.seen[ledger.Sequence] = struct{}{}
	s.ledgers = append(s.ledgers, ledger)
	sort.Slice(s.ledgers, func(i, j int) bool {
		return s.ledgers[i].Sequence < s.ledgers[j].Sequence
	})

	for len(s.ledgers) > s.maxLedgers {
		evicted := s.ledgers[0]
		delete(s.seen, evicted.Sequence)
		s.ledgers = s.ledgers[1:]
	}

	return true
}

func (s *sessionStore) size() int {
	return len(s.ledgers)
}

func (s *sessionStore) latestSequence() (uint64, bool) {
	if len(s.ledgers) == 0 {
		return 0, false
	}
	return s.ledgers[len(s.ledgers)-1].Sequence, true
}

func (s *sessionStore) intervalSamples() []types.IntervalSample {
	return s.intervals
}

// ledgersSince returns the ledgers whose close time falls within
// [now-window, now].
func (s *sessionStore) ledgersSince(window time.Duration) []*types.Ledger {
	cutoff := s.clock().UnixMilli() - window.Milliseconds()
	var out []*types.Ledger
	for _, ledger := range s.ledgers {
		if ledger.CloseTimeMs >= cutoff {
			out = append(out, ledger)
		}
	}
	return out
}

// transactionsSince flattens transactions from all ledgers closed within
// the trailing window.
func (s *sessionStore) transactionsSince(window time.Duration) []types.Transaction {
	var out []types.Transaction
	for _, ledger := range s.ledgersSince(window) {
		out = append(out, ledger.Transactions...)
	}
	return out
}

// dayRollups groups the session's ledgers by UTC calendar day, summing
// transaction counts and collecting the distinct initiating accounts.
func (s *sessionStore) dayRollups() map[string]*types.DayRollup {
	rollups := make(map[string]*types.DayRollup)
	for _, ledger := range s.ledgers {
		day := utils.DayKeyFromUnixMs(ledger.CloseTimeMs)
		rollup, ok := rollups[day]
		if !ok {
			rollup = &types.DayRollup{
				Date:            day,
				WalletAddresses: make(map[string]struct{}),
			}
			rollups[day] = rollup
		}
		rollup.TxCount += uint64(len(ledger.Transactions))
		for _, tx := range ledger.Transactions {
			if tx.Account != "" {
				rollup.WalletAddresses[tx.Account] = struct{}{}
			}
		}
	}
	for _, rollup := range rollups {
		rollup.ActiveWallets = uint64(len(rollup.WalletAddresses))
	}
	return rollups
}

// snapshot returns the most recent n ledgers by value for persistence.
func (s *sessionStore) snapshot(n int) []types.Ledger {
	start := 0
	if len(s.ledgers) > n {
		start = len(s.ledgers) - n
	}
	out := make([]types.Ledger, 0, len(s.ledgers)-start)
	for _, ledger := range s.ledgers[start:] {
		out = append(out, *ledger)
	}
	return out
}
