package services

import (
	"sort"
	"time"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/utils"
)

const (
	trailingWindow = 24 * time.Hour
	rolling7dDays  = 7
	rolling30dDays = 30
	unknownTxType  = "Unknown"
	minTPSSamples  = 2
)

// computeStats derives the full dashboard snapshot from the session store,
// the canonical rollup table and the latest authoritative network info.
// Pure with respect to engine state; only the event processor calls it.
func (s *Service) computeStats(now time.Time) *types.StatsSnapshot {
	txs24h := s.session.transactionsSince(trailingWindow)

	snapshot := &types.StatsSnapshot{
		TPS:               s.computeTPS(),
		AvgFeeDrops:       s.computeAvgFee(txs24h),
		LedgerIntervalSec: s.computeLedgerInterval(),
		ActiveWallets24h:  countDistinctAccounts(txs24h),
		DailyActive:       s.dailyActiveHistory(),
		TxTypes:           txTypeDistribution(txs24h),
		PeakHourUTC:       s.peakHour(),
		Retention:         s.computeRetention(utils.DayKey(now)),
		ComputedAt:        now.UnixMilli(),
	}
	if seq, ok := s.session.latestSequence(); ok {
		snapshot.LatestSequence = seq
	}
	return snapshot
}

// computeTPS prefers the authoritative network value, otherwise estimates
// from the interval-sample window. Fewer than two samples or zero elapsed
// time yield 0.
func (s *Service) computeTPS() float64 {
	if s.networkInfo.TPS > 0 {
		return s.networkInfo.TPS
	}
	samples := s.session.intervalSamples()
	if len(samples) < minTPSSamples {
		return 0
	}
	var txns int
	var seconds float64
	for _, sample := range samples {
		txns += sample.TxnCount
		seconds += sample.IntervalSec
	}
	if seconds <= 0 {
		return 0
	}
	return float64(txns) / seconds
}

func (s *Service) computeAvgFee(txs []types.Transaction) float64 {
	if s.networkInfo.AvgFeeXRP > 0 {
		return s.networkInfo.AvgFeeXRP * types.DropsPerXRP
	}
	if len(txs) == 0 {
		return 0
	}
	var total uint64
	for _, tx := range txs {
		total += tx.FeeDrops
	}
	return float64(total) / float64(len(txs))
}

func (s *Service) computeLedgerInterval() float64 {
	if s.networkInfo.LedgerIntervalSec > 0 {
		return s.networkInfo.LedgerIntervalSec
	}
	samples := s.session.intervalSamples()
	if len(samples) == 0 {
		return 0
	}
	var total float64
	for _, sample := range samples {
		total += sample.IntervalSec
	}
	return total / float64(len(samples))
}

func countDistinctAccounts(txs []types.Transaction) uint64 {
	accounts := make(map[string]struct{})
	for _, tx := range txs {
		if tx.Account != "" {
			accounts[tx.Account] = struct{}{}
		}
	}
	return uint64(len(accounts))
}

// dailyActiveHistory walks the rollup table in date order and attaches
// rolling 7 and 30 day figures to every day. A window whose days all carry
// wallet identity sets gets the exact union size; otherwise the figure is
// the sum of per-day counts, flagged as an estimate.
func (s *Service) dailyActiveHistory() []types.DailyActive {
	if len(s.rollups) == 0 {
		return nil
	}

	dates := make([]string, 0, len(s.rollups))
	for date := range s.rollups {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	history := make([]types.DailyActive, 0, len(dates))
	for _, date := range dates {
		rollup := s.rollups[date]
		entry := types.DailyActive{
			Date:  date,
			Count: rollup.ActiveWallets,
		}
		entry.Rolling7d, entry.Estimated7d = s.rollingUnique(date, rolling7dDays)
		entry.Rolling30d, entry.Estimated30d = s.rollingUnique(date, rolling30dDays)
		history = append(history, entry)
	}
	return history
}

// rollingUnique computes the unique-wallet figure for the window of
// horizon days ending at endDate. The second return reports whether the
// figure is an upper-bound estimate rather than an exact union.
func (s *Service) rollingUnique(endDate string, horizon int) (uint64, bool) {
	exact := true
	union := make(map[string]struct{})
	var sum uint64

	for date, rollup := range s.rollups {
		offset := utils.DaysBetween(date, endDate)
		if offset < 0 || offset >= horizon {
			continue
		}
		sum += rollup.ActiveWallets
		if rollup.WalletAddresses == nil {
			exact = false
			continue
		}
		for address := range rollup.WalletAddresses {
			union[address] = struct{}{}
		}
	}

	if exact {
		return uint64(len(union)), false
	}
	return sum, true
}

func txTypeDistribution(txs []types.Transaction) map[string]uint64 {
	types24h := make(map[string]uint64)
	for _, tx := range txs {
		name := tx.Type
		if name == "" {
			name = unknownTxType
		}
		types24h[name]++
	}
	return types24h
}

// peakHour returns the UTC hour with the highest summed transaction count
// over the trailing 24h, the earliest hour on ties, or PeakHourNone when
// no transactions were seen.
func (s *Service) peakHour() int {
	var counts [24]int
	for _, ledger := range s.session.ledgersSince(trailingWindow) {
		hour := time.UnixMilli(ledger.CloseTimeMs).UTC().Hour()
		counts[hour] += len(ledger.Transactions)
	}

	peak := types.PeakHourNone
	best := 0
	for hour, count := range counts {
		if count > best {
			best = count
			peak = hour
		}
	}
	return peak
}
