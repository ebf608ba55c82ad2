package services

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
	"github.com/ledgerpulse/xrpl-metrics-indexer/pkg"
)

// reconcileRollups merges a remote snapshot's per-day rollups into the
// engine's history. Today's entry is authoritative locally: when the live
// session already produced a rollup for the current day, the remote value
// for that day is ignored. For all other days counters only move up, and
// wallet identity sets are unioned so a richer source never erases a
// poorer one.
func (s *Service) reconcileRollups(remote *types.RemoteSnapshot) {
	todayKey := s.today()

	for date, remoteDay := range remote.Days {
		if remoteDay == nil {
			continue
		}
		incoming := remoteDay.Rollup(date)

		existing, ok := s.rollups[date]
		if !ok {
			s.rollups[date] = incoming
			continue
		}
		if date == todayKey {
			continue
		}
		mergeRollup(existing, incoming)
	}

	for address, firstDay := range remote.FirstSeen {
		if firstDay == "" {
			continue
		}
		if err := pkg.ValidateXRPLAddress(address); err != nil {
			log.Debug().Err(err).Msg("skipping malformed wallet in remote first-seen index")
			continue
		}
		if known, ok := s.firstSeen[address]; !ok || firstDay < known {
			s.firstSeen[address] = firstDay
		}
	}

	s.trimRollups()
}

// mergeLiveRollups folds the session's per-day aggregates into the rollup
// history. Live data always wins upward: counters take the max and wallet
// sets union. Every live day seeds the first-seen index so backfilled or
// midnight-straddling ledgers land in their cohort immediately.
func (s *Service) mergeLiveRollups() {
	for date, live := range s.session.dayRollups() {
		existing, ok := s.rollups[date]
		if !ok {
			s.rollups[date] = live
		} else {
			mergeRollup(existing, live)
		}
		s.seedFirstSeen(live)
	}
	s.trimRollups()
}

func mergeRollup(dst, src *types.DayRollup) {
	if src.TxCount > dst.TxCount {
		dst.TxCount = src.TxCount
	}
	if src.ActiveWallets > dst.ActiveWallets {
		dst.ActiveWallets = src.ActiveWallets
	}
	if len(src.WalletAddresses) > 0 {
		if dst.WalletAddresses == nil {
			dst.WalletAddresses = make(map[string]struct{}, len(src.WalletAddresses))
		}
		for address := range src.WalletAddresses {
			dst.WalletAddresses[address] = struct{}{}
		}
	}
	if n := uint64(len(dst.WalletAddresses)); n > dst.ActiveWallets {
		dst.ActiveWallets = n
	}
}

// trimRollups drops the oldest days beyond the configured retention bound.
func (s *Service) trimRollups() {
	limit := s.cfg.Engine.RollupRetentionDays
	if limit <= 0 || len(s.rollups) <= limit {
		return
	}

	dates := make([]string, 0, len(s.rollups))
	for date := range s.rollups {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates[:len(dates)-limit] {
		delete(s.rollups, date)
	}
	log.Debug().
		Int("dropped", len(dates)-limit).
		Int("kept", limit).
		Msg("trimmed rollup history")
}

// seedFirstSeen records wallets appearing in a day rollup on their
// earliest known day. Used for live days where identity sets exist.
func (s *Service) seedFirstSeen(rollup *types.DayRollup) {
	for address := range rollup.WalletAddresses {
		if known, ok := s.firstSeen[address]; !ok || rollup.Date < known {
			s.firstSeen[address] = rollup.Date
		}
	}
}
