package services

import (
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/utils"
)

var retentionHorizons = [...]int{3, 7, 30}

// computeRetention reports cohort retention for the 3/7/30 day horizons.
// Cohorts come from the first-seen index grouped by day; membership sets
// come from every rollup day that carries wallet identities, plus the live
// session for the current day. A horizon stays nil until at least one
// cohort has matured for it.
func (s *Service) computeRetention(today string) types.RetentionStats {
	membership := s.membershipByDay()
	cohorts := s.cohortsByDay()

	var stats types.RetentionStats
	targets := [...]**float64{&stats.D3, &stats.D7, &stats.D30}

	for i, horizon := range retentionHorizons {
		var total float64
		var mature int
		for cohortDay, wallets := range cohorts {
			if len(wallets) == 0 {
				continue
			}
			if utils.DaysBetween(cohortDay, today) < horizon {
				continue
			}
			total += cohortRetention(cohortDay, wallets, membership, horizon)
			mature++
		}
		if mature > 0 {
			value := total / float64(mature)
			*targets[i] = &value
		}
	}
	return stats
}

// cohortRetention is the percentage of a cohort's wallets appearing in the
// membership set of any day strictly after the cohort day and within the
// horizon. Appearing once is enough.
func cohortRetention(cohortDay string, wallets map[string]struct{}, membership map[string]map[string]struct{}, horizon int) float64 {
	returned := 0
	for wallet := range wallets {
		for day, members := range membership {
			offset := utils.DaysBetween(cohortDay, day)
			if offset < 1 || offset > horizon {
				continue
			}
			if _, ok := members[wallet]; ok {
				returned++
				break
			}
		}
	}
	return float64(returned) / float64(len(wallets)) * 100
}

// membershipByDay unions wallet identity sets per day across the rollup
// table and the live session. Days without identities contribute nothing.
func (s *Service) membershipByDay() map[string]map[string]struct{} {
	membership := make(map[string]map[string]struct{})
	add := func(day string, wallets map[string]struct{}) {
		if len(wallets) == 0 {
			return
		}
		members, ok := membership[day]
		if !ok {
			members = make(map[string]struct{}, len(wallets))
			membership[day] = members
		}
		for wallet := range wallets {
			members[wallet] = struct{}{}
		}
	}

	for day, rollup := range s.rollups {
		add(day, rollup.WalletAddresses)
	}
	for day, rollup := range s.session.dayRollups() {
		add(day, rollup.WalletAddresses)
	}
	return membership
}

// cohortsByDay groups the first-seen index into per-day cohort wallet sets.
func (s *Service) cohortsByDay() map[string]map[string]struct{} {
	cohorts := make(map[string]map[string]struct{})
	for wallet, day := range s.firstSeen {
		cohort, ok := cohorts[day]
		if !ok {
			cohort = make(map[string]struct{})
			cohorts[day] = cohort
		}
		cohort[wallet] = struct{}{}
	}
	return cohorts
}
