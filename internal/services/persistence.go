package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/db"
)

// LoadPersistedState restores the recent-ledger window and the rollup
// table. Every failure downgrades to an empty engine: persistence is a
// cache, not a source of truth.
func (s *Service) LoadPersistedState(ctx context.Context) {
	ledgers, savedAt, err := s.db.GetRecentLedgers(ctx)
	switch {
	case db.IsNotFoundError(err):
		log.Info().Msg("no persisted ledgers, starting empty")
	case err != nil:
		log.Ctx(ctx).Warn().Err(err).Msg("failed to load persisted ledgers")
	default:
		restored := 0
		for i := range ledgers {
			ledger := ledgers[i]
			if s.session.ingest(&ledger) {
				restored++
			}
		}
		log.Info().
			Int("restored", restored).
			Int64("saved_at", savedAt).
			Msg("restored persisted ledgers")
	}

	rollups, err := s.db.GetDailyRollups(ctx)
	switch {
	case db.IsNotFoundError(err):
		log.Info().Msg("no persisted rollups, starting empty")
	case err != nil:
		log.Ctx(ctx).Warn().Err(err).Msg("failed to load persisted rollups")
	default:
		for date, rollup := range rollups {
			s.rollups[date] = rollup
			s.seedFirstSeen(rollup)
		}
		s.trimRollups()
		log.Info().Int("days", len(rollups)).Msg("restored persisted rollups")
	}
}

// persistState writes the bounded ledger window and the rollup table. Both
// writes are best effort: errors are logged and swallowed so the engine
// keeps running purely in-memory.
func (s *Service) persistState(ctx context.Context) {
	ledgers := s.session.snapshot(s.cfg.Engine.PersistedLedgers)
	if err := s.db.SaveRecentLedgers(ctx, ledgers); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to persist recent ledgers")
	}

	if err := s.db.SaveDailyRollups(ctx, s.rollups); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to persist daily rollups")
	}
}
