package services

import (
	"context"

	"github.com/rs/zerolog/log"
)

// BootstrapSession backfills the most recent configured number of ledgers
// so statistics are meaningful before the live stream has produced a full
// window. Runs in its own goroutine; fetched ledgers join the normal event
// queue, and live ledgers arriving concurrently are safe because re-ingest
// of a sequence is a no-op.
func (s *Service) BootstrapSession(ctx context.Context) {
	count := s.cfg.Engine.BootstrapLedgers
	if count <= 0 {
		return
	}

	go func() {
		info, err := s.xrpl.RequestServerInfo(ctx)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("bootstrap skipped, server info unavailable")
			return
		}
		s.enqueue(serverInfoEvent{info: info})

		latest := info.ValidatedLedger.Seq
		if latest == 0 {
			log.Ctx(ctx).Warn().Msg("bootstrap skipped, no validated ledger yet")
			return
		}

		first := uint64(1)
		if latest > uint64(count) {
			first = latest - uint64(count) + 1
		}
		log.Info().
			Uint64("from", first).
			Uint64("to", latest).
			Msg("bootstrapping session from recent ledgers")

		fetched := 0
		for seq := first; seq <= latest; seq++ {
			if ctx.Err() != nil {
				return
			}
			raw, err := s.xrpl.RequestLedger(ctx, seq)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).
					Uint64("sequence", seq).
					Msg("bootstrap ledger fetch failed")
				continue
			}
			s.enqueue(rawLedgerEvent{raw: raw})
			fetched++
		}
		log.Info().Int("fetched", fetched).Msg("bootstrap finished")
	}()
}
