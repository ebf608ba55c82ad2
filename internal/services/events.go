package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/clients/xrplclient"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/observability/metrics"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

const eventProcessorSize = 5000

// engineEvent is one unit of work for the event processor. Everything that
// mutates engine state arrives as one of these; the processor goroutine is
// the only consumer.
type engineEvent interface {
	eventName() string
}

type rawLedgerEvent struct {
	raw *xrplclient.RawLedger
}

type ledgerNoticeEvent struct {
	notice xrplclient.LedgerClosedNotice
}

type serverInfoEvent struct {
	info *xrplclient.ServerInfo
}

type serverStatusEvent struct {
	status xrplclient.ServerStatus
}

type remoteSnapshotEvent struct {
	snapshot *types.RemoteSnapshot
}

type computeStatsEvent struct{}

type persistStateEvent struct{}

func (rawLedgerEvent) eventName() string      { return "raw_ledger" }
func (ledgerNoticeEvent) eventName() string   { return "ledger_notice" }
func (serverInfoEvent) eventName() string     { return "server_info" }
func (serverStatusEvent) eventName() string   { return "server_status" }
func (remoteSnapshotEvent) eventName() string { return "remote_snapshot" }
func (computeStatsEvent) eventName() string   { return "compute_stats" }
func (persistStateEvent) eventName() string   { return "persist_state" }

// enqueue hands an event to the processor without blocking the caller. A
// full queue drops the event; pollers will retry on their next tick and
// dropped ledgers are recovered by re-request on the next notice.
func (s *Service) enqueue(event engineEvent) {
	select {
	case s.engineEvents <- event:
	default:
		log.Warn().
			Str("event_type", event.eventName()).
			Msg("engine event queue full, dropping event")
	}
}

// StartEventProcessor consumes the event queue until the context is
// cancelled. It blocks the calling goroutine.
func (s *Service) StartEventProcessor(ctx context.Context) {
	log.Info().Msg("event processor started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("event processor stopped")
			return
		case event := <-s.engineEvents:
			start := time.Now()
			err := s.processEvent(ctx, event)
			if err != nil {
				log.Ctx(ctx).Error().Err(err).
					Str("event_type", event.eventName()).
					Msg("failed to process event")
			}
			metrics.RecordEventProcessingDuration(time.Since(start), event.eventName(), err != nil)
		}
	}
}

func (s *Service) processEvent(ctx context.Context, event engineEvent) error {
	switch e := event.(type) {
	case rawLedgerEvent:
		return s.handleRawLedger(e.raw)
	case ledgerNoticeEvent:
		s.handleLedgerNotice(ctx, e.notice)
		return nil
	case serverInfoEvent:
		s.handleServerInfo(e.info)
		return nil
	case serverStatusEvent:
		s.handleServerStatus(e.status)
		return nil
	case remoteSnapshotEvent:
		s.handleRemoteSnapshot(e.snapshot)
		return nil
	case computeStatsEvent:
		s.handleComputeStats(ctx)
		return nil
	case persistStateEvent:
		s.persistState(ctx)
		return nil
	default:
		log.Warn().Str("event_type", event.eventName()).Msg("unknown engine event")
		return nil
	}
}

// handleRawLedger normalizes and ingests one ledger, then folds the
// session's per-day aggregates into the rollup table.
func (s *Service) handleRawLedger(raw *xrplclient.RawLedger) error {
	ledger, err := normalizeLedger(raw, s.clock())
	if err != nil {
		metrics.IncMalformedLedgers()
		log.Warn().Err(err).Msg("skipping malformed ledger")
		return nil
	}

	if !s.session.ingest(ledger) {
		metrics.IncDuplicateLedgers()
		log.Debug().
			Uint64("sequence", ledger.Sequence).
			Msg("duplicate ledger ignored")
		return nil
	}
	metrics.IncLedgersIngested()
	metrics.RecordSessionLedgers(s.session.size())
	if seq, ok := s.session.latestSequence(); ok {
		metrics.RecordLatestSequence(seq)
	}

	s.mergeLiveRollups()

	log.Debug().
		Uint64("sequence", ledger.Sequence).
		Int("txns", len(ledger.Transactions)).
		Msg("ledger ingested")
	return nil
}

// handleLedgerNotice requests the full ledger behind a stream notice. The
// fetch runs off the processor goroutine so a slow request never stalls the
// queue; the resulting raw ledger comes back as a rawLedgerEvent.
func (s *Service) handleLedgerNotice(ctx context.Context, notice xrplclient.LedgerClosedNotice) {
	if notice.LedgerIndex == 0 {
		return
	}
	go func() {
		raw, err := s.xrpl.RequestLedger(ctx, notice.LedgerIndex)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).
				Uint64("sequence", notice.LedgerIndex).
				Msg("failed to fetch closed ledger")
			return
		}
		s.enqueue(rawLedgerEvent{raw: raw})
	}()
}

func (s *Service) handleServerInfo(info *xrplclient.ServerInfo) {
	if info == nil {
		return
	}
	if fee := info.ValidatedLedger.BaseFeeXRP * info.LoadFactor; fee > 0 {
		s.networkInfo.AvgFeeXRP = fee
	}
	log.Debug().
		Uint64("validated_seq", info.ValidatedLedger.Seq).
		Float64("load_factor", info.LoadFactor).
		Msg("server info updated")
}

// handleServerStatus updates the fee estimate from the server stream. The
// current open-ledger fee is the base fee scaled by load_factor/load_base.
func (s *Service) handleServerStatus(status xrplclient.ServerStatus) {
	if status.LoadBase <= 0 || status.BaseFeeDrops == 0 {
		return
	}
	drops := float64(status.BaseFeeDrops) * float64(status.LoadFactor) / float64(status.LoadBase)
	if drops > 0 {
		s.networkInfo.AvgFeeXRP = drops / types.DropsPerXRP
	}
	log.Debug().
		Int64("load_factor", status.LoadFactor).
		Float64("fee_drops", drops).
		Msg("server status updated")
}

// handleRemoteSnapshot reconciles the remote rollups and adopts the
// snapshot's current-day throughput and fee as the authoritative network
// values when present.
func (s *Service) handleRemoteSnapshot(snapshot *types.RemoteSnapshot) {
	if snapshot == nil {
		return
	}
	s.reconcileRollups(snapshot)
	if day, ok := snapshot.Days[s.today()]; ok && day != nil {
		if day.TPS > 0 {
			s.networkInfo.TPS = day.TPS
		}
		if day.AvgFee > 0 {
			s.networkInfo.AvgFeeXRP = day.AvgFee
		}
	}
	log.Info().
		Int64("last_updated", snapshot.LastUpdated).
		Int("days", len(snapshot.Days)).
		Msg("remote snapshot reconciled")
}

// handleComputeStats recomputes the snapshot, publishes it to the queue and
// swaps the atomic pointer the API reads from.
func (s *Service) handleComputeStats(ctx context.Context) {
	snapshot := s.computeStats(s.clock())
	s.latestSnapshot.Store(snapshot)
	if err := s.queueManager.PublishStatsSnapshot(ctx, snapshot); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to publish stats snapshot")
	}
}
