package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/observability/metrics"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/utils/poller"
)

// StartSnapshotPoller periodically fetches the remote daily snapshot. The
// fetch happens on the poller goroutine; the merge itself is enqueued so it
// runs against current engine state, not a stale closure.
func (s *Service) StartSnapshotPoller(ctx context.Context) {
	snapshotPoller := poller.NewPoller(
		s.cfg.Poller.SnapshotPollingInterval,
		metrics.RecordPollerDuration("remote_snapshot", s.pollRemoteSnapshot),
	)
	go snapshotPoller.Start(ctx)
}

func (s *Service) pollRemoteSnapshot(ctx context.Context) error {
	snapshot, err := s.snapshots.GetSnapshot(ctx)
	if err != nil {
		// degraded mode: reconciliation proceeds with local/live data only
		log.Ctx(ctx).Warn().Err(err).Msg("remote snapshot unavailable")
		return nil
	}
	s.enqueue(remoteSnapshotEvent{snapshot: snapshot})
	return nil
}

// StartStatsPoller schedules periodic stats recomputation and server_info
// refreshes on the event queue.
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.NewPoller(
		s.cfg.Poller.StatsPollingInterval,
		metrics.RecordPollerDuration("compute_stats", s.pollStats),
	)
	go statsPoller.Start(ctx)
}

func (s *Service) pollStats(ctx context.Context) error {
	if info, err := s.xrpl.RequestServerInfo(ctx); err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("server info refresh failed")
	} else {
		s.enqueue(serverInfoEvent{info: info})
	}
	s.enqueue(computeStatsEvent{})
	return nil
}

// StartPersistPoller schedules best-effort persistence of engine state.
func (s *Service) StartPersistPoller(ctx context.Context) {
	persistPoller := poller.NewPoller(
		s.cfg.Poller.PersistInterval,
		metrics.RecordPollerDuration("persist_state", func(ctx context.Context) error {
			s.enqueue(persistStateEvent{})
			return nil
		}),
	)
	go persistPoller.Start(ctx)
}
