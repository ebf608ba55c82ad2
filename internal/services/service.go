package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/clients/snapshotclient"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/clients/xrplclient"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/config"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/db"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/queue"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/utils"
)

// Service is the metrics engine. All engine state below is owned by the
// single event-processor goroutine; the only concurrent reader is the API
// server, which goes through the atomic latestSnapshot pointer.
type Service struct {
	cfg          *config.Config
	db           db.DbInterface
	xrpl         xrplclient.XRPLInterface
	snapshots    snapshotclient.SnapshotInterface
	queueManager *queue.QueueManager

	session     *sessionStore
	rollups     map[string]*types.DayRollup
	firstSeen   map[string]string
	networkInfo types.NetworkInfo

	latestSnapshot atomic.Pointer[types.StatsSnapshot]
	engineEvents   chan engineEvent

	clock func() time.Time
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	xrpl xrplclient.XRPLInterface,
	snapshots snapshotclient.SnapshotInterface,
	qm *queue.QueueManager,
) *Service {
	clock := time.Now
	return &Service{
		cfg:          cfg,
		db:           db,
		xrpl:         xrpl,
		snapshots:    snapshots,
		queueManager: qm,
		session:      newSessionStore(cfg.Engine.MaxSessionLedgers, clock),
		rollups:      make(map[string]*types.DayRollup),
		firstSeen:    make(map[string]string),
		engineEvents: make(chan engineEvent, eventProcessorSize),
		clock:        clock,
	}
}

// StartEngineSync brings the engine up and then blocks processing events in
// the calling goroutine.
func (s *Service) StartEngineSync(ctx context.Context) {
	// Restore persisted state before any live data arrives
	s.LoadPersistedState(ctx)
	// Connect and subscribe to the ledger and server streams
	if err := s.xrpl.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start XRPL client")
	}
	s.SubscribeToLedgerEvents(ctx)
	// Backfill the most recent ledgers
	s.BootstrapSession(ctx)
	// Periodic work arrives on the same event queue as live data
	s.StartSnapshotPoller(ctx)
	s.StartStatsPoller(ctx)
	s.StartPersistPoller(ctx)
	// Keep processing events in the main thread
	s.StartEventProcessor(ctx)
}

// LatestStats returns the most recently computed snapshot, or nil before
// the first stats poll.
func (s *Service) LatestStats() *types.StatsSnapshot {
	return s.latestSnapshot.Load()
}

func (s *Service) today() string {
	return utils.DayKey(s.clock())
}
