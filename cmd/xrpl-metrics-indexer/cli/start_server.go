package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/api"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/clients/snapshotclient"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/clients/xrplclient"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/config"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/db"
	dbmodel "github.com/ledgerpulse/xrpl-metrics-indexer/internal/db/model"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/observability/metrics"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/observability/tracing"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/queue"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/services"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the XRPL Metrics Indexer server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up engine db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	qm, err := queue.NewQueueManager(&cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize queue manager")
	}
	defer qm.Shutdown()

	var xrplClient xrplclient.XRPLInterface
	xrplClient = xrplclient.NewClient(&cfg.XRPL)
	xrplClient = xrplclient.NewXRPLClientWithMetrics(xrplClient)

	snapshotClient := snapshotclient.NewClient(&cfg.Snapshot)

	service := services.NewService(cfg, dbClient, xrplClient, snapshotClient, qm)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	apiServer := api.New(&cfg.API, service, dbClient)
	apiServer.Start()

	service.StartEngineSync(ctx)
	return nil
}
