package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                           sync.Once
	metricsRouter                  *chi.Mux
	xrplClientLatency              *prometheus.HistogramVec
	clientRequestDurationHistogram *prometheus.HistogramVec
	pollerDurationHistogram        *prometheus.HistogramVec
	eventProcessingDuration        *prometheus.HistogramVec
	ledgersIngestedCounter         prometheus.Counter
	duplicateLedgersCounter        prometheus.Counter
	malformedLedgersCounter        prometheus.Counter
	wsReconnectCounter             prometheus.Counter
	queueSendErrorCounter          prometheus.Counter
	sessionLedgersGauge            prometheus.Gauge
	latestSequenceGauge            prometheus.Gauge
	dbLatency                      *prometheus.HistogramVec
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	xrplClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "xrpl_client_latency_seconds",
			Help:    "Histogram of XRPL websocket request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	eventProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_event_processing_duration_seconds",
			Help:    "Ledger event processing duration in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"event_type", "status"},
	)

	ledgersIngestedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledgers_ingested_total",
			Help: "Number of ledgers accepted into the session store",
		},
	)

	duplicateLedgersCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledgers_duplicate_total",
			Help: "Number of re-delivered ledgers rejected as duplicates",
		},
	)

	malformedLedgersCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledgers_malformed_total",
			Help: "Number of raw ledgers dropped at the normalizer boundary",
		},
	)

	wsReconnectCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "xrpl_ws_reconnect_total",
			Help: "Number of websocket reconnect attempts",
		},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	sessionLedgersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "session_ledgers",
			Help: "Number of ledgers currently held in the session store",
		},
	)

	latestSequenceGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "latest_ledger_sequence",
			Help: "Last ledger sequence accepted by the engine",
		},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		clientRequestDurationHistogram,
		xrplClientLatency,
		pollerDurationHistogram,
		eventProcessingDuration,
		ledgersIngestedCounter,
		duplicateLedgersCounter,
		malformedLedgersCounter,
		wsReconnectCounter,
		queueSendErrorCounter,
		sessionLedgersGauge,
		latestSequenceGauge,
		dbLatency,
	)
}

func RecordXRPLClientLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	xrplClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordEventProcessingDuration(d time.Duration, eventType string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	eventProcessingDuration.WithLabelValues(eventType, status.String()).Observe(d.Seconds())
}

func IncLedgersIngested() {
	ledgersIngestedCounter.Inc()
}

func IncDuplicateLedgers() {
	duplicateLedgersCounter.Inc()
}

func IncMalformedLedgers() {
	malformedLedgersCounter.Inc()
}

func IncWsReconnects() {
	wsReconnectCounter.Inc()
}

func IncQueueSendErrors() {
	queueSendErrorCounter.Inc()
}

func RecordSessionLedgers(count int) {
	sessionLedgersGauge.Set(float64(count))
}

func RecordLatestSequence(seq uint64) {
	latestSequenceGauge.Set(float64(seq))
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}
