package xrplclient

import (
	"context"
	"time"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/observability/metrics"
)

type XRPLClientWithMetrics struct {
	client XRPLInterface
}

func NewXRPLClientWithMetrics(client XRPLInterface) *XRPLClientWithMetrics {
	return &XRPLClientWithMetrics{client: client}
}

func (c *XRPLClientWithMetrics) Start(ctx context.Context) error {
	return c.client.Start(ctx)
}

func (c *XRPLClientWithMetrics) Stop() {
	c.client.Stop()
}

func (c *XRPLClientWithMetrics) IsRunning() bool {
	return c.client.IsRunning()
}

func (c *XRPLClientWithMetrics) Events() <-chan Event {
	return c.client.Events()
}

func (c *XRPLClientWithMetrics) RequestLedger(ctx context.Context, sequence uint64) (result *RawLedger, err error) {
	c.run("RequestLedger", func() error {
		result, err = c.client.RequestLedger(ctx, sequence)
		return err
	})
	return
}

func (c *XRPLClientWithMetrics) RequestServerInfo(ctx context.Context) (result *ServerInfo, err error) {
	c.run("RequestServerInfo", func() error {
		result, err = c.client.RequestServerInfo(ctx)
		return err
	})
	return
}

func (c *XRPLClientWithMetrics) run(method string, f func() error) {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordXRPLClientLatency(duration, method, err != nil)
}
