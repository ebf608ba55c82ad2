package snapshotclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/config"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/observability/metrics"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

const maxSnapshotBodyBytes = 32 << 20

type Client struct {
	httpClient *http.Client
	cfg        *config.SnapshotConfig
}

func NewClient(cfg *config.SnapshotConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

// GetSnapshot tries the direct URL first and falls back to the proxy URL;
// the first success wins. Each URL gets its own bounded retry loop.
func (c *Client) GetSnapshot(ctx context.Context) (*types.RemoteSnapshot, error) {
	urls := []string{c.cfg.URL}
	if c.cfg.ProxyURL != "" {
		urls = append(urls, c.cfg.ProxyURL)
	}

	var lastErr error
	for _, url := range urls {
		snapshot, err := c.fetchWithRetry(ctx, url)
		if err == nil {
			return snapshot, nil
		}
		log.Ctx(ctx).Warn().Err(err).Str("url", url).Msg("snapshot fetch failed")
		lastErr = err
	}

	return nil, fmt.Errorf("all snapshot sources failed: %w", lastErr)
}

func (c *Client) fetchWithRetry(ctx context.Context, url string) (*types.RemoteSnapshot, error) {
	call := func() (*types.RemoteSnapshot, error) {
		return c.fetch(ctx, url)
	}

	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(c.cfg.MaxRetryTimes),
		retry.Delay(c.cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", c.cfg.MaxRetryTimes).
				Err(err).
				Msg("retrying snapshot fetch")
		}))
}

func (c *Client) fetch(ctx context.Context, url string) (*types.RemoteSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	stopTimer := metrics.StartClientRequestDurationTimer(url, http.MethodGet, "/")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		stopTimer(0)
		return nil, err
	}
	defer resp.Body.Close()
	stopTimer(resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBodyBytes))
	if err != nil {
		return nil, err
	}

	var snapshot types.RemoteSnapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot document: %w", err)
	}

	return &snapshot, nil
}
