package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/config"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/services"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

type fakeDb struct {
	pingErr error
}

func (f *fakeDb) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeDb) SaveRecentLedgers(ctx context.Context, ledgers []types.Ledger) error {
	return nil
}
func (f *fakeDb) GetRecentLedgers(ctx context.Context) ([]types.Ledger, int64, error) {
	return nil, 0, nil
}
func (f *fakeDb) SaveDailyRollups(ctx context.Context, rollups map[string]*types.DayRollup) error {
	return nil
}
func (f *fakeDb) GetDailyRollups(ctx context.Context) (map[string]*types.DayRollup, error) {
	return nil, nil
}

func newTestServer(database *fakeDb) *Server {
	cfg := &config.Config{
		Engine: config.EngineConfig{
			MaxSessionLedgers:   10,
			RollupRetentionDays: 30,
			PersistedLedgers:    10,
		},
		API: config.APIConfig{Host: "127.0.0.1", Port: 8080},
	}
	service := services.NewService(cfg, database, nil, nil, nil)
	return New(&cfg.API, service, database)
}

func TestHandleStatsBeforeFirstCompute(t *testing.T) {
	server := newTestServer(&fakeDb{})

	rec := httptest.NewRecorder()
	server.handleStats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not computed yet")
	assert.Contains(t, rec.Body.String(), types.NotFound.String())
}

func TestHandleHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		server := newTestServer(&fakeDb{})

		rec := httptest.NewRecorder()
		server.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
	})
	t.Run("db unreachable", func(t *testing.T) {
		server := newTestServer(&fakeDb{pingErr: errors.New("connection refused")})

		rec := httptest.NewRecorder()
		server.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), types.InternalServiceError.String())
	})
}
