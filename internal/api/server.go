package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/config"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/db"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/services"
)

// Server exposes the computed stats snapshot and a health probe. It holds
// no business logic; stats come straight from the engine's latest snapshot.
type Server struct {
	httpServer *http.Server
	service    *services.Service
	db         db.DbInterface
}

func New(cfg *config.APIConfig, service *services.Service, database db.DbInterface) *Server {
	server := &Server{
		service: service,
		db:      database,
	}

	router := chi.NewRouter()
	router.Get("/stats", server.handleStats)
	router.Get("/healthz", server.handleHealth)

	server.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return server
}

// Start serves until Stop or listener failure. Runs in its own goroutine;
// an immediate bind failure is fatal.
func (s *Server) Start() {
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("starting API server")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("API server failed")
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
