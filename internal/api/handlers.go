package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

type errorResponse struct {
	ErrorCode types.ErrorCode `json:"errorCode"`
	Message   string          `json:"message"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snapshot := s.service.LatestStats()
	if snapshot == nil {
		writeError(w, types.NewErrorWithMsg(
			http.StatusServiceUnavailable, types.NotFound, "stats not computed yet",
		))
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
		writeError(w, types.NewError(
			http.StatusServiceUnavailable, types.InternalServiceError, err,
		))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, err *types.Error) {
	writeJSON(w, err.StatusCode, errorResponse{
		ErrorCode: err.ErrorCode,
		Message:   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
