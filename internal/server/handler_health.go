package server

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/me/insadmin/pkg/model"
)

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Store     string `json:"store"`
	Sessions  int    `json:"sessions"`
	RemoteAPI string `json:"remote_api"`
	Breaker   string `json:"breaker"`
}

// handleHealth reports liveness. A failing session store makes the
// console unhealthy; an open breaker only degrades it.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:    "healthy",
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Store:     "ok",
		RemoteAPI: s.client.BaseURL(),
		Breaker:   s.client.BreakerState(),
	}

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health: store ping failed", "error", err)
		resp.Status = "unhealthy"
		resp.Store = "unavailable"
		respondJSON(w, http.StatusServiceUnavailable, reqID, resp, &model.APIError{Code: model.ErrInternal, Message: "session store unavailable"})
		return
	}
	if n, err := s.store.CountSessions(ctx); err == nil {
		resp.Sessions = n
	}
	if resp.Breaker != "closed" {
		resp.Status = "degraded"
	}
	respondOK(w, reqID, resp)
}
