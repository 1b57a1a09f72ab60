package handlers

import (
	"context"
	"net/http"
	"time"

	"newsdesk/internal/core"
)

const healthTimeout = 2 * time.Second

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string                        `json:"status"`
	Service  string                        `json:"service"`
	Database string                        `json:"database"`
	Features map[string]core.FeatureStatus `json:"features"`
}

// PortalHandler serves the site root and the health check
type PortalHandler struct {
	logger   *core.Logger
	features FeatureLister
	store    Pinger
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(logger *core.Logger, features FeatureLister, store Pinger) *PortalHandler {
	return &PortalHandler{
		logger:   logger,
		features: features,
		store:    store,
	}
}

// HomeHandler sends visitors to the admin panel
func (h *PortalHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HealthCheckHandler reports store reachability and the feature set
func (h *PortalHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:   "ok",
		Service:  "newsdesk",
		Database: "ok",
		Features: h.features.Status(),
	}
	status := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		h.logger.WithContext(r.Context()).Error("Health check failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	core.WriteJSON(w, r, status, resp)
}
