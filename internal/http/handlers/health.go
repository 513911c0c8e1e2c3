package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
)

const readyTimeout = 10 * time.Second

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	d       Dispatcher
	version string
}

func NewHealthHandler(d Dispatcher, version string) *HealthHandler {
	return &HealthHandler{d: d, version: version}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.versionHeader(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz probes the mail transport.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	h.versionHeader(w)

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	st := h.d.TestSystem(ctx)
	if !st.Success {
		logger.From(r.Context()).Warn("readiness check failed", logger.String("error", st.Error))
		writeJSON(w, http.StatusServiceUnavailable, st)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *HealthHandler) versionHeader(w http.ResponseWriter) {
	if h.version != "" {
		w.Header().Set("X-Service-Version", h.version)
	}
}
