package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// HealthHandlers serves the liveness/readiness probes.
type HealthHandlers struct {
	logger *zap.Logger
}

func NewHealthHandlers(logger *zap.Logger) *HealthHandlers {
	return &HealthHandlers{logger: logger}
}

// Health handles GET /health.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	writeOK(w, h.logger, map[string]interface{}{"status": "healthy"})
}
