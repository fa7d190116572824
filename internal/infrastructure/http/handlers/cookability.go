package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/larderai/pantry/internal/ports/inbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

// CookabilityHandlers serves GET/POST /generate and GET /recipes/almost-cookable.
type CookabilityHandlers struct {
	cookability inbound.CookabilityService
	logger      *zap.Logger
}

func NewCookabilityHandlers(cookability inbound.CookabilityService, logger *zap.Logger) *CookabilityHandlers {
	return &CookabilityHandlers{cookability: cookability, logger: logger}
}

// Made handles GET /generate.
func (h *CookabilityHandlers) Made(w http.ResponseWriter, r *http.Request) {
	made, err := h.cookability.Made(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, map[string]interface{}{"made": made})
}

type simulateRequest struct {
	Recipes     []string   `json:"recipes"`
	Ingredients [][]string `json:"ingredients"`
	Supplies    []string   `json:"supplies"`
}

// Simulate handles POST /generate.
func (h *CookabilityHandlers) Simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.NewInvalidArgument("malformed request body"))
		return
	}

	made, err := h.cookability.Simulate(r.Context(), req.Recipes, req.Ingredients, req.Supplies)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, map[string]interface{}{"made": made})
}

// AlmostCookable handles GET /recipes/almost-cookable?maxMissing=2.
func (h *CookabilityHandlers) AlmostCookable(w http.ResponseWriter, r *http.Request) {
	maxMissing := 2
	if raw := r.URL.Query().Get("maxMissing"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, h.logger, apperrors.NewInvalidArgument("maxMissing must be an integer"))
			return
		}
		maxMissing = n
	}

	result, err := h.cookability.AlmostCookable(r.Context(), maxMissing)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, result)
}
