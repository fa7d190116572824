package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/larderai/pantry/internal/ports/inbound"
)

// SubstitutionHandlers serves GET /recipes/{name}/missing and /substitutions.
type SubstitutionHandlers struct {
	substitution inbound.SubstitutionService
	logger       *zap.Logger
}

func NewSubstitutionHandlers(substitution inbound.SubstitutionService, logger *zap.Logger) *SubstitutionHandlers {
	return &SubstitutionHandlers{substitution: substitution, logger: logger}
}

// Missing handles GET /recipes/{name}/missing.
func (h *SubstitutionHandlers) Missing(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	report, err := h.substitution.Missing(r.Context(), name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, report)
}

// Substitutions handles GET /recipes/{name}/substitutions.
func (h *SubstitutionHandlers) Substitutions(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	suggestions, err := h.substitution.Substitutions(r.Context(), name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, suggestions)
}
