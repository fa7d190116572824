package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/larderai/pantry/internal/ports/inbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

// IngredientHandlers serves the /ingredients endpoints (IR surfaced over HTTP).
type IngredientHandlers struct {
	ingredients inbound.IngredientService
	logger      *zap.Logger
}

func NewIngredientHandlers(ingredients inbound.IngredientService, logger *zap.Logger) *IngredientHandlers {
	return &IngredientHandlers{ingredients: ingredients, logger: logger}
}

// Resolve handles GET /ingredients/{name}/resolve.
func (h *IngredientHandlers) Resolve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	canonical, err := h.ingredients.Resolve(r.Context(), name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, map[string]interface{}{"canonical": canonical})
}

// Aliases handles GET /ingredients/{name}/aliases.
func (h *IngredientHandlers) Aliases(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	aliases, err := h.ingredients.Aliases(r.Context(), name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, map[string]interface{}{"aliases": aliases})
}

type addAliasRequest struct {
	Alias string `json:"alias"`
}

// AddAlias handles POST /ingredients/{canonical}/aliases.
func (h *IngredientHandlers) AddAlias(w http.ResponseWriter, r *http.Request) {
	canonical := chi.URLParam(r, "canonical")
	var req addAliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.NewInvalidArgument("malformed request body"))
		return
	}
	if err := h.ingredients.AddAlias(r.Context(), canonical, req.Alias); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, nil)
}

// GenerateAliases handles POST /ingredients/{name}/generate-aliases.
func (h *IngredientHandlers) GenerateAliases(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	aliases, err := h.ingredients.GenerateAliases(r.Context(), name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, map[string]interface{}{"aliases": aliases})
}

// SeedCommonAliases handles POST /ingredients/seed-aliases.
func (h *IngredientHandlers) SeedCommonAliases(w http.ResponseWriter, r *http.Request) {
	if err := h.ingredients.SeedCommonAliases(r.Context()); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, nil)
}
