package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/larderai/pantry/internal/ports/inbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

// PantryHandlers serves GET/POST/PUT/DELETE /fridge.
type PantryHandlers struct {
	pantry inbound.PantryService
	logger *zap.Logger
}

func NewPantryHandlers(pantry inbound.PantryService, logger *zap.Logger) *PantryHandlers {
	return &PantryHandlers{pantry: pantry, logger: logger}
}

// List handles GET /fridge.
func (h *PantryHandlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.pantry.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	supplies := make([]inbound.PantrySupply, len(items))
	for i, it := range items {
		supplies[i] = inbound.PantrySupply{Name: it.Name, Quantity: it.Quantity, SortOrder: it.SortOrder}
	}
	writeOK(w, h.logger, map[string]interface{}{"supplies": supplies})
}

// Add handles POST /fridge/{item}?count=N.
func (h *PantryHandlers) Add(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "item")
	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, h.logger, apperrors.NewInvalidArgument("count must be a positive integer"))
			return
		}
		count = n
	}
	if err := h.pantry.Add(r.Context(), name, count); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, nil)
}

type setCountRequest struct {
	Count int `json:"count"`
}

// SetCount handles PUT /fridge/{item}.
func (h *PantryHandlers) SetCount(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "item")
	var req setCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.NewInvalidArgument("malformed request body"))
		return
	}
	if err := h.pantry.SetCount(r.Context(), name, req.Count); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, nil)
}

type replaceAllRequest struct {
	Supplies []inbound.PantrySupply `json:"supplies"`
}

// ReplaceAll handles PUT /fridge.
func (h *PantryHandlers) ReplaceAll(w http.ResponseWriter, r *http.Request) {
	var req replaceAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.NewInvalidArgument("malformed request body"))
		return
	}
	if err := h.pantry.ReplaceAll(r.Context(), req.Supplies); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, nil)
}

type reorderRequest struct {
	Items []string `json:"items"`
}

// Reorder handles PUT /fridge/order.
func (h *PantryHandlers) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.NewInvalidArgument("malformed request body"))
		return
	}
	if err := h.pantry.Reorder(r.Context(), req.Items); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, nil)
}

// Remove handles DELETE /fridge/{item}.
func (h *PantryHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "item")
	if err := h.pantry.Remove(r.Context(), name); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, nil)
}
