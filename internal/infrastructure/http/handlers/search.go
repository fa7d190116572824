package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/larderai/pantry/internal/ports/inbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

// SearchHandlers serves the search/discovery HTTP surface.
type SearchHandlers struct {
	search inbound.SearchService
	logger *zap.Logger
}

func NewSearchHandlers(search inbound.SearchService, logger *zap.Logger) *SearchHandlers {
	return &SearchHandlers{search: search, logger: logger}
}

// SimpleSearch handles GET /recipes/search?query=…&limit=10.
func (h *SearchHandlers) SimpleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, h.logger, apperrors.NewInvalidArgument("limit must be an integer"))
			return
		}
		limit = n
	}

	resp, err := h.search.SimpleSearch(r.Context(), query, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, resp)
}

type hybridSearchRequest struct {
	Ingredients []string `json:"ingredients"`
	Query       string   `json:"query"`
	Limit       int      `json:"limit"`
	Threshold   float64  `json:"threshold"`
}

// HybridSearch handles POST /recipes/hybrid-search.
func (h *SearchHandlers) HybridSearch(w http.ResponseWriter, r *http.Request) {
	var req hybridSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.NewInvalidArgument("malformed request body"))
		return
	}
	if req.Limit == 0 {
		req.Limit = 10
	}

	resp, err := h.search.HybridSearch(r.Context(), inbound.HybridSearchRequest{
		Ingredients: req.Ingredients,
		Query:       req.Query,
		Limit:       req.Limit,
		Threshold:   req.Threshold,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, resp)
}

// IndexAll handles POST /search/index-all.
func (h *SearchHandlers) IndexAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.search.IndexAll(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, map[string]interface{}{"indexed": count})
}

// Stats handles GET /search/stats.
func (h *SearchHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	writeOK(w, h.logger, h.search.Stats(r.Context()))
}
