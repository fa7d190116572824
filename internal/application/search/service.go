package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/larderai/pantry/internal/infrastructure/cache"
	"github.com/larderai/pantry/internal/infrastructure/sparse"
	"github.com/larderai/pantry/internal/ports/inbound"
	"github.com/larderai/pantry/internal/ports/outbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
	"github.com/larderai/pantry/pkg/metrics"
)

const (
	defaultTopK     = 10
	minLegacyWordLn = 3
)

// Service implements inbound.SearchService: HS, the seven-step hybrid
// search algorithm of spec.md §4.7.
type Service struct {
	recipes outbound.RecipeRepository
	chat    outbound.ChatClient
	vector  outbound.VectorIndex
	cacheL  outbound.CacheLayer
	logger  *zap.Logger
}

func NewService(recipes outbound.RecipeRepository, chat outbound.ChatClient, vector outbound.VectorIndex, cacheL outbound.CacheLayer, logger *zap.Logger) *Service {
	return &Service{recipes: recipes, chat: chat, vector: vector, cacheL: cacheL, logger: logger}
}

// SimpleSearch is the legacy GET /recipes/search path: a single dense
// embedding lookup, tagged "semantic".
func (s *Service) SimpleSearch(ctx context.Context, query string, limit int) (inbound.SearchResponse, error) {
	if limit <= 0 {
		limit = defaultTopK
	}

	dense, ok := s.embedCached(ctx, query)
	if !ok {
		return inbound.SearchResponse{Results: []inbound.SearchResultDTO{}, Warning: "dense embedder unavailable"}, nil
	}

	points := s.vector.SimpleSearch(ctx, dense, limit, 0.0)
	for i := range points {
		points[i].MatchType = "semantic"
	}
	return toResponse(points, s.vector.Available()), nil
}

// HybridSearch runs the seven-step algorithm: cache-key build, cache check,
// prefetch build, hybrid RRF query, legacy fallback, cache store, return
// (spec.md §4.7).
func (s *Service) HybridSearch(ctx context.Context, req inbound.HybridSearchRequest) (inbound.SearchResponse, error) {
	if len(req.Ingredients) == 0 && strings.TrimSpace(req.Query) == "" {
		return inbound.SearchResponse{}, apperrors.NewInvalidArgument("at least one of ingredients or query is required")
	}

	timer := prometheus.NewTimer(metrics.HybridSearchLatency)
	defer timer.ObserveDuration()

	topK := req.Limit
	if topK <= 0 {
		topK = defaultTopK
	}

	cacheKey := canonicalKey(req.Ingredients, req.Query, topK, req.Threshold)
	hashKey := cache.HashKey(cacheKey)

	if s.cacheL != nil {
		if cached, hit := s.cacheL.GetSearchResults(ctx, hashKey); hit {
			return toResponse(cached, s.vector.Available()), nil
		}
	}

	prefetch := s.buildPrefetch(ctx, req.Ingredients, req.Query, topK)

	var points []outbound.SearchPoint
	var warning string

	if len(prefetch) > 0 {
		limit := topK * 2
		if limit < 50 {
			limit = 50
		}
		points = s.vector.HybridQuery(ctx, prefetch, limit)
		points = filterByThreshold(points, req.Threshold)
		if len(points) > topK {
			points = points[:topK]
		}
	}

	if len(points) == 0 {
		points, warning = s.legacyFallback(ctx, req, topK)
	}

	if len(points) > 0 && s.cacheL != nil {
		s.cacheL.SetSearchResults(ctx, hashKey, points)
	}

	resp := toResponse(points, s.vector.Available())
	if warning != "" {
		resp.Warning = warning
	}
	return resp, nil
}

// buildPrefetch assembles the dense (if query given) and sparse (if
// ingredients given) sub-queries hybridQuery fuses server-side (spec.md
// §4.7 step 3).
func (s *Service) buildPrefetch(ctx context.Context, ingredients []string, query string, topK int) []outbound.PrefetchQuery {
	var prefetch []outbound.PrefetchQuery

	if strings.TrimSpace(query) != "" {
		if dense, ok := s.embedCached(ctx, query); ok {
			prefetch = append(prefetch, outbound.PrefetchQuery{Using: "dense", Dense: dense, Limit: topK * 2})
		}
	}

	if len(ingredients) > 0 {
		sv := sparse.SparseFromIngredients(ingredients)
		if len(sv.Indices) > 0 {
			prefetch = append(prefetch, outbound.PrefetchQuery{Using: "sparse", Sparse: sv, Limit: topK * 2})
		}
	}

	return prefetch
}

// legacyFallback unions two simpleSearch calls — one against the query
// embedding, one against an ingredient-list embedding — deduped by name,
// tagged "semantic"/"ingredient", filtered by an "important keywords" gate
// that applies ONLY on this path, never to the hybrid RRF query (spec.md
// §4.7 step 5).
func (s *Service) legacyFallback(ctx context.Context, req inbound.HybridSearchRequest, topK int) ([]outbound.SearchPoint, string) {
	var all []outbound.SearchPoint

	if strings.TrimSpace(req.Query) != "" {
		if dense, ok := s.embedCached(ctx, req.Query); ok {
			hits := s.vector.SimpleSearch(ctx, dense, topK, req.Threshold)
			for _, h := range hits {
				h.MatchType = "semantic"
				all = append(all, h)
			}
		}
	}

	if len(req.Ingredients) > 0 {
		text := ComposeRecipeText("", "", req.Ingredients, "")
		if dense, ok := s.embedCached(ctx, text); ok {
			hits := s.vector.SimpleSearch(ctx, dense, topK, req.Threshold)
			for _, h := range hits {
				h.MatchType = "ingredient"
				all = append(all, h)
			}
		}
	}

	keywords := importantKeywords(req.Query)
	all = filterByKeywords(all, keywords)
	all = dedupeByName(all)
	sortByScoreDescending(all)
	if len(all) > topK {
		all = all[:topK]
	}
	all = filterByThreshold(all, req.Threshold)

	warning := ""
	if !s.vector.Available() {
		warning = "vector index unavailable, results limited to exact matches"
	}
	return all, warning
}

// embedCached wraps ChatClient.Embed with a CL round-trip keyed by the raw
// text, so repeated identical queries never re-hit the LLM (spec.md §8,
// invariant 7).
func (s *Service) embedCached(ctx context.Context, text string) ([]float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	key := cache.HashKey(text)
	if s.cacheL != nil {
		if vec, hit := s.cacheL.GetEmbedding(ctx, key); hit {
			return vec, true
		}
	}

	if s.chat == nil || !s.chat.Available() {
		metrics.SetAvailable(metrics.DenseEmbedderAvailable, false)
		return nil, false
	}

	vec, ok := s.chat.Embed(ctx, text)
	metrics.SetAvailable(metrics.DenseEmbedderAvailable, s.chat.Available())
	if !ok {
		return nil, false
	}

	if s.cacheL != nil {
		s.cacheL.SetEmbedding(ctx, key, vec)
	}
	return vec, true
}

// IndexAll rebuilds the vector index from the Relational Store, the
// disaster-recovery path for the derived VI store (spec.md §9).
func (s *Service) IndexAll(ctx context.Context) (int, error) {
	recipes, err := s.recipes.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.vector.EnsureCollection(ctx); err != nil {
		s.logger.Warn("indexAll: ensureCollection failed", zap.Error(err))
	}

	count := 0
	for _, r := range recipes {
		text := ComposeRecipeText(r.Name, r.Cuisine.DisplayName(), r.Ingredients, r.Instructions)
		dense, _ := s.embedCached(ctx, text)
		sv := sparse.SparseFromRecipe(r.Name, r.Ingredients, r.Cuisine.DisplayName())
		payload := outbound.RecipePayload{RecipeName: r.Name, Cuisine: r.Cuisine, Ingredients: r.Ingredients}

		if err := s.vector.UpsertRecipe(ctx, r.Name, dense, sv, payload); err != nil {
			s.logger.Warn("indexAll: upsert failed", zap.String("recipe", r.Name), zap.Error(err))
			continue
		}
		count++
	}
	return count, nil
}

// Stats reports the three availability flags GET /search/stats serves.
func (s *Service) Stats(ctx context.Context) inbound.SearchStats {
	return inbound.SearchStats{
		DenseEmbedderAvailable: s.chat != nil && s.chat.Available(),
		VectorIndexAvailable:   s.vector != nil && s.vector.Available(),
		CacheAvailable:         s.cacheL != nil && s.cacheL.Available(),
	}
}

// canonicalKey builds the ing:/q:/t:/s: composite cache key spec.md §3
// specifies, sorting ingredients so order never affects the key.
func canonicalKey(ingredients []string, query string, topK int, threshold float64) string {
	sorted := append([]string(nil), ingredients...)
	sort.Strings(sorted)
	return fmt.Sprintf("ing:%s|q:%s|t:%d|s:%.4f", strings.Join(sorted, ","), query, topK, threshold)
}

func filterByThreshold(points []outbound.SearchPoint, threshold float64) []outbound.SearchPoint {
	if threshold <= 0 {
		return points
	}
	out := points[:0:0]
	for _, p := range points {
		if p.Score >= threshold {
			out = append(out, p)
		}
	}
	return out
}

// sortByScoreDescending orders legacyFallback's unioned hits for truncation
// to topK (spec.md §4.7 step 5). The hybrid RRF path needs no local
// sort: the vector index fuses and ranks server-side.
func sortByScoreDescending(points []outbound.SearchPoint) {
	for i := 1; i < len(points); i++ {
		for j := i; j > 0 && points[j-1].Score < points[j].Score; j-- {
			points[j-1], points[j] = points[j], points[j-1]
		}
	}
}

func dedupeByName(points []outbound.SearchPoint) []outbound.SearchPoint {
	seen := make(map[string]bool, len(points))
	out := make([]outbound.SearchPoint, 0, len(points))
	for _, p := range points {
		if seen[p.RecipeName] {
			continue
		}
		seen[p.RecipeName] = true
		out = append(out, p)
	}
	return out
}

// importantKeywords extracts the query tokens the legacy-only filter gates
// on: longer than three characters and not a stop word (spec.md §4.7).
func importantKeywords(query string) []string {
	var out []string
	for _, tok := range sparse.Tokenize(query) {
		if len(tok) > minLegacyWordLn {
			out = append(out, tok)
		}
	}
	return out
}

func filterByKeywords(points []outbound.SearchPoint, keywords []string) []outbound.SearchPoint {
	if len(keywords) == 0 {
		return points
	}
	out := points[:0:0]
	for _, p := range points {
		name := strings.ToLower(p.RecipeName)
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				out = append(out, p)
				break
			}
		}
	}
	if len(out) == 0 {
		return points
	}
	return out
}

func toResponse(points []outbound.SearchPoint, vectorAvailable bool) inbound.SearchResponse {
	results := make([]inbound.SearchResultDTO, 0, len(points))
	for _, p := range points {
		results = append(results, inbound.SearchResultDTO{
			RecipeName:  p.RecipeName,
			Score:       p.Score,
			CuisineType: p.Cuisine.DisplayName(),
			MatchType:   p.MatchType,
		})
	}
	resp := inbound.SearchResponse{Results: results}
	if !vectorAvailable {
		resp.Warning = "vector index unavailable, results limited to exact matches"
	}
	return resp
}
