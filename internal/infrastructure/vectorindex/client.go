// Package vectorindex implements the Vector Index (VI) client: a
// Qdrant-shaped REST client for a single collection ("recipes_v2") carrying
// named dense and sparse vectors per point, built with net/http and
// encoding/json in the same hand-rolled-HTTP-client idiom the teacher uses
// for its LLM clients (ai/openai, ai/ollama) — no pack example repo
// imports a vector-database SDK, so this follows the pack's own precedent
// for "write the thin client yourself" rather than inventing a dependency.
package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/larderai/pantry/internal/ports/outbound"
)

const (
	collectionName = "recipes_v2"
	prefetchLimit  = 50
)

// Client implements outbound.VectorIndex against a Qdrant-compatible HTTP API.
type Client struct {
	baseURL    string
	dimension  int
	httpClient *http.Client
	logger     *zap.Logger
	available  atomic.Bool
}

type Config struct {
	BaseURL   string
	Dimension int
	Timeout   time.Duration
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:    cfg.BaseURL,
		dimension:  cfg.Dimension,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
	c.available.Store(true)
	return c
}

// PointID derives the deterministic 63-bit point id for a recipe name
// (spec.md §4.5/§9 — "unsigned hash of the recipe name... truncated to 63
// bits").
func PointID(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64() &^ (1 << 63)
}

// EnsureCollection idempotently creates the collection at startup if missing.
func (c *Client) EnsureCollection(ctx context.Context) error {
	exists, err := c.collectionExists(ctx)
	if err != nil {
		c.markUnavailable(err)
		return nil
	}
	if exists {
		c.available.Store(true)
		return nil
	}

	body := map[string]interface{}{
		"vectors": map[string]interface{}{
			"dense": map[string]interface{}{
				"size":     c.dimension,
				"distance": "Cosine",
			},
		},
		"sparse_vectors": map[string]interface{}{
			"sparse": map[string]interface{}{
				"modifier": "idf",
			},
		},
	}
	if err := c.do(ctx, http.MethodPut, "/collections/"+collectionName, body, nil); err != nil {
		c.markUnavailable(err)
		return nil
	}
	c.available.Store(true)
	return nil
}

func (c *Client) collectionExists(ctx context.Context) (bool, error) {
	var resp struct {
		Status string `json:"status"`
	}
	err := c.do(ctx, http.MethodGet, "/collections/"+collectionName, nil, &resp)
	if err != nil {
		return false, nil //nolint:nilerr // 404 and transport errors are both "not present yet"
	}
	return true, nil
}

// UpsertRecipe writes one point carrying both named vectors and the payload.
func (c *Client) UpsertRecipe(ctx context.Context, name string, dense []float64, sparse outbound.SparseVector, payload outbound.RecipePayload) error {
	point := map[string]interface{}{
		"id": PointID(name),
		"vector": map[string]interface{}{
			"dense":  dense,
			"sparse": map[string]interface{}{"indices": sparse.Indices, "values": sparse.Values},
		},
		"payload": map[string]interface{}{
			"recipe_name":   payload.RecipeName,
			"cuisine":       payload.Cuisine,
			"ingredients":   payload.Ingredients,
			"model_version": payload.ModelVersion,
		},
	}
	body := map[string]interface{}{"points": []interface{}{point}}

	if err := c.do(ctx, http.MethodPut, "/collections/"+collectionName+"/points", body, nil); err != nil {
		c.logger.Warn("vector index upsert failed", zap.String("recipe", name), zap.Error(err))
		c.markUnavailable(err)
		return nil
	}
	c.available.Store(true)
	return nil
}

// DeletePoint removes the point derived from name, best-effort.
func (c *Client) DeletePoint(ctx context.Context, name string) error {
	body := map[string]interface{}{"points": []uint64{PointID(name)}}
	if err := c.do(ctx, http.MethodPost, "/collections/"+collectionName+"/points/delete", body, nil); err != nil {
		c.logger.Warn("vector index delete failed", zap.String("recipe", name), zap.Error(err))
		c.markUnavailable(err)
	}
	return nil
}

type scoredPoint struct {
	Score   float64 `json:"score"`
	Payload struct {
		RecipeName string `json:"recipe_name"`
		Cuisine    string `json:"cuisine"`
	} `json:"payload"`
}

// SimpleSearch runs a single dense-vector cosine search.
func (c *Client) SimpleSearch(ctx context.Context, dense []float64, topK int, minScore float64) []outbound.SearchPoint {
	body := map[string]interface{}{
		"query":        dense,
		"using":        "dense",
		"limit":        topK,
		"score_threshold": minScore,
		"with_payload": true,
	}
	var resp struct {
		Result []scoredPoint `json:"result"`
	}
	if err := c.do(ctx, http.MethodPost, "/collections/"+collectionName+"/points/query", body, &resp); err != nil {
		c.logger.Warn("vector index simple search failed", zap.Error(err))
		c.markUnavailable(err)
		return nil
	}
	c.available.Store(true)

	return toSearchPoints(resp.Result, "semantic")
}

// HybridQuery issues a prefetch+RRF fusion request: two prefetch sub-queries
// (dense, sparse), fused server-side (spec.md §4.5).
func (c *Client) HybridQuery(ctx context.Context, prefetch []outbound.PrefetchQuery, topK int) []outbound.SearchPoint {
	prefetchBody := make([]map[string]interface{}, 0, len(prefetch))
	for _, p := range prefetch {
		limit := p.Limit
		if limit == 0 {
			limit = prefetchLimit
		}
		entry := map[string]interface{}{"using": p.Using, "limit": limit}
		if p.Using == "dense" {
			entry["query"] = p.Dense
		} else {
			entry["query"] = map[string]interface{}{"indices": p.Sparse.Indices, "values": p.Sparse.Values}
		}
		prefetchBody = append(prefetchBody, entry)
	}

	body := map[string]interface{}{
		"prefetch":     prefetchBody,
		"query":        map[string]string{"fusion": "rrf"},
		"limit":        topK,
		"with_payload": true,
	}

	var resp struct {
		Result []scoredPoint `json:"result"`
	}
	if err := c.do(ctx, http.MethodPost, "/collections/"+collectionName+"/points/query", body, &resp); err != nil {
		c.logger.Warn("vector index hybrid query failed", zap.Error(err))
		c.markUnavailable(err)
		return nil
	}
	c.available.Store(true)

	return toSearchPoints(resp.Result, "hybrid_rrf")
}

func toSearchPoints(points []scoredPoint, matchType string) []outbound.SearchPoint {
	out := make([]outbound.SearchPoint, 0, len(points))
	for _, p := range points {
		out = append(out, outbound.SearchPoint{
			RecipeName: p.Payload.RecipeName,
			Score:      p.Score,
			Cuisine:    recipeCuisine(p.Payload.Cuisine),
			MatchType:  matchType,
		})
	}
	return out
}

func (c *Client) Available() bool { return c.available.Load() }

func (c *Client) markUnavailable(err error) {
	c.logger.Warn("vector index call failed, marking unavailable", zap.Error(err))
	c.available.Store(false)
}

func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody interface{}) error {
	var reader io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("vector index API error %d: %s", resp.StatusCode, string(raw))
	}

	if respBody != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, respBody); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
