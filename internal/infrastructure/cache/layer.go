package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/larderai/pantry/internal/ports/outbound"
	"github.com/larderai/pantry/pkg/metrics"
)

// Layer implements outbound.CacheLayer as a cache-aside wrapper over
// RedisClient, adapted from the teacher's AICacheService
// (CacheRecipeGeneration/GetRecipeGeneration) pattern: serialize, store
// under a family-prefixed hashed key (emb:/search:) with the one configured
// TTL shared by both families, and treat every failure as
// a transparent miss (spec.md §4.6 — "every operation must succeed-with-null
// on any backend failure").
type Layer struct {
	redis  *RedisClient
	ttl    time.Duration
	logger *zap.Logger
}

func NewLayer(redis *RedisClient, ttl time.Duration, logger *zap.Logger) *Layer {
	if ttl <= 0 {
		ttl = 3600 * time.Second
	}
	return &Layer{redis: redis, ttl: ttl, logger: logger}
}

const (
	familyEmbedding = "embedding"
	familySearch    = "search"
)

func (l *Layer) GetEmbedding(ctx context.Context, key string) ([]float64, bool) {
	raw, err := l.redis.Get(ctx, "emb:"+key)
	if err != nil {
		metrics.CacheMisses.WithLabelValues(familyEmbedding).Inc()
		return nil, false
	}
	var vec []float64
	if err := json.Unmarshal(raw, &vec); err != nil {
		l.logger.Warn("corrupt cached embedding, treating as miss", zap.Error(err))
		metrics.CacheMisses.WithLabelValues(familyEmbedding).Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues(familyEmbedding).Inc()
	return vec, true
}

func (l *Layer) SetEmbedding(ctx context.Context, key string, vec []float64) {
	raw, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := l.redis.Set(ctx, "emb:"+key, raw, l.ttl); err != nil {
		l.logger.Debug("embedding cache set failed, ignoring", zap.Error(err))
	}
}

func (l *Layer) GetSearchResults(ctx context.Context, key string) ([]outbound.SearchPoint, bool) {
	raw, err := l.redis.Get(ctx, "search:"+key)
	if err != nil {
		metrics.CacheMisses.WithLabelValues(familySearch).Inc()
		return nil, false
	}
	var results []outbound.SearchPoint
	if err := json.Unmarshal(raw, &results); err != nil {
		l.logger.Warn("corrupt cached search result, treating as miss", zap.Error(err))
		metrics.CacheMisses.WithLabelValues(familySearch).Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues(familySearch).Inc()
	return results, true
}

func (l *Layer) SetSearchResults(ctx context.Context, key string, results []outbound.SearchPoint) {
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := l.redis.Set(ctx, "search:"+key, raw, l.ttl); err != nil {
		l.logger.Debug("search cache set failed, ignoring", zap.Error(err))
	}
}

func (l *Layer) Available() bool {
	available := l.redis.Available()
	metrics.SetAvailable(metrics.CacheLayerAvailable, available)
	return available
}
