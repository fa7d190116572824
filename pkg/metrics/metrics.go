// Package metrics exposes the Prometheus gauges/counters/histograms the
// process tracks: cache hit/miss by family, cookability and hybrid-search
// latency, and the three "available" booleans (DE/VI/CL) spec.md §9 calls
// global process state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pantry",
		Name:      "cache_hits_total",
		Help:      "Cache-aside hits by family (embedding, search).",
	}, []string{"family"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pantry",
		Name:      "cache_misses_total",
		Help:      "Cache-aside misses by family (embedding, search).",
	}, []string{"family"})

	CookabilityLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pantry",
		Name:      "cookability_resolution_seconds",
		Help:      "Latency of a single Kahn cookability resolution.",
		Buckets:   prometheus.DefBuckets,
	})

	HybridSearchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pantry",
		Name:      "hybrid_search_seconds",
		Help:      "Latency of a single hybrid search request, including any RRF fusion.",
		Buckets:   prometheus.DefBuckets,
	})

	DenseEmbedderAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pantry",
		Name:      "dense_embedder_available",
		Help:      "1 if the dense embedder was reachable at last probe, else 0.",
	})

	VectorIndexAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pantry",
		Name:      "vector_index_available",
		Help:      "1 if the vector index was reachable at last probe, else 0.",
	})

	CacheLayerAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pantry",
		Name:      "cache_layer_available",
		Help:      "1 if the cache layer was reachable at last probe, else 0.",
	})
)

// SetAvailable converts a bool availability flag into a gauge value.
func SetAvailable(g prometheus.Gauge, available bool) {
	if available {
		g.Set(1)
		return
	}
	g.Set(0)
}
