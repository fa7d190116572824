// Package outbound declares the ports this system drives: the relational
// store, the alias/pantry repositories, the cache layer, the vector index,
// and the LLM chat/embedding client. Concrete adapters live under
// internal/infrastructure.
package outbound

import (
	"context"

	"github.com/larderai/pantry/internal/domain/ingredient"
	"github.com/larderai/pantry/internal/domain/pantry"
	"github.com/larderai/pantry/internal/domain/recipe"
)

// RecipeRepository is the Relational Store's recipe-facing port.
//
// Writes are transactional per spec.md §4.8/§5: Upsert must batch-insert
// food tokens and edges with ignore-on-conflict semantics, then upsert the
// detail row, all inside one transaction; Delete removes the detail row and
// edges transactionally. Both propagate any failure as pkg/errors' Internal
// code — RS failures are never swallowed.
type RecipeRepository interface {
	Upsert(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, name string) error
	Get(ctx context.Context, name string) (*recipe.Recipe, error)
	// List returns every recipe grouped by cuisine, as required by GET /recipes.
	List(ctx context.Context) (map[recipe.CuisineType][]*recipe.Recipe, error)
	// ListAll returns every recipe in no particular order, for graph
	// construction (cookability) and full reindexing.
	ListAll(ctx context.Context) ([]*recipe.Recipe, error)
}

// AliasRepository is the Relational Store's ingredient_aliases-facing port.
type AliasRepository interface {
	// FindCanonical returns the alias record for the given alias spelling
	// with the highest confidence, ties broken by most recent CreatedAt. A
	// nil, nil return means no record exists.
	FindCanonical(ctx context.Context, alias string) (*ingredient.AliasRecord, error)
	// IsCanonical reports whether token is itself a known canonical (i.e. a
	// self-aliased record exists for it).
	IsCanonical(ctx context.Context, token string) (bool, error)
	Upsert(ctx context.Context, rec ingredient.AliasRecord) error
	UpsertBatch(ctx context.Context, recs []ingredient.AliasRecord) error
	ListForCanonical(ctx context.Context, canonical string) ([]ingredient.AliasRecord, error)
}

// PantryRepository is the Relational Store's supplies-facing port.
type PantryRepository interface {
	List(ctx context.Context) ([]pantry.Item, error)
	Upsert(ctx context.Context, item pantry.Item) error
	UpsertBatch(ctx context.Context, items []pantry.Item) error
	UpdateOrder(ctx context.Context, orderedNames []string) error
	Delete(ctx context.Context, name string) error
}

// SearchPoint is what VI returns for a matched recipe.
type SearchPoint struct {
	RecipeName string
	Score      float64
	Cuisine    recipe.CuisineType
	MatchType  string // "hybrid_rrf" | "semantic" | "ingredient"
}

// SparseVector is the (indices, values) pair SE produces and VI consumes.
type SparseVector struct {
	Indices []uint32
	Values  []float64
}

// RecipePayload is the metadata VI stores alongside each point's vectors.
type RecipePayload struct {
	RecipeName   string
	Cuisine      recipe.CuisineType
	Ingredients  []string
	ModelVersion string
}

// PrefetchQuery is one sub-query of a hybrid RRF request.
type PrefetchQuery struct {
	Using  string // "dense" | "sparse"
	Dense  []float64
	Sparse SparseVector
	Limit  int
}

// VectorIndex is the Vector Index (VI) port. Every method is best-effort:
// implementations must never return an error that aborts the caller: on any
// backend failure they log and return a zero value / empty slice (spec.md
// §4.5 — "search is a degradable feature").
type VectorIndex interface {
	EnsureCollection(ctx context.Context) error
	UpsertRecipe(ctx context.Context, name string, dense []float64, sparse SparseVector, payload RecipePayload) error
	DeletePoint(ctx context.Context, name string) error
	SimpleSearch(ctx context.Context, dense []float64, topK int, minScore float64) []SearchPoint
	HybridQuery(ctx context.Context, prefetch []PrefetchQuery, topK int) []SearchPoint
	// Available reports the last-observed reachability of the backing
	// store; set at startup probe and flipped by observation (spec.md §5).
	Available() bool
}

// CacheLayer is the Cache Layer (CL) port: two families of cache-aside
// entries keyed by sha256_8 hash, fronting embeddings and search results.
// Every operation must succeed-with-null on backend failure.
type CacheLayer interface {
	GetEmbedding(ctx context.Context, key string) ([]float64, bool)
	SetEmbedding(ctx context.Context, key string, vec []float64)
	GetSearchResults(ctx context.Context, key string) ([]SearchPoint, bool)
	SetSearchResults(ctx context.Context, key string, results []SearchPoint)
	Available() bool
}

// ChatClient is the LLM port used by DE (embeddings), IR (alias
// generation), and SP (substitution suggestion).
type ChatClient interface {
	// Embed produces a dense vector for text, or (nil, false) on failure or
	// blank input (spec.md §4.3).
	Embed(ctx context.Context, text string) ([]float64, bool)
	// Complete sends a single chat-style prompt and returns raw text,
	// matching the teacher's callOpenAI shape (system + user message).
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Available() bool
}
