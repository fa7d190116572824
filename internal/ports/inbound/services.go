// Package inbound declares the service interfaces the HTTP layer drives.
package inbound

import (
	"context"

	"github.com/larderai/pantry/internal/domain/pantry"
	"github.com/larderai/pantry/internal/domain/recipe"
)

// RecipeInput is the write-path request shape for POST /recipes.
type RecipeInput struct {
	Name         string
	Ingredients  []string
	Seasonings   []string
	CuisineType  string
	Instructions string
	ImageURL     string
}

// RecipeService owns the write path and basic reads over the Relational
// Store (spec.md §4.8).
type RecipeService interface {
	AddRecipe(ctx context.Context, in RecipeInput) (*recipe.Recipe, error)
	DeleteRecipe(ctx context.Context, name string) error
	GetRecipe(ctx context.Context, name string) (*recipe.Recipe, error)
	ListByCuisine(ctx context.Context) (map[recipe.CuisineType][]*recipe.Recipe, error)
}

// PantrySupply is the JSON shape of one fridge/supplies entry.
type PantrySupply struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	SortOrder int    `json:"sortOrder"`
}

// PantryService owns the /fridge endpoints.
type PantryService interface {
	List(ctx context.Context) ([]pantry.Item, error)
	Add(ctx context.Context, name string, count int) error
	SetCount(ctx context.Context, name string, count int) error
	ReplaceAll(ctx context.Context, supplies []PantrySupply) error
	Reorder(ctx context.Context, orderedNames []string) error
	Remove(ctx context.Context, name string) error
}

// CookabilityService owns /generate and /recipes/almost-cookable.
type CookabilityService interface {
	// Made returns cookable recipe names in Kahn discovery order for the
	// current pantry and full recipe corpus.
	Made(ctx context.Context) ([]string, error)
	// Simulate runs the same algorithm against a caller-supplied
	// (recipes, ingredients, supplies) triple, per POST /generate.
	Simulate(ctx context.Context, names []string, ingredientLists [][]string, supplies []string) ([]string, error)
	AlmostCookable(ctx context.Context, maxMissing int) (map[string][]string, error)
}

// SearchResultDTO is the HTTP-facing shape of one ranked search hit.
type SearchResultDTO struct {
	RecipeName  string  `json:"recipeName"`
	Score       float64 `json:"score"`
	CuisineType string  `json:"cuisineType"`
	MatchType   string  `json:"matchType"`
}

// SearchResponse is the outer envelope for both GET and POST search paths;
// Warning is set when a degraded path was taken (spec.md §7).
type SearchResponse struct {
	Results []SearchResultDTO `json:"results"`
	Warning string            `json:"warning,omitempty"`
}

// HybridSearchRequest is the decoded body of POST /recipes/hybrid-search.
type HybridSearchRequest struct {
	Ingredients []string
	Query       string
	Limit       int
	Threshold   float64
}

// SearchStats is the JSON snapshot served by GET /search/stats.
type SearchStats struct {
	DenseEmbedderAvailable bool `json:"denseEmbedderAvailable"`
	VectorIndexAvailable   bool `json:"vectorIndexAvailable"`
	CacheAvailable         bool `json:"cacheAvailable"`
}

// SearchService owns the search/discovery HTTP surface.
type SearchService interface {
	SimpleSearch(ctx context.Context, query string, limit int) (SearchResponse, error)
	HybridSearch(ctx context.Context, req HybridSearchRequest) (SearchResponse, error)
	IndexAll(ctx context.Context) (int, error)
	Stats(ctx context.Context) SearchStats
}

// MissingIngredientsReport is the JSON shape of GET /recipes/{name}/missing.
type MissingIngredientsReport struct {
	RecipeName         string   `json:"recipeName"`
	MissingIngredients []string `json:"missingIngredients"`
	TotalRequired      int      `json:"totalRequired"`
	CoveragePercent    float64  `json:"coveragePercent"`
}

// SubstitutionSuggestion is one LLM-proposed replacement for a missing
// ingredient.
type SubstitutionSuggestion struct {
	Ingredient string  `json:"ingredient"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	InFridge   bool    `json:"inFridge"`
}

// SubstitutionService owns /recipes/{name}/missing and /substitutions.
type SubstitutionService interface {
	Missing(ctx context.Context, recipeName string) (MissingIngredientsReport, error)
	Substitutions(ctx context.Context, recipeName string) (map[string][]SubstitutionSuggestion, error)
}

// IngredientService owns the /ingredients endpoints (IR surfaced over HTTP).
type IngredientService interface {
	Resolve(ctx context.Context, token string) (string, error)
	Aliases(ctx context.Context, canonical string) ([]string, error)
	AddAlias(ctx context.Context, canonical, alias string) error
	GenerateAliases(ctx context.Context, token string) ([]string, error)
	SeedCommonAliases(ctx context.Context) error
}
