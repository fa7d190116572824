// Package recipe holds the Recipe aggregate: a name-keyed collection of
// ingredient and seasoning tokens, a cuisine, free-text instructions and an
// optional image reference.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/larderai/pantry/internal/domain/shared"
)

// Recipe is the aggregate root for a single recipe. It is keyed by Name,
// not a surrogate id — spec.md's data model treats the recipe name as the
// unique key throughout the relational schema and the vector index.
type Recipe struct {
	shared.AggregateRoot

	Name         string
	Ingredients  []string
	Seasonings   []string
	Cuisine      CuisineType
	Instructions string
	ImageRef     string // empty means absent
}

// NewRecipe builds and validates a Recipe, raising a RecipeIndexedEvent once
// construction succeeds (mirroring the teacher's raise-on-construction
// pattern for aggregate roots).
func NewRecipe(name string, ingredients, seasonings []string, cuisine CuisineType, instructions, imageRef string) (*Recipe, error) {
	r := &Recipe{
		Name:         strings.TrimSpace(name),
		Ingredients:  dedupeTrim(ingredients),
		Seasonings:   dedupeTrim(seasonings),
		Cuisine:      cuisine,
		Instructions: instructions,
		ImageRef:     imageRef,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	r.AddEvent(RecipeIndexedEvent{
		EventID:   uuid.New(),
		Name:      r.Name,
		IndexedAt: time.Now(),
	})

	return r, nil
}

// Validate enforces the two structural invariants spec.md names for a
// recipe: a non-empty name/ingredient list, and disjointness between
// ingredients and seasonings.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return ErrEmptyName
	}
	if len(r.Ingredients) == 0 {
		return ErrNoIngredients
	}

	seen := make(map[string]bool, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		seen[ing] = true
	}
	for _, s := range r.Seasonings {
		if seen[s] {
			return ErrIngredientSeasoningOverlap
		}
	}

	return nil
}

func dedupeTrim(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
