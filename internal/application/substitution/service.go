// Package substitution implements the Substitution Planner (SP): diffing a
// recipe's required ingredients against the pantry, then asking the LLM to
// rank replacements for whatever is missing (spec.md §4.9).
package substitution

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/larderai/pantry/internal/domain/pantry"
	"github.com/larderai/pantry/internal/ports/inbound"
	"github.com/larderai/pantry/internal/ports/outbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

type aliasResolver interface {
	ResolveToSet(ctx context.Context, tokens []string) ([]string, error)
}

const substitutionPrompt = "You are a culinary substitution expert. Given a missing ingredient, its " +
	"cuisine, the other ingredients it's cooked with, and what's already in the pantry, respond with " +
	"only a JSON array of up to 3 objects: {\"ingredient\":\"...\",\"confidence\":0-1,\"reasoning\":\"...\"}, " +
	"ranked best first."

// Service implements inbound.SubstitutionService.
type Service struct {
	recipes outbound.RecipeRepository
	pantry  outbound.PantryRepository
	aliases aliasResolver
	chat    outbound.ChatClient
	logger  *zap.Logger
}

func NewService(recipes outbound.RecipeRepository, pantryRepo outbound.PantryRepository, aliases aliasResolver, chat outbound.ChatClient, logger *zap.Logger) *Service {
	return &Service{recipes: recipes, pantry: pantryRepo, aliases: aliases, chat: chat, logger: logger.Named("substitution-service")}
}

// Missing computes a recipe's non-seasoning ingredients absent from the
// pantry, reporting coverage as a percentage (spec.md §4.9; total=0 yields
// 100% coverage).
func (s *Service) Missing(ctx context.Context, recipeName string) (inbound.MissingIngredientsReport, error) {
	missing, total, err := s.computeMissing(ctx, recipeName)
	if err != nil {
		return inbound.MissingIngredientsReport{}, err
	}

	coverage := 100.0
	if total > 0 {
		coverage = 100.0 * float64(total-len(missing)) / float64(total)
	}

	return inbound.MissingIngredientsReport{
		RecipeName:         recipeName,
		MissingIngredients: missing,
		TotalRequired:      total,
		CoveragePercent:    coverage,
	}, nil
}

// Substitutions returns, per missing ingredient, up to 3 LLM-ranked
// candidates annotated with whether the candidate is itself already in the
// pantry. Any LLM failure degrades to an empty list for that ingredient,
// never a propagated error (spec.md §4.9, §7 Degraded).
func (s *Service) Substitutions(ctx context.Context, recipeName string) (map[string][]inbound.SubstitutionSuggestion, error) {
	r, err := s.recipes.Get(ctx, recipeName)
	if err != nil {
		return nil, apperrors.Wrap(err, "fetching recipe")
	}
	if r == nil {
		return nil, apperrors.NewNotFound("recipe")
	}

	missing, _, err := s.computeMissing(ctx, recipeName)
	if err != nil {
		return nil, err
	}

	pantryItems, err := s.pantry.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing pantry")
	}
	pantryRaw := rawNames(pantryItems)
	pantrySet := toSet(pantryRaw)

	result := make(map[string][]inbound.SubstitutionSuggestion, len(missing))
	for _, ing := range missing {
		result[ing] = s.suggestOne(ctx, ing, r.Cuisine.DisplayName(), r.Ingredients, pantryRaw, pantrySet)
	}
	return result, nil
}

func (s *Service) suggestOne(ctx context.Context, ingredient, cuisine string, coIngredients, pantryRaw []string, pantrySet map[string]bool) []inbound.SubstitutionSuggestion {
	if s.chat == nil || !s.chat.Available() {
		return []inbound.SubstitutionSuggestion{}
	}

	userPrompt := fmt.Sprintf(
		"Missing ingredient: %s\nCuisine: %s\nOther ingredients in the recipe: %s\nPantry contents: %s",
		ingredient, cuisine, strings.Join(coIngredients, ", "), strings.Join(pantryRaw, ", "),
	)

	raw, err := s.chat.Complete(ctx, substitutionPrompt, userPrompt)
	if err != nil {
		s.logger.Warn("substitution suggestion failed", zap.String("ingredient", ingredient), zap.Error(err))
		return []inbound.SubstitutionSuggestion{}
	}

	suggestions := parseSuggestions(raw)
	for i := range suggestions {
		suggestions[i].InFridge = pantrySet[strings.ToLower(strings.TrimSpace(suggestions[i].Ingredient))]
	}
	return suggestions
}

// computeMissing resolves the pantry contents to canonical form (keeping the
// raw names as well), then diffs the recipe's stored non-seasoning
// ingredients against that set: missing = R.Ingredients \
// (canonicals(pantry) ∪ raw(pantry)). The recipe's ingredients are compared
// as stored; they are not resolved again here.
func (s *Service) computeMissing(ctx context.Context, recipeName string) (missing []string, total int, err error) {
	r, err := s.recipes.Get(ctx, recipeName)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "fetching recipe")
	}
	if r == nil {
		return nil, 0, apperrors.NewNotFound("recipe")
	}

	pantryItems, err := s.pantry.List(ctx)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "listing pantry")
	}
	pantryRaw := rawNames(pantryItems)

	pantryCanonical, err := s.aliases.ResolveToSet(ctx, pantryRaw)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "resolving pantry aliases")
	}
	available := toSet(pantryCanonical)

	total = len(r.Ingredients)
	for _, ing := range r.Ingredients {
		if !available[ing] {
			missing = append(missing, ing)
		}
	}
	return missing, total, nil
}

func rawNames(items []pantry.Item) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return set
}

// parseSuggestions defensively extracts a JSON array of suggestions,
// tolerating surrounding prose the same way ingredient.parseAliasVariants
// does for alias generation.
func parseSuggestions(raw string) []inbound.SubstitutionSuggestion {
	raw = strings.TrimSpace(raw)

	var out []inbound.SubstitutionSuggestion
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start != -1 && end != -1 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err == nil {
			return out
		}
	}

	return []inbound.SubstitutionSuggestion{}
}
