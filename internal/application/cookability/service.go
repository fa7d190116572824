package cookability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/larderai/pantry/internal/ports/outbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
	"github.com/larderai/pantry/pkg/metrics"
)

type aliasResolver interface {
	ResolveToSet(ctx context.Context, tokens []string) ([]string, error)
}

// Service wires the pure Resolve/AlmostCookable functions to the
// Relational Store and Ingredient Resolver for GET/POST /generate and
// GET /recipes/almost-cookable.
type Service struct {
	recipes outbound.RecipeRepository
	pantry  outbound.PantryRepository
	aliases aliasResolver
	logger  *zap.Logger
}

func NewService(recipes outbound.RecipeRepository, pantryRepo outbound.PantryRepository, aliases aliasResolver, logger *zap.Logger) *Service {
	return &Service{recipes: recipes, pantry: pantryRepo, aliases: aliases, logger: logger.Named("cookability-service")}
}

// Made returns cookable recipe names for the live RS/pantry state, in Kahn
// discovery order (spec.md §4.2, S1-S4).
func (s *Service) Made(ctx context.Context) ([]string, error) {
	timer := prometheus.NewTimer(metrics.CookabilityLatency)
	defer timer.ObserveDuration()

	all, err := s.recipes.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing recipes")
	}
	items, err := s.pantry.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing pantry")
	}

	pantryRaw := make([]string, len(items))
	for i, it := range items {
		pantryRaw[i] = it.Name
	}
	pantryTokens, err := s.aliases.ResolveToSet(ctx, pantryRaw)
	if err != nil {
		return nil, apperrors.Wrap(err, "resolving pantry aliases")
	}

	recipes := make([]Recipe, 0, len(all))
	for _, r := range all {
		canonical, err := s.aliases.ResolveToSet(ctx, r.Ingredients)
		if err != nil {
			return nil, apperrors.Wrap(err, "resolving recipe aliases")
		}
		recipes = append(recipes, Recipe{Name: r.Name, Ingredients: canonical})
	}

	return Resolve(pantryTokens, recipes), nil
}

// Simulate runs the same algorithm against a caller-supplied
// (recipes, ingredients, supplies) triple without touching the RS/pantry at
// all, per POST /generate (spec.md §6).
func (s *Service) Simulate(ctx context.Context, names []string, ingredientLists [][]string, supplies []string) ([]string, error) {
	if len(names) != len(ingredientLists) {
		return nil, apperrors.NewInvalidArgument("recipes and ingredients must be the same length")
	}

	pantryTokens, err := s.aliases.ResolveToSet(ctx, supplies)
	if err != nil {
		return nil, apperrors.Wrap(err, "resolving supply aliases")
	}

	recipes := make([]Recipe, 0, len(names))
	for i, name := range names {
		canonical, err := s.aliases.ResolveToSet(ctx, ingredientLists[i])
		if err != nil {
			return nil, apperrors.Wrap(err, "resolving recipe aliases")
		}
		recipes = append(recipes, Recipe{Name: name, Ingredients: canonical})
	}

	return Resolve(pantryTokens, recipes), nil
}

// AlmostCookable reports, for each recipe, its missing canonical
// ingredients when the count is within maxMissing (spec.md §4.2).
func (s *Service) AlmostCookable(ctx context.Context, maxMissing int) (map[string][]string, error) {
	all, err := s.recipes.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing recipes")
	}
	items, err := s.pantry.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing pantry")
	}

	pantryRaw := make([]string, len(items))
	for i, it := range items {
		pantryRaw[i] = it.Name
	}
	pantryTokens, err := s.aliases.ResolveToSet(ctx, pantryRaw)
	if err != nil {
		return nil, apperrors.Wrap(err, "resolving pantry aliases")
	}

	recipes := make([]Recipe, 0, len(all))
	for _, r := range all {
		canonical, err := s.aliases.ResolveToSet(ctx, r.Ingredients)
		if err != nil {
			return nil, apperrors.Wrap(err, "resolving recipe aliases")
		}
		recipes = append(recipes, Recipe{Name: r.Name, Ingredients: canonical})
	}

	out, err := AlmostCookable(pantryTokens, recipes, maxMissing)
	if err != nil {
		return nil, apperrors.NewInvalidArgument(err.Error())
	}
	return out, nil
}
