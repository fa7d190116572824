// Package recipe implements the write path over the Relational Store: the
// application-layer orchestrator behind inbound.RecipeService.
package recipe

import (
	"context"
	"time"

	"go.uber.org/zap"

	domainrecipe "github.com/larderai/pantry/internal/domain/recipe"
	"github.com/larderai/pantry/internal/application/search"
	"github.com/larderai/pantry/internal/infrastructure/sparse"
	"github.com/larderai/pantry/internal/ports/inbound"
	"github.com/larderai/pantry/internal/ports/outbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

// aliasResolver is the subset of ingredient.Resolver this service needs:
// canonicalizing raw ingredient tokens before they hit the RS.
type aliasResolver interface {
	ResolveAll(ctx context.Context, tokens []string) ([]string, error)
}

// indexWriteTimeout bounds the detached post-commit VI upsert (spec.md §5 —
// "10s VI" suggested per-call timeout).
const indexWriteTimeout = 10 * time.Second

// Service implements inbound.RecipeService.
type Service struct {
	recipes outbound.RecipeRepository
	vector  outbound.VectorIndex
	chat    outbound.ChatClient
	aliases aliasResolver
	logger  *zap.Logger
}

func NewService(recipes outbound.RecipeRepository, vector outbound.VectorIndex, chat outbound.ChatClient, aliases aliasResolver, logger *zap.Logger) *Service {
	return &Service{recipes: recipes, vector: vector, chat: chat, aliases: aliases, logger: logger.Named("recipe-service")}
}

// AddRecipe validates, canonicalizes ingredients, upserts transactionally in
// the RS, then fires a best-effort VI upsert post-commit — a write never
// rolls back because indexing failed (spec.md §4.8 step-by-step write path).
func (s *Service) AddRecipe(ctx context.Context, in inbound.RecipeInput) (*domainrecipe.Recipe, error) {
	if in.Name == "" {
		return nil, apperrors.NewInvalidArgument("recipe name is required")
	}
	if len(in.Ingredients) == 0 {
		return nil, apperrors.NewInvalidArgument("recipe must have at least one ingredient")
	}

	ingredients, err := s.aliases.ResolveAll(ctx, in.Ingredients)
	if err != nil {
		return nil, apperrors.Wrap(err, "resolving ingredient aliases")
	}
	seasonings, err := s.aliases.ResolveAll(ctx, in.Seasonings)
	if err != nil {
		return nil, apperrors.Wrap(err, "resolving seasoning aliases")
	}

	r, err := domainrecipe.NewRecipe(in.Name, ingredients, seasonings, domainrecipe.ParseCuisine(in.CuisineType), in.Instructions, in.ImageURL)
	if err != nil {
		return nil, apperrors.NewInvalidArgument(err.Error())
	}

	if err := s.recipes.Upsert(ctx, r); err != nil {
		return nil, apperrors.Wrap(err, "persisting recipe")
	}

	s.reindexOne(r)

	return r, nil
}

// DeleteRecipe removes the recipe from the RS transactionally, then
// best-effort deletes its VI point (spec.md §4.8).
func (s *Service) DeleteRecipe(ctx context.Context, name string) error {
	if err := s.recipes.Delete(ctx, name); err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			return err
		}
		return apperrors.Wrap(err, "deleting recipe")
	}

	if err := s.vector.DeletePoint(context.Background(), name); err != nil {
		s.logger.Warn("post-delete vector index cleanup failed", zap.String("recipe", name), zap.Error(err))
	}

	return nil
}

func (s *Service) GetRecipe(ctx context.Context, name string) (*domainrecipe.Recipe, error) {
	r, err := s.recipes.Get(ctx, name)
	if err != nil {
		return nil, apperrors.Wrap(err, "fetching recipe")
	}
	if r == nil {
		return nil, apperrors.NewNotFound("recipe")
	}
	return r, nil
}

func (s *Service) ListByCuisine(ctx context.Context) (map[domainrecipe.CuisineType][]*domainrecipe.Recipe, error) {
	m, err := s.recipes.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing recipes")
	}
	return m, nil
}

// reindexOne upserts a single recipe's vectors into VI on a detached
// context: indexing runs after the RS commit and must survive a client
// disconnect (spec.md §5 — "indexing... must not roll back the write on
// failure"). The dense embedding is best-effort; a missing embedder still
// lets the sparse half of the point land.
func (s *Service) reindexOne(r *domainrecipe.Recipe) {
	if s.vector == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), indexWriteTimeout)
		defer cancel()

		var dense []float64
		if s.chat != nil && s.chat.Available() {
			text := search.ComposeRecipeText(r.Name, r.Cuisine.DisplayName(), r.Ingredients, r.Instructions)
			if vec, ok := s.chat.Embed(ctx, text); ok {
				dense = vec
			}
		}

		sv := sparse.SparseFromRecipe(r.Name, r.Ingredients, r.Cuisine.DisplayName())
		payload := outbound.RecipePayload{RecipeName: r.Name, Cuisine: r.Cuisine, Ingredients: r.Ingredients}

		if err := s.vector.UpsertRecipe(ctx, r.Name, dense, sv, payload); err != nil {
			s.logger.Warn("post-write vector index upsert failed", zap.String("recipe", r.Name), zap.Error(err))
		}
	}()
}
