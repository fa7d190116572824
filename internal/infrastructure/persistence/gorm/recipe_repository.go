// Package gorm provides GORM-based repository implementations.
package gorm

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/larderai/pantry/internal/domain/recipe"
	"github.com/larderai/pantry/internal/ports/outbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

// RecipeRepository implements outbound.RecipeRepository over the
// food_items/recipe_dependencies/recipe_details tables.
type RecipeRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRecipeRepository(db *gorm.DB, logger *zap.Logger) outbound.RecipeRepository {
	return &RecipeRepository{db: db, logger: logger.Named("recipe-repository")}
}

// Upsert writes a recipe's food tokens, dependency edges, and detail row
// inside a single transaction (spec.md §4.8/§5): food items are inserted
// with ignore-on-conflict semantics, the recipe's existing edges are deleted
// and its current edges inserted (so a re-index replaces them), then the
// detail row is upserted by primary key. Any failure rolls back the whole
// write.
func (r *RecipeRepository) Upsert(ctx context.Context, rec *recipe.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foodItems := recipeFoodItems(rec)
		if len(foodItems) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&foodItems).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("recipe_name = ?", rec.Name).Delete(&RecipeDependencyModel{}).Error; err != nil {
			return err
		}
		deps := recipeToDependencyModels(rec)
		if len(deps) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&deps).Error; err != nil {
				return err
			}
		}

		detail := recipeToDetailModel(rec)
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_name"}},
			UpdateAll: true,
		}).Create(detail).Error
	})
	if err != nil {
		return apperrors.Wrap(err, "upserting recipe")
	}
	return nil
}

// Delete removes a recipe's detail row and dependency edges transactionally.
// It does not remove the recipe's name from food_items: other recipes may
// still reference it as an ingredient.
func (r *RecipeRepository) Delete(ctx context.Context, name string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("recipe_name = ?", name).Delete(&RecipeDetailModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return recipe.ErrNotFound
		}
		return tx.Where("recipe_name = ?", name).Delete(&RecipeDependencyModel{}).Error
	})
	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			return apperrors.NewNotFound("recipe")
		}
		return apperrors.Wrap(err, "deleting recipe")
	}
	return nil
}

// Get loads one recipe's detail row and dependency edges.
func (r *RecipeRepository) Get(ctx context.Context, name string) (*recipe.Recipe, error) {
	var detail RecipeDetailModel
	if err := r.db.WithContext(ctx).Where("recipe_name = ?", name).First(&detail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("recipe")
		}
		return nil, apperrors.Wrap(err, "loading recipe")
	}

	var deps []RecipeDependencyModel
	if err := r.db.WithContext(ctx).Where("recipe_name = ?", name).Find(&deps).Error; err != nil {
		return nil, apperrors.Wrap(err, "loading recipe dependencies")
	}

	out, err := assembleRecipe(detail, deps)
	if err != nil {
		return nil, apperrors.Wrap(err, "assembling recipe")
	}
	return out, nil
}

// List returns every recipe grouped by cuisine, for GET /recipes.
func (r *RecipeRepository) List(ctx context.Context) (map[recipe.CuisineType][]*recipe.Recipe, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[recipe.CuisineType][]*recipe.Recipe)
	for _, rc := range all {
		out[rc.Cuisine] = append(out[rc.Cuisine], rc)
	}
	return out, nil
}

// ListAll returns every recipe, for graph construction and full reindexing.
func (r *RecipeRepository) ListAll(ctx context.Context) ([]*recipe.Recipe, error) {
	var details []RecipeDetailModel
	if err := r.db.WithContext(ctx).Find(&details).Error; err != nil {
		return nil, apperrors.Wrap(err, "listing recipes")
	}

	var deps []RecipeDependencyModel
	if err := r.db.WithContext(ctx).Find(&deps).Error; err != nil {
		return nil, apperrors.Wrap(err, "listing recipe dependencies")
	}
	byRecipe := make(map[string][]RecipeDependencyModel, len(details))
	for _, d := range deps {
		byRecipe[d.RecipeName] = append(byRecipe[d.RecipeName], d)
	}

	out := make([]*recipe.Recipe, 0, len(details))
	for _, detail := range details {
		rc, err := assembleRecipe(detail, byRecipe[detail.RecipeName])
		if err != nil {
			r.logger.Warn("skipping malformed recipe row", zap.String("recipe", detail.RecipeName), zap.Error(err))
			continue
		}
		out = append(out, rc)
	}
	return out, nil
}
