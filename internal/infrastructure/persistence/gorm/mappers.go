// Package gorm provides mapping between domain entities and GORM models.
package gorm

import (
	"github.com/larderai/pantry/internal/domain/ingredient"
	"github.com/larderai/pantry/internal/domain/pantry"
	"github.com/larderai/pantry/internal/domain/recipe"
)

// recipeToDetailModel builds the recipe_details row for r.
func recipeToDetailModel(r *recipe.Recipe) *RecipeDetailModel {
	return &RecipeDetailModel{
		RecipeName:   r.Name,
		CuisineType:  string(r.Cuisine),
		Instructions: r.Instructions,
		ImageURL:     r.ImageRef,
	}
}

// recipeToDependencyModels builds one edge row per ingredient and seasoning.
func recipeToDependencyModels(r *recipe.Recipe) []RecipeDependencyModel {
	deps := make([]RecipeDependencyModel, 0, len(r.Ingredients)+len(r.Seasonings))
	for _, ing := range r.Ingredients {
		deps = append(deps, RecipeDependencyModel{RecipeName: r.Name, IngredientName: ing, IsSeasoning: false})
	}
	for _, s := range r.Seasonings {
		deps = append(deps, RecipeDependencyModel{RecipeName: r.Name, IngredientName: s, IsSeasoning: true})
	}
	return deps
}

// recipeFoodItems returns every distinct token (the recipe's own name plus
// every ingredient/seasoning) that must exist in food_items before the
// dependency edges can reference it.
func recipeFoodItems(r *recipe.Recipe) []FoodItemModel {
	items := make([]FoodItemModel, 0, len(r.Ingredients)+len(r.Seasonings)+1)
	items = append(items, FoodItemModel{Name: r.Name})
	for _, ing := range r.Ingredients {
		items = append(items, FoodItemModel{Name: ing})
	}
	for _, s := range r.Seasonings {
		items = append(items, FoodItemModel{Name: s})
	}
	return items
}

// assembleRecipe reconstructs a domain Recipe from a detail row plus its
// dependency edges, splitting ingredients from seasonings on IsSeasoning.
func assembleRecipe(detail RecipeDetailModel, deps []RecipeDependencyModel) (*recipe.Recipe, error) {
	var ingredients, seasonings []string
	for _, d := range deps {
		if d.IsSeasoning {
			seasonings = append(seasonings, d.IngredientName)
		} else {
			ingredients = append(ingredients, d.IngredientName)
		}
	}
	return recipe.NewRecipe(detail.RecipeName, ingredients, seasonings, recipe.CuisineType(detail.CuisineType), detail.Instructions, detail.ImageURL)
}

func aliasToModel(rec ingredient.AliasRecord) IngredientAliasModel {
	return IngredientAliasModel{
		CanonicalName: rec.Canonical,
		Alias:         rec.Alias,
		Confidence:    rec.Confidence,
		Source:        string(rec.Source),
		CreatedAt:     rec.CreatedAt,
	}
}

func modelToAlias(m IngredientAliasModel) ingredient.AliasRecord {
	return ingredient.AliasRecord{
		Canonical:  m.CanonicalName,
		Alias:      m.Alias,
		Confidence: m.Confidence,
		Source:     ingredient.Source(m.Source),
		CreatedAt:  m.CreatedAt,
	}
}

func itemToModel(it pantry.Item) SupplyModel {
	return SupplyModel{Name: it.Name, Quantity: it.Quantity, SortOrder: it.SortOrder}
}

func modelToItem(m SupplyModel) pantry.Item {
	return pantry.Item{Name: m.Name, Quantity: m.Quantity, SortOrder: m.SortOrder}
}
