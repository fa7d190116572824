package vectorindex

import "github.com/larderai/pantry/internal/domain/recipe"

func recipeCuisine(s string) recipe.CuisineType {
	return recipe.ParseCuisine(s)
}
