package search

import (
	"fmt"
	"strings"
)

const instructionsElideAt = 500

// ComposeRecipeText builds the deterministic text DE embeds for a recipe,
// omitting any empty segment (spec.md §4.3).
func ComposeRecipeText(name, cuisine string, ingredients []string, instructions string) string {
	var parts []string

	if name != "" {
		parts = append(parts, fmt.Sprintf("Recipe: %s.", name))
	}
	if cuisine != "" {
		parts = append(parts, fmt.Sprintf("Cuisine: %s.", cuisine))
	}
	if len(ingredients) > 0 {
		parts = append(parts, fmt.Sprintf("Ingredients: %s.", strings.Join(ingredients, ", ")))
	}
	if instructions != "" {
		elided := instructions
		if len(elided) > instructionsElideAt {
			elided = elided[:instructionsElideAt] + "…"
		}
		parts = append(parts, fmt.Sprintf("Instructions: %s", elided))
	}

	return strings.Join(parts, " ")
}
