package recipe

import "errors"

// Domain errors for recipe validation. These are wrapped into pkg/errors
// AppError values (InvalidArgument) at the application boundary.
var (
	ErrEmptyName                  = errors.New("recipe name is required")
	ErrNoIngredients              = errors.New("recipe must have at least one ingredient")
	ErrIngredientSeasoningOverlap = errors.New("a token cannot be both an ingredient and a seasoning")
	ErrNotFound                   = errors.New("recipe not found")
)
