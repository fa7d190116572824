package recipe

import (
	"time"

	"github.com/google/uuid"
)

// RecipeIndexedEvent is raised by NewRecipe whenever a Recipe is
// successfully constructed, before any persistence or vector-index work. It
// is informational only: nothing in this repository dispatches or logs it,
// and it never gates the RS transaction.
type RecipeIndexedEvent struct {
	EventID   uuid.UUID
	Name      string
	IndexedAt time.Time
}

func (e RecipeIndexedEvent) EventName() string   { return "recipe.indexed" }
func (e RecipeIndexedEvent) OccurredAt() time.Time { return e.IndexedAt }

// RecipeDeletedEvent describes a recipe's RS rows being removed. No code
// path raises it: DeleteRecipe removes the rows without recording an event.
type RecipeDeletedEvent struct {
	EventID   uuid.UUID
	Name      string
	DeletedAt time.Time
}

func (e RecipeDeletedEvent) EventName() string   { return "recipe.deleted" }
func (e RecipeDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
