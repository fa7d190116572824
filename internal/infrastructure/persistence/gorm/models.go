// Package gorm provides GORM model definitions and repository
// implementations for the Relational Store's five tables: food_items,
// recipe_dependencies, recipe_details, supplies, ingredient_aliases
// (spec.md §6).
package gorm

import "time"

// FoodItemModel is a known ingredient/seasoning/recipe token. Every name
// that appears anywhere as an ingredient, seasoning, or recipe is upserted
// here before its dependency edges are written. No foreign key is declared
// on recipe_dependencies, and the cookability graph is built from recipe
// details and dependencies, not from this table.
type FoodItemModel struct {
	Name string `gorm:"primaryKey;type:varchar(255)"`
}

func (FoodItemModel) TableName() string { return "food_items" }

// RecipeDependencyModel is one edge: recipe_name depends on ingredient_name,
// tagged as a seasoning or not (spec.md §3 — seasonings excluded from
// cookability).
type RecipeDependencyModel struct {
	RecipeName     string `gorm:"primaryKey;type:varchar(255)"`
	IngredientName string `gorm:"primaryKey;type:varchar(255)"`
	IsSeasoning    bool   `gorm:"column:is_seasoning;default:false"`
}

func (RecipeDependencyModel) TableName() string { return "recipe_dependencies" }

// RecipeDetailModel is the non-graph metadata for a single recipe.
type RecipeDetailModel struct {
	RecipeName   string `gorm:"primaryKey;column:recipe_name;type:varchar(255)"`
	CuisineType  string `gorm:"column:cuisine_type;type:varchar(50)"`
	Instructions string `gorm:"type:text"`
	ImageURL     string `gorm:"column:image_url;type:text"`
}

func (RecipeDetailModel) TableName() string { return "recipe_details" }

// SupplyModel is one pantry entry.
type SupplyModel struct {
	Name      string `gorm:"primaryKey;type:varchar(255)"`
	Quantity  int    `gorm:"default:1"`
	SortOrder int    `gorm:"column:sort_order;default:0"`
}

func (SupplyModel) TableName() string { return "supplies" }

// IngredientAliasModel maps an alias spelling to a canonical ingredient
// token, unique on (canonical_name, alias) (spec.md §3/§6).
type IngredientAliasModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	CanonicalName string    `gorm:"column:canonical_name;type:varchar(255);uniqueIndex:idx_canonical_alias"`
	Alias         string    `gorm:"type:varchar(255);uniqueIndex:idx_canonical_alias"`
	Confidence    float64   `gorm:"default:1.0"`
	Source        string    `gorm:"type:varchar(20);default:'manual'"`
	CreatedAt     time.Time
}

func (IngredientAliasModel) TableName() string { return "ingredient_aliases" }

// AllModels lists every model AutoMigrate needs, in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&FoodItemModel{},
		&RecipeDependencyModel{},
		&RecipeDetailModel{},
		&SupplyModel{},
		&IngredientAliasModel{},
	}
}
