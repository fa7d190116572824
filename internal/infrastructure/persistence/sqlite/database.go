// Package sqlite provides SQLite database setup and seeding. Only this
// package's own tests call it: the container opens SQLite directly for local
// development, and the gorm persistence package's tests open their own
// in-memory database. Postgres is the production driver
// (config.DatabaseConfig.Driver).
package sqlite

import (
	"fmt"

	gormModels "github.com/larderai/pantry/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase creates and configures the SQLite database.
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates an empty database with a small illustrative
// corpus, skipped if any recipe already exists.
func SeedDatabase(db *gorm.DB) error {
	var count int64
	db.Model(&gormModels.RecipeDetailModel{}).Count(&count)
	if count > 0 {
		return nil
	}

	foodItems := []gormModels.FoodItemModel{
		{Name: "spaghetti_carbonara"}, {Name: "spaghetti"}, {Name: "eggs"}, {Name: "pancetta"},
		{Name: "pecorino_romano"}, {Name: "black_pepper"}, {Name: "salt"},
		{Name: "buddha_bowl"}, {Name: "quinoa"}, {Name: "sweet_potato"}, {Name: "chickpeas"},
		{Name: "avocado"}, {Name: "tahini"}, {Name: "lemon_juice"},
	}
	if err := db.Create(&foodItems).Error; err != nil {
		return fmt.Errorf("failed to seed food items: %w", err)
	}

	details := []gormModels.RecipeDetailModel{
		{
			RecipeName:   "spaghetti_carbonara",
			CuisineType:  "italian",
			Instructions: "Boil spaghetti. Cook pancetta until crispy. Whisk eggs with pecorino. Toss pasta with pancetta and egg mixture off heat.",
		},
		{
			RecipeName:   "buddha_bowl",
			CuisineType:  "american",
			Instructions: "Cook quinoa. Roast sweet potato and chickpeas. Whisk tahini with lemon juice and water. Assemble bowl.",
		},
	}
	if err := db.Create(&details).Error; err != nil {
		return fmt.Errorf("failed to seed recipe details: %w", err)
	}

	deps := []gormModels.RecipeDependencyModel{
		{RecipeName: "spaghetti_carbonara", IngredientName: "spaghetti"},
		{RecipeName: "spaghetti_carbonara", IngredientName: "eggs"},
		{RecipeName: "spaghetti_carbonara", IngredientName: "pancetta"},
		{RecipeName: "spaghetti_carbonara", IngredientName: "pecorino_romano"},
		{RecipeName: "spaghetti_carbonara", IngredientName: "black_pepper", IsSeasoning: true},
		{RecipeName: "spaghetti_carbonara", IngredientName: "salt", IsSeasoning: true},
		{RecipeName: "buddha_bowl", IngredientName: "quinoa"},
		{RecipeName: "buddha_bowl", IngredientName: "sweet_potato"},
		{RecipeName: "buddha_bowl", IngredientName: "chickpeas"},
		{RecipeName: "buddha_bowl", IngredientName: "avocado"},
		{RecipeName: "buddha_bowl", IngredientName: "tahini"},
		{RecipeName: "buddha_bowl", IngredientName: "lemon_juice"},
		{RecipeName: "buddha_bowl", IngredientName: "salt", IsSeasoning: true},
	}
	if err := db.Create(&deps).Error; err != nil {
		return fmt.Errorf("failed to seed recipe dependencies: %w", err)
	}

	supplies := []gormModels.SupplyModel{
		{Name: "eggs", Quantity: 6, SortOrder: 0},
		{Name: "salt", Quantity: 1, SortOrder: 1},
		{Name: "quinoa", Quantity: 1, SortOrder: 2},
	}
	if err := db.Create(&supplies).Error; err != nil {
		return fmt.Errorf("failed to seed supplies: %w", err)
	}

	return nil
}
