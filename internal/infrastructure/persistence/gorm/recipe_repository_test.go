package gorm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/larderai/pantry/internal/domain/recipe"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(AllModels()...))
	return db
}

func TestRecipeRepository_UpsertThenGet_RoundTrips(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db, zap.NewNop())
	ctx := context.Background()

	rec, err := recipe.NewRecipe("spaghetti_carbonara", []string{"spaghetti", "eggs", "pancetta"}, []string{"salt"}, recipe.CuisineItalian, "boil, fry, toss", "")
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.Get(ctx, "spaghetti_carbonara")
	require.NoError(t, err)
	assert.Equal(t, "spaghetti_carbonara", got.Name)
	assert.ElementsMatch(t, []string{"spaghetti", "eggs", "pancetta"}, got.Ingredients)
	assert.ElementsMatch(t, []string{"salt"}, got.Seasonings)
	assert.Equal(t, recipe.CuisineItalian, got.Cuisine)
}

func TestRecipeRepository_Upsert_ReplacesDependenciesOnReindex(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db, zap.NewNop())
	ctx := context.Background()

	first, err := recipe.NewRecipe("soup", []string{"carrot", "onion"}, nil, recipe.CuisineFrench, "simmer", "")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, first))

	second, err := recipe.NewRecipe("soup", []string{"carrot", "leek"}, []string{"pepper"}, recipe.CuisineFrench, "simmer longer", "")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.Get(ctx, "soup")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"carrot", "leek"}, got.Ingredients)
	assert.ElementsMatch(t, []string{"pepper"}, got.Seasonings)
	assert.Equal(t, "simmer longer", got.Instructions)
}

func TestRecipeRepository_Get_MissingReturnsNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db, zap.NewNop())

	_, err := repo.Get(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))
}

func TestRecipeRepository_Delete_RemovesDetailAndDependencies(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db, zap.NewNop())
	ctx := context.Background()

	rec, err := recipe.NewRecipe("toast", []string{"bread"}, nil, recipe.CuisineAmerican, "toast it", "")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, rec))

	require.NoError(t, repo.Delete(ctx, "toast"))

	_, err = repo.Get(ctx, "toast")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))
}

func TestRecipeRepository_Delete_MissingReturnsNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db, zap.NewNop())

	err := repo.Delete(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))
}

func TestRecipeRepository_List_GroupsByCuisine(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db, zap.NewNop())
	ctx := context.Background()

	italian, err := recipe.NewRecipe("carbonara", []string{"pasta"}, nil, recipe.CuisineItalian, "cook", "")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, italian))

	american, err := recipe.NewRecipe("burger", []string{"beef"}, nil, recipe.CuisineAmerican, "grill", "")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, american))

	grouped, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, grouped[recipe.CuisineItalian], 1)
	require.Len(t, grouped[recipe.CuisineAmerican], 1)
	assert.Equal(t, "carbonara", grouped[recipe.CuisineItalian][0].Name)
}

func TestRecipeRepository_ListAll_SkipsMalformedRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db, zap.NewNop())
	ctx := context.Background()

	good, err := recipe.NewRecipe("salad", []string{"lettuce"}, nil, recipe.CuisineOther, "toss", "")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, good))

	// A detail row with no ingredients fails NewRecipe's validation and must
	// be skipped rather than aborting the whole listing.
	require.NoError(t, db.Create(&RecipeDetailModel{RecipeName: "empty", CuisineType: "OTHER"}).Error)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "salad", all[0].Name)
}
