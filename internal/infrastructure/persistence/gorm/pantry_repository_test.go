package gorm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainpantry "github.com/larderai/pantry/internal/domain/pantry"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

func TestPantryRepository_UpsertBatchThenList_OrdersBySortOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewPantryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []domainpantry.Item{
		{Name: "milk", Quantity: 1, SortOrder: 1},
		{Name: "eggs", Quantity: 6, SortOrder: 0},
	}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "eggs", items[0].Name)
	assert.Equal(t, "milk", items[1].Name)
}

func TestPantryRepository_Upsert_OverwritesQuantityOnConflict(t *testing.T) {
	db := openTestDB(t)
	repo := NewPantryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domainpantry.Item{Name: "egg", Quantity: 2, SortOrder: 0}))
	require.NoError(t, repo.Upsert(ctx, domainpantry.Item{Name: "egg", Quantity: 5, SortOrder: 0}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestPantryRepository_UpdateOrder_RewritesSortOrderByPosition(t *testing.T) {
	db := openTestDB(t)
	repo := NewPantryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []domainpantry.Item{
		{Name: "egg", Quantity: 1, SortOrder: 0},
		{Name: "milk", Quantity: 1, SortOrder: 1},
	}))

	require.NoError(t, repo.UpdateOrder(ctx, []string{"milk", "egg"}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "milk", items[0].Name)
	assert.Equal(t, "egg", items[1].Name)
}

func TestPantryRepository_Delete_MissingReturnsNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewPantryRepository(db)

	err := repo.Delete(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))
}

func TestPantryRepository_Delete_RemovesItem(t *testing.T) {
	db := openTestDB(t)
	repo := NewPantryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domainpantry.Item{Name: "flour", Quantity: 1}))
	require.NoError(t, repo.Delete(ctx, "flour"))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
