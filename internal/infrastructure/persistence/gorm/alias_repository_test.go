package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainingredient "github.com/larderai/pantry/internal/domain/ingredient"
)

func TestAliasRepository_FindCanonical_PrefersHighestConfidence(t *testing.T) {
	db := openTestDB(t)
	repo := NewAliasRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domainingredient.AliasRecord{
		Canonical: "scallion", Alias: "green_onion", Confidence: 0.6, Source: domainingredient.SourceAIGenerated, CreatedAt: time.Unix(1, 0),
	}))
	require.NoError(t, repo.Upsert(ctx, domainingredient.AliasRecord{
		Canonical: "spring_onion", Alias: "green_onion", Confidence: 0.9, Source: domainingredient.SourceManual, CreatedAt: time.Unix(2, 0),
	}))

	rec, err := repo.FindCanonical(ctx, "green_onion")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "spring_onion", rec.Canonical)
}

func TestAliasRepository_FindCanonical_MissingReturnsNilNil(t *testing.T) {
	db := openTestDB(t)
	repo := NewAliasRepository(db)

	rec, err := repo.FindCanonical(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestAliasRepository_IsCanonical_TrueForSelfAliasedToken(t *testing.T) {
	db := openTestDB(t)
	repo := NewAliasRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domainingredient.AliasRecord{
		Canonical: "egg", Alias: "egg", Confidence: 1.0, Source: domainingredient.SourceSeed,
	}))

	ok, err := repo.IsCanonical(ctx, "egg")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsCanonical(ctx, "eggs")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAliasRepository_UpsertBatchThenListForCanonical(t *testing.T) {
	db := openTestDB(t)
	repo := NewAliasRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []domainingredient.AliasRecord{
		{Canonical: "tomato", Alias: "tomato", Confidence: 1.0, Source: domainingredient.SourceSeed},
		{Canonical: "tomato", Alias: "tomatoes", Confidence: 0.95, Source: domainingredient.SourceAIGenerated},
	}))

	recs, err := repo.ListForCanonical(ctx, "tomato")
	require.NoError(t, err)
	require.Len(t, recs, 2)
}

func TestAliasRepository_Upsert_OverwritesOnConflict(t *testing.T) {
	db := openTestDB(t)
	repo := NewAliasRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domainingredient.AliasRecord{
		Canonical: "cilantro", Alias: "coriander_leaf", Confidence: 0.5, Source: domainingredient.SourceAIGenerated,
	}))
	require.NoError(t, repo.Upsert(ctx, domainingredient.AliasRecord{
		Canonical: "cilantro", Alias: "coriander_leaf", Confidence: 1.0, Source: domainingredient.SourceManual,
	}))

	recs, err := repo.ListForCanonical(ctx, "cilantro")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1.0, recs[0].Confidence)
}
