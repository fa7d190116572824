package ingredient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainingredient "github.com/larderai/pantry/internal/domain/ingredient"
)

func TestHTTPService_Aliases_ExcludesSelfCanonicalEntry(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAliasRepo{}
	require.NoError(t, repo.Upsert(ctx, domainingredient.AliasRecord{
		Canonical: "tomato", Alias: "tomato", Confidence: 1.0, Source: domainingredient.SourceSeed,
	}))
	require.NoError(t, repo.Upsert(ctx, domainingredient.AliasRecord{
		Canonical: "tomato", Alias: "roma tomato", Confidence: 0.9, Source: domainingredient.SourceSeed,
	}))

	svc := NewHTTPService(NewResolver(repo, nil, zap.NewNop()), repo)

	aliases, err := svc.Aliases(ctx, "tomato")
	require.NoError(t, err)
	assert.Equal(t, []string{"roma tomato"}, aliases)
}
