package cookability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainpantry "github.com/larderai/pantry/internal/domain/pantry"
	domainrecipe "github.com/larderai/pantry/internal/domain/recipe"
)

type stubRecipeRepo struct {
	all []*domainrecipe.Recipe
}

func (s *stubRecipeRepo) Upsert(ctx context.Context, r *domainrecipe.Recipe) error { return nil }
func (s *stubRecipeRepo) Delete(ctx context.Context, name string) error            { return nil }
func (s *stubRecipeRepo) Get(ctx context.Context, name string) (*domainrecipe.Recipe, error) {
	return nil, nil
}
func (s *stubRecipeRepo) List(ctx context.Context) (map[domainrecipe.CuisineType][]*domainrecipe.Recipe, error) {
	return nil, nil
}
func (s *stubRecipeRepo) ListAll(ctx context.Context) ([]*domainrecipe.Recipe, error) {
	return s.all, nil
}

type stubPantryRepo struct {
	items []domainpantry.Item
}

func (s *stubPantryRepo) List(ctx context.Context) ([]domainpantry.Item, error) { return s.items, nil }
func (s *stubPantryRepo) Upsert(ctx context.Context, item domainpantry.Item) error { return nil }
func (s *stubPantryRepo) UpsertBatch(ctx context.Context, items []domainpantry.Item) error {
	return nil
}
func (s *stubPantryRepo) UpdateOrder(ctx context.Context, orderedNames []string) error { return nil }
func (s *stubPantryRepo) Delete(ctx context.Context, name string) error               { return nil }

type passthroughAliases struct{}

func (passthroughAliases) ResolveToSet(ctx context.Context, tokens []string) ([]string, error) {
	return tokens, nil
}

func recipeFor(t *testing.T, name string, ingredients []string) *domainrecipe.Recipe {
	t.Helper()
	r, err := domainrecipe.NewRecipe(name, ingredients, nil, domainrecipe.CuisineOther, "", "")
	require.NoError(t, err)
	return r
}

func TestService_Made_UsesLiveRSAndPantry(t *testing.T) {
	recipes := &stubRecipeRepo{all: []*domainrecipe.Recipe{
		recipeFor(t, "sandwich", []string{"bread", "ham"}),
	}}
	pantryRepo := &stubPantryRepo{items: []domainpantry.Item{{Name: "bread"}, {Name: "ham"}}}

	svc := NewService(recipes, pantryRepo, passthroughAliases{}, zap.NewNop())

	made, err := svc.Made(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"sandwich"}, made)
}

func TestService_Simulate_RejectsMismatchedLengths(t *testing.T) {
	svc := NewService(&stubRecipeRepo{}, &stubPantryRepo{}, passthroughAliases{}, zap.NewNop())

	_, err := svc.Simulate(context.Background(), []string{"a", "b"}, [][]string{{"x"}}, nil)
	assert.Error(t, err)
}

func TestService_Simulate_DoesNotTouchRS(t *testing.T) {
	svc := NewService(&stubRecipeRepo{}, &stubPantryRepo{}, passthroughAliases{}, zap.NewNop())

	made, err := svc.Simulate(context.Background(), []string{"sandwich"}, [][]string{{"bread", "ham"}}, []string{"bread", "ham"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sandwich"}, made)
}

func TestService_AlmostCookable_DelegatesToPureFunction(t *testing.T) {
	recipes := &stubRecipeRepo{all: []*domainrecipe.Recipe{
		recipeFor(t, "omelette", []string{"egg", "milk"}),
	}}
	pantryRepo := &stubPantryRepo{items: []domainpantry.Item{{Name: "egg"}}}

	svc := NewService(recipes, pantryRepo, passthroughAliases{}, zap.NewNop())

	result, err := svc.AlmostCookable(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"omelette": {"milk"}}, result)
}
