package substitution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainpantry "github.com/larderai/pantry/internal/domain/pantry"
	domainrecipe "github.com/larderai/pantry/internal/domain/recipe"
	"github.com/larderai/pantry/internal/ports/outbound"
)

type stubRecipeRepo struct {
	recipes map[string]*domainrecipe.Recipe
}

func (s *stubRecipeRepo) Upsert(ctx context.Context, r *domainrecipe.Recipe) error { return nil }
func (s *stubRecipeRepo) Delete(ctx context.Context, name string) error            { return nil }
func (s *stubRecipeRepo) Get(ctx context.Context, name string) (*domainrecipe.Recipe, error) {
	return s.recipes[name], nil
}
func (s *stubRecipeRepo) List(ctx context.Context) (map[domainrecipe.CuisineType][]*domainrecipe.Recipe, error) {
	return nil, nil
}
func (s *stubRecipeRepo) ListAll(ctx context.Context) ([]*domainrecipe.Recipe, error) { return nil, nil }

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
	out := append([]string(nil), tokens...)
	return out, nil
}

type stubChatClient struct {
	response string
	err      error
}

func (s *stubChatClient) Embed(ctx context.Context, text string) ([]float64, bool) { return nil, false }
func (s *stubChatClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.response, s.err
}
func (s *stubChatClient) Available() bool { return true }

func TestMissing_ComputesCoveragePercent(t *testing.T) {
	r, err := domainrecipe.NewRecipe("omelette", []string{"egg", "milk"}, nil, domainrecipe.CuisineFrench, "", "")
	require.NoError(t, err)

	recipes := &stubRecipeRepo{recipes: map[string]*domainrecipe.Recipe{"omelette": r}}
	pantry := &stubPantryRepo{items: []domainpantry.Item{{Name: "egg"}}}

	svc := NewService(recipes, pantry, passthroughAliases{}, &stubChatClient{}, zap.NewNop())

	report, err := svc.Missing(context.Background(), "omelette")
	require.NoError(t, err)
	assert.Equal(t, []string{"milk"}, report.MissingIngredients)
	assert.Equal(t, 2, report.TotalRequired)
	assert.Equal(t, 50.0, report.CoveragePercent)
}

func TestMissing_RecipeNotFound(t *testing.T) {
	recipes := &stubRecipeRepo{recipes: map[string]*domainrecipe.Recipe{}}
	svc := NewService(recipes, &stubPantryRepo{}, passthroughAliases{}, &stubChatClient{}, zap.NewNop())

	_, err := svc.Missing(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSubstitutions_ParsesJSONArrayAndAnnotatesInFridge(t *testing.T) {
	r, err := domainrecipe.NewRecipe("omelette", []string{"egg", "milk"}, nil, domainrecipe.CuisineFrench, "", "")
	require.NoError(t, err)

	recipes := &stubRecipeRepo{recipes: map[string]*domainrecipe.Recipe{"omelette": r}}
	pantry := &stubPantryRepo{items: []domainpantry.Item{{Name: "egg"}, {Name: "cream"}}}
	chat := &stubChatClient{response: `[{"ingredient":"cream","confidence":0.8,"reasoning":"similar fat content"}]`}

	svc := NewService(recipes, pantry, passthroughAliases{}, chat, zap.NewNop())

	result, err := svc.Substitutions(context.Background(), "omelette")
	require.NoError(t, err)

	suggestions := result["milk"]
	require.Len(t, suggestions, 1)
	assert.Equal(t, "cream", suggestions[0].Ingredient)
	assert.True(t, suggestions[0].InFridge)
}

func TestSubstitutions_ChatFailure_YieldsEmptyNotError(t *testing.T) {
	r, err := domainrecipe.NewRecipe("omelette", []string{"egg", "milk"}, nil, domainrecipe.CuisineFrench, "", "")
	require.NoError(t, err)

	recipes := &stubRecipeRepo{recipes: map[string]*domainrecipe.Recipe{"omelette": r}}
	pantry := &stubPantryRepo{items: []domainpantry.Item{{Name: "egg"}}}
	chat := &stubChatClient{err: assertErr{}}

	svc := NewService(recipes, pantry, passthroughAliases{}, chat, zap.NewNop())

	result, err := svc.Substitutions(context.Background(), "omelette")
	require.NoError(t, err)
	assert.Empty(t, result["milk"])
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

var _ outbound.ChatClient = (*stubChatClient)(nil)
