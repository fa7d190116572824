package cookability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_BasicKahnCookability(t *testing.T) {
	// S1
	recipes := []Recipe{
		{Name: "sandwich", Ingredients: []string{"bread", "ham"}},
		{Name: "burger", Ingredients: []string{"bread", "meat", "sandwich"}},
	}
	pantry := []string{"bread", "ham", "meat"}

	made := Resolve(pantry, recipes)

	assert.Equal(t, []string{"sandwich", "burger"}, made)
}

func TestResolve_MissingIngredient(t *testing.T) {
	// S2
	recipes := []Recipe{
		{Name: "omelette", Ingredients: []string{"egg", "milk"}},
	}
	pantry := []string{"egg"}

	made := Resolve(pantry, recipes)

	assert.Empty(t, made)
}

func TestResolve_SeasoningsExcludedByCaller(t *testing.T) {
	// S3 — caller is responsible for excluding seasonings before calling Resolve.
	recipes := []Recipe{
		{Name: "carbonara", Ingredients: []string{"pasta", "egg", "pancetta"}},
	}
	pantry := []string{"pasta", "egg", "pancetta"}

	made := Resolve(pantry, recipes)

	assert.Equal(t, []string{"carbonara"}, made)
}

func TestResolve_EmptyInputsReturnEmpty(t *testing.T) {
	assert.Empty(t, Resolve(nil, []Recipe{{Name: "x", Ingredients: []string{"y"}}}))
	assert.Empty(t, Resolve([]string{"y"}, nil))
}

func TestResolve_DuplicateRecipeNamesMerge(t *testing.T) {
	recipes := []Recipe{
		{Name: "soup", Ingredients: []string{"broth"}},
		{Name: "soup", Ingredients: []string{"noodles"}},
	}
	pantry := []string{"broth", "noodles"}

	made := Resolve(pantry, recipes)

	assert.Equal(t, []string{"soup"}, made)
}

func TestResolve_SelfReferentialRecipeNeverEmitted(t *testing.T) {
	recipes := []Recipe{
		{Name: "stew", Ingredients: []string{"stew", "carrot"}},
	}
	pantry := []string{"carrot"}

	made := Resolve(pantry, recipes)

	assert.Empty(t, made)
}

func TestResolve_SeasoningAdditionNeverChangesCookability(t *testing.T) {
	// Invariant 6: Recipe has no seasoning field, so seasonings never reach
	// Resolve. The carbonara below lists only its non-seasoning ingredients
	// and is cookable from a pantry that holds no seasoning at all.
	withoutSeasoning := []Recipe{{Name: "carbonara", Ingredients: []string{"pasta", "egg"}}}
	pantry := []string{"pasta", "egg"}

	made := Resolve(pantry, withoutSeasoning)

	require.Equal(t, []string{"carbonara"}, made)
}

func TestAlmostCookable_MissingWithinBound(t *testing.T) {
	recipes := []Recipe{
		{Name: "omelette", Ingredients: []string{"egg", "milk"}},
		{Name: "pancakes", Ingredients: []string{"flour", "milk", "egg", "sugar", "butter", "salt"}},
	}
	pantry := []string{"egg"}

	result, err := AlmostCookable(pantry, recipes, 1)

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"omelette": {"milk"}}, result)
}

func TestAlmostCookable_IncludesFullyCookableRecipes(t *testing.T) {
	recipes := []Recipe{
		{Name: "toast", Ingredients: []string{"bread"}},
	}
	pantry := []string{"bread"}

	result, err := AlmostCookable(pantry, recipes, 1)

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"toast": nil}, result)
}

func TestAlmostCookable_RejectsOutOfRangeBound(t *testing.T) {
	_, err := AlmostCookable(nil, nil, 0)
	assert.ErrorIs(t, err, ErrMaxMissingOutOfRange)

	_, err = AlmostCookable(nil, nil, 6)
	assert.ErrorIs(t, err, ErrMaxMissingOutOfRange)
}
