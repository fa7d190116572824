package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_DropsShortTokensAndStopWords(t *testing.T) {
	got := Tokenize("A Roma Tomato, diced, is on the table")
	assert.NotContains(t, got, "a")
	assert.NotContains(t, got, "is")
	assert.NotContains(t, got, "on")
	assert.NotContains(t, got, "the")
	assert.Contains(t, got, "roma")
	assert.Contains(t, got, "tomato")
	assert.Contains(t, got, "diced")
	assert.Contains(t, got, "table")
}

func TestTokenize_RetainsCJK(t *testing.T) {
	got := Tokenize("麻婆豆腐 tofu")
	assert.Contains(t, got, "麻婆豆腐")
	assert.Contains(t, got, "tofu")
}

func TestSparseFromIngredients_UniformWeight(t *testing.T) {
	vec := SparseFromIngredients([]string{"tomato", "onion"})
	require.Len(t, vec.Indices, len(vec.Values))
	for _, v := range vec.Values {
		assert.Equal(t, 1.0, v)
	}
}

func TestSparseFromRecipe_WeightsByField(t *testing.T) {
	vec := SparseFromRecipe("Tomato Soup", []string{"tomato", "basil"}, "italian")
	byIndex := make(map[uint32]float64, len(vec.Indices))
	for i, idx := range vec.Indices {
		byIndex[idx] = vec.Values[i]
	}

	// "tomato" appears in both the name (+2.0) and ingredients (+1.0).
	assert.Equal(t, 3.0, byIndex[bucket("tomato")])
	assert.Equal(t, 2.0, byIndex[bucket("soup")])
	assert.Equal(t, 1.5, byIndex[bucket("italian")])
	assert.Equal(t, 1.0, byIndex[bucket("basil")])
}

func TestSparseFromRecipe_IndicesAreSortedAndDeterministic(t *testing.T) {
	first := SparseFromRecipe("Tomato Soup", []string{"tomato", "basil"}, "italian")
	second := SparseFromRecipe("Tomato Soup", []string{"tomato", "basil"}, "italian")

	assert.Equal(t, first, second)
	for i := 1; i < len(first.Indices); i++ {
		assert.Less(t, first.Indices[i-1], first.Indices[i])
	}
}
