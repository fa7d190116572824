// Package sparse implements the Sparse Embedder (SE): a local tokenizer and
// hash-bucketed bag-of-words vocabulary. No external dependency beyond the
// hash function itself — xxhash, already present transitively via the
// pack's Redis/GORM stack, gives a fast, stable, non-cryptographic bucket
// hash for this bag-of-words surrogate (spec.md §4.4).
package sparse

import (
	"sort"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"

	"github.com/larderai/pantry/internal/ports/outbound"
)

// VocabularySize bounds every hashed index (spec.md §4.4).
const VocabularySize = 100000

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "of": true,
	"in": true, "on": true, "for": true, "to": true, "with": true, "is": true,
	"it": true, "this": true, "that": true, "as": true, "at": true, "by": true,
	"be": true, "are": true, "was": true, "were": true, "from": true,
}

// Tokenize lowercases, splits on any run of non-alphanumeric characters
// (retaining CJK ranges), and drops tokens shorter than 2 bytes (so a
// single CJK character, 3 bytes in UTF-8, is kept) or in the stop-word set. No stemming is performed (spec.md §4.4).
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		tok := current.String()
		current.Reset()
		if len(tok) < 2 || stopWords[tok] {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || isCJK(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// bucket hashes a token into [0, VocabularySize) using xxhash, accepting
// collisions as the bag-of-words tradeoff spec.md §4.4 calls for.
func bucket(token string) uint32 {
	return uint32(xxhash.Sum64String(token) % VocabularySize)
}

// SparseFromIngredients builds a query-side sparse vector where every
// ingredient token contributes weight +1.0 (spec.md §4.4).
func SparseFromIngredients(ingredients []string) outbound.SparseVector {
	weights := make(map[uint32]float64)
	for _, ing := range ingredients {
		for _, tok := range Tokenize(ing) {
			weights[bucket(tok)] += 1.0
		}
	}
	return toSparseVector(weights)
}

// SparseFromRecipe builds a recipe-side sparse vector with the weighting
// scheme spec.md §4.4 specifies: name tokens +2.0, cuisine tokens +1.5,
// ingredient tokens +1.0, duplicates accumulating.
func SparseFromRecipe(name string, ingredients []string, cuisine string) outbound.SparseVector {
	weights := make(map[uint32]float64)

	for _, tok := range Tokenize(name) {
		weights[bucket(tok)] += 2.0
	}
	for _, tok := range Tokenize(cuisine) {
		weights[bucket(tok)] += 1.5
	}
	for _, ing := range ingredients {
		for _, tok := range Tokenize(ing) {
			weights[bucket(tok)] += 1.0
		}
	}

	return toSparseVector(weights)
}

func toSparseVector(weights map[uint32]float64) outbound.SparseVector {
	indices := make([]uint32, 0, len(weights))
	for idx := range weights {
		indices = append(indices, idx)
	}
	// Deterministic ordering keeps payloads stable across calls, which
	// matters for the cache-round-trip invariant (spec.md §8, invariant 7).
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = weights[idx]
	}

	return outbound.SparseVector{Indices: indices, Values: values}
}
