// Package ingredient implements the Ingredient Resolver (IR): token →
// canonical token, backed by the RS alias table and augmented on demand by
// the LLM.
package ingredient

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	domainingredient "github.com/larderai/pantry/internal/domain/ingredient"
	"github.com/larderai/pantry/internal/ports/outbound"
)

// seedAliases is the fixed table seedCommonAliases upserts (spec.md §4.1).
var seedAliases = map[string][]string{
	"tomato":      {"tomatoes", "roma tomato", "cherry tomato"},
	"onion":       {"onions", "yellow onion", "white onion"},
	"bell pepper": {"bell peppers", "capsicum", "sweet pepper"},
	"potato":      {"potatoes", "spud"},
	"chicken":     {"chicken breast", "chicken thigh"},
	"beef":        {"ground beef", "beef chuck"},
	"garlic":      {"garlic clove", "garlic cloves"},
}

const generateAliasesPrompt = "You are a culinary expert. Given a single ingredient name, " +
	"return a JSON array of alternate spellings, abbreviations, and singular/plural variants " +
	"for that exact ingredient, excluding unrelated ingredients. Respond with only the JSON array."

// Resolver implements IR against an AliasRepository and an optional
// ChatClient for generateAliases.
type Resolver struct {
	aliases outbound.AliasRepository
	chat    outbound.ChatClient
	logger  *zap.Logger
}

func NewResolver(aliases outbound.AliasRepository, chat outbound.ChatClient, logger *zap.Logger) *Resolver {
	return &Resolver{aliases: aliases, chat: chat, logger: logger}
}

// Resolve maps a single token to its canonical form (spec.md §4.1).
// Precedence: self-canonical > highest-confidence alias (ties broken by
// recency) > the trimmed original.
func (r *Resolver) Resolve(ctx context.Context, token string) (string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return token, nil
	}
	lower := strings.ToLower(trimmed)

	isCanonical, err := r.aliases.IsCanonical(ctx, lower)
	if err != nil {
		return "", err
	}
	if isCanonical {
		return lower, nil
	}

	rec, err := r.aliases.FindCanonical(ctx, lower)
	if err != nil {
		return "", err
	}
	if rec != nil {
		return rec.Canonical, nil
	}

	return trimmed, nil
}

// ResolveAll resolves each token in order, preserving order (spec.md §4.1).
func (r *Resolver) ResolveAll(ctx context.Context, tokens []string) ([]string, error) {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		resolved, err := r.Resolve(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

// ResolveToSet returns deduplicated canonicals, merging back the original
// raw strings so exact pre-resolution matches remain matchable (spec.md
// §4.1 and §4.2's "belt-and-suspenders against alias-table drift").
func (r *Resolver) ResolveToSet(ctx context.Context, tokens []string) ([]string, error) {
	seen := make(map[string]bool, len(tokens)*2)
	out := make([]string, 0, len(tokens)*2)

	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	for _, t := range tokens {
		add(t)
		resolved, err := r.Resolve(ctx, t)
		if err != nil {
			return nil, err
		}
		add(resolved)
	}

	return out, nil
}

// AddAlias upserts a manual alias at confidence 1.0 (spec.md §4.1).
func (r *Resolver) AddAlias(ctx context.Context, canonical, alias string) error {
	canonical = strings.ToLower(strings.TrimSpace(canonical))
	alias = strings.ToLower(strings.TrimSpace(alias))
	return r.aliases.Upsert(ctx, domainingredient.AliasRecord{
		Canonical:  canonical,
		Alias:      alias,
		Confidence: 1.0,
		Source:     domainingredient.SourceManual,
	})
}

// GenerateAliases asks the LLM for variants of token, persists them at
// confidence 0.8 (ai_generated), self-inserts token at 1.0, and returns the
// generated list. Any failure is logged and yields an empty, non-fatal
// result (spec.md §4.1 — "failures are logged... not fatal").
func (r *Resolver) GenerateAliases(ctx context.Context, token string) ([]string, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, nil
	}

	if r.chat == nil || !r.chat.Available() {
		return nil, nil
	}

	raw, err := r.chat.Complete(ctx, generateAliasesPrompt, token)
	if err != nil {
		r.logger.Warn("generateAliases: chat completion failed", zap.Error(err), zap.String("token", token))
		return nil, nil
	}

	variants := parseAliasVariants(raw)

	filtered := make([]string, 0, len(variants))
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || v == token {
			continue
		}
		filtered = append(filtered, v)
	}

	records := make([]domainingredient.AliasRecord, 0, len(filtered)+1)
	records = append(records, domainingredient.AliasRecord{
		Canonical: token, Alias: token, Confidence: 1.0, Source: domainingredient.SourceAIGenerated,
	})
	for _, v := range filtered {
		records = append(records, domainingredient.AliasRecord{
			Canonical: token, Alias: v, Confidence: 0.8, Source: domainingredient.SourceAIGenerated,
		})
	}

	if err := r.aliases.UpsertBatch(ctx, records); err != nil {
		r.logger.Warn("generateAliases: persisting variants failed", zap.Error(err), zap.String("token", token))
		return nil, nil
	}

	return filtered, nil
}

// parseAliasVariants accepts either a bare JSON array or the first
// array-valued field of a JSON object, matching the teacher's defensive
// brace/bracket extraction idiom in ai/openai's parseRecipeResponse.
func parseAliasVariants(raw string) []string {
	raw = strings.TrimSpace(raw)

	var asArray []string
	if err := json.Unmarshal([]byte(raw), &asArray); err == nil {
		return asArray
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start != -1 && end != -1 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &asArray); err == nil {
			return asArray
		}
	}

	// Walk the object's fields in document order so the first array wins.
	dec := json.NewDecoder(strings.NewReader(raw))
	if tok, err := dec.Token(); err == nil && tok == json.Delim('{') {
		for dec.More() {
			if _, err := dec.Token(); err != nil {
				break
			}
			var v interface{}
			if err := dec.Decode(&v); err != nil {
				break
			}
			if arr, ok := v.([]interface{}); ok {
				out := make([]string, 0, len(arr))
				for _, item := range arr {
					if s, ok := item.(string); ok {
						out = append(out, s)
					}
				}
				return out
			}
		}
	}

	return nil
}

// SeedCommonAliases upserts the fixed seed table at confidence 0.9
// (spec.md §4.1).
func (r *Resolver) SeedCommonAliases(ctx context.Context) error {
	var records []domainingredient.AliasRecord
	for canonical, aliases := range seedAliases {
		records = append(records, domainingredient.AliasRecord{
			Canonical: canonical, Alias: canonical, Confidence: 1.0, Source: domainingredient.SourceSeed,
		})
		for _, alias := range aliases {
			records = append(records, domainingredient.AliasRecord{
				Canonical: canonical, Alias: alias, Confidence: 0.9, Source: domainingredient.SourceSeed,
			})
		}
	}
	return r.aliases.UpsertBatch(ctx, records)
}
