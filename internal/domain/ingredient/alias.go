// Package ingredient holds the alias record value object that backs the
// Ingredient Resolver.
package ingredient

import "time"

// Source identifies how an AliasRecord came to exist.
type Source string

const (
	SourceSeed       Source = "seed"
	SourceManual     Source = "manual"
	SourceAIGenerated Source = "ai_generated"
)

// AliasRecord maps one alias spelling to a canonical ingredient token.
// Uniquely keyed on (Canonical, Alias); a canonical is also stored as its
// own alias at confidence 1.0 so resolution lookups stay uniform (spec.md
// §3).
type AliasRecord struct {
	Canonical  string
	Alias      string
	Confidence float64
	Source     Source
	CreatedAt  time.Time
}
