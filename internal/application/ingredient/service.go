package ingredient

import (
	"context"

	"github.com/larderai/pantry/internal/ports/outbound"
)

// HTTPService adapts Resolver to inbound.IngredientService's HTTP-facing
// shape: plain string slices rather than domain AliasRecords.
type HTTPService struct {
	resolver *Resolver
	aliases  outbound.AliasRepository
}

func NewHTTPService(resolver *Resolver, aliases outbound.AliasRepository) *HTTPService {
	return &HTTPService{resolver: resolver, aliases: aliases}
}

func (s *HTTPService) Resolve(ctx context.Context, token string) (string, error) {
	return s.resolver.Resolve(ctx, token)
}

func (s *HTTPService) Aliases(ctx context.Context, canonical string) ([]string, error) {
	records, err := s.aliases.ListForCanonical(ctx, canonical)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Alias == rec.Canonical {
			continue
		}
		out = append(out, rec.Alias)
	}
	return out, nil
}

func (s *HTTPService) AddAlias(ctx context.Context, canonical, alias string) error {
	return s.resolver.AddAlias(ctx, canonical, alias)
}

func (s *HTTPService) GenerateAliases(ctx context.Context, token string) ([]string, error) {
	return s.resolver.GenerateAliases(ctx, token)
}

func (s *HTTPService) SeedCommonAliases(ctx context.Context) error {
	return s.resolver.SeedCommonAliases(ctx)
}
