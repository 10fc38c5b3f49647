package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/shelf/internal/domain"
)

// Filter keys understood by the default registry.
const (
	KeyAuthor = "author"
	KeyPrice  = "price"
)

// ProviderFunc turns the raw string tokens of one criterion into a Specification.
type ProviderFunc func(params []string) (Specification, error)

// Provider binds a filter key to the function that builds its predicate.
type Provider struct {
	Key   string
	Build ProviderFunc
}

// Registry is a static mapping from filter key to provider, fixed at startup.
type Registry struct {
	providers map[string]ProviderFunc
}

// NewRegistry creates a registry. Keys must be unique and non-empty.
func NewRegistry(providers ...Provider) (*Registry, error) {
	m := make(map[string]ProviderFunc, len(providers))
	for _, p := range providers {
		if p.Key == "" || p.Build == nil {
			return nil, fmt.Errorf("catalog: invalid provider %q", p.Key)
		}
		if _, dup := m[p.Key]; dup {
			return nil, fmt.Errorf("catalog: duplicate provider for key %q", p.Key)
		}
		m[p.Key] = p.Build
	}
	return &Registry{providers: m}, nil
}

// DefaultProviders returns the author and price providers.
func DefaultProviders() []Provider {
	return []Provider{
		{Key: KeyAuthor, Build: authorProvider},
		{Key: KeyPrice, Build: priceProvider},
	}
}

// Provider looks up the provider for key. An unknown key is a wiring bug and
// yields ErrSpecificationProvider.
func (r *Registry) Provider(key string) (ProviderFunc, error) {
	p, ok := r.providers[key]
	if !ok {
		return nil, domain.WrapError(domain.ErrSpecificationProvider, domain.EINTERNAL, "catalog.provider",
			fmt.Sprintf("Cannot find specification provider for key %q", key))
	}
	return p, nil
}

func authorProvider(params []string) (Specification, error) {
	authors := make([]string, 0, len(params))
	for _, a := range params {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	if len(authors) == 0 {
		return All(), nil
	}
	return AuthorIn(authors...), nil
}

func priceProvider(params []string) (Specification, error) {
	low, high, err := ParsePriceRange(params)
	if err != nil {
		return nil, err
	}
	return PriceBetween(low, high), nil
}

// ParsePriceRange parses the two positional [low, high] tokens of a price filter.
func ParsePriceRange(tokens []string) (decimal.Decimal, decimal.Decimal, error) {
	const op = "catalog.parse_price"

	if len(tokens) != 2 {
		return decimal.Zero, decimal.Zero, domain.WrapError(domain.ErrSearchParse, domain.EINVALID, op,
			fmt.Sprintf("price filter needs exactly two values [low, high], got %d", len(tokens)))
	}

	low, err := decimal.NewFromString(strings.TrimSpace(tokens[0]))
	if err != nil {
		return decimal.Zero, decimal.Zero, domain.WrapError(domain.ErrSearchParse, domain.EINVALID, op,
			fmt.Sprintf("invalid lower price bound %q", tokens[0]))
	}
	high, err := decimal.NewFromString(strings.TrimSpace(tokens[1]))
	if err != nil {
		return decimal.Zero, decimal.Zero, domain.WrapError(domain.ErrSearchParse, domain.EINVALID, op,
			fmt.Sprintf("invalid upper price bound %q", tokens[1]))
	}
	if low.GreaterThan(high) {
		return decimal.Zero, decimal.Zero, domain.WrapError(domain.ErrSearchParse, domain.EINVALID, op,
			fmt.Sprintf("lower price bound %s exceeds upper bound %s", low, high))
	}

	return low, high, nil
}
