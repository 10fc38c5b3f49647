package catalog

import (
	"fmt"

	"github.com/dukerupert/shelf/internal/domain"
)

// Builder turns BookSearchParameters into a single Specification.
type Builder struct {
	registry *Registry
}

// NewBookSpecificationBuilder returns a builder backed by reg. It fails fast when a
// key the builder depends on has no provider, so a lookup can never fail per request.
func NewBookSpecificationBuilder(reg *Registry) (*Builder, error) {
	for _, key := range []string{KeyAuthor, KeyPrice} {
		if _, err := reg.Provider(key); err != nil {
			return nil, fmt.Errorf("book specification builder: %w", err)
		}
	}
	return &Builder{registry: reg}, nil
}

// Build returns the AND of every criterion present in params.
// Absent criteria are skipped; with none present the result matches all books.
func (b *Builder) Build(params domain.BookSearchParameters) (Specification, error) {
	criteria := []struct {
		key    string
		tokens []string
	}{
		{KeyAuthor, params.Authors},
		{KeyPrice, params.Prices},
	}

	specs := make([]Specification, 0, len(criteria))
	for _, c := range criteria {
		if len(c.tokens) == 0 {
			continue
		}
		provider, err := b.registry.Provider(c.key)
		if err != nil {
			return nil, err
		}
		spec, err := provider(c.tokens)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	return And(specs...), nil
}
