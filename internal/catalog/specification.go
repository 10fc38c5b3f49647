// Package catalog builds composable book search predicates.
//
// A Specification renders to a goqu expression for the SQL store and can be
// evaluated in memory against a single book with identical semantics.
package catalog

import (
	"slices"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/shelf/internal/domain"
)

const (
	colAuthor = "author"
	colPrice  = "price"
)

// Specification is a filter condition over the book collection.
type Specification interface {
	// Expression returns the WHERE fragment for the books table.
	Expression() exp.Expression

	// IsSatisfiedBy evaluates the condition against one book.
	IsSatisfiedBy(book domain.Book) bool
}

// All matches every book.
func All() Specification {
	return matchAll{}
}

// And combines specifications with logical AND. With no arguments it matches everything.
func And(specs ...Specification) Specification {
	parts := make([]Specification, 0, len(specs))
	for _, s := range specs {
		if s == nil {
			continue
		}
		if _, ok := s.(matchAll); ok {
			continue
		}
		parts = append(parts, s)
	}

	switch len(parts) {
	case 0:
		return matchAll{}
	case 1:
		return parts[0]
	}
	return conjunction(parts)
}

// AuthorIn matches books whose author is one of authors.
func AuthorIn(authors ...string) Specification {
	return authorIn(slices.Clone(authors))
}

// PriceBetween matches books priced within [low, high], bounds inclusive.
func PriceBetween(low, high decimal.Decimal) Specification {
	return priceBetween{low: low, high: high}
}

type matchAll struct{}

func (matchAll) Expression() exp.Expression { return goqu.L("TRUE") }

func (matchAll) IsSatisfiedBy(domain.Book) bool { return true }

type conjunction []Specification

func (c conjunction) Expression() exp.Expression {
	exps := make([]exp.Expression, len(c))
	for i, s := range c {
		exps[i] = s.Expression()
	}
	return goqu.And(exps...)
}

func (c conjunction) IsSatisfiedBy(book domain.Book) bool {
	for _, s := range c {
		if !s.IsSatisfiedBy(book) {
			return false
		}
	}
	return true
}

type authorIn []string

func (a authorIn) Expression() exp.Expression {
	return goqu.C(colAuthor).In([]string(a))
}

func (a authorIn) IsSatisfiedBy(book domain.Book) bool {
	return slices.Contains(a, book.Author)
}

type priceBetween struct {
	low, high decimal.Decimal
}

// Bounds are rendered as string literals; postgres coerces them to numeric
// without a float round trip.
func (p priceBetween) Expression() exp.Expression {
	return goqu.C(colPrice).Between(goqu.Range(p.low.String(), p.high.String()))
}

func (p priceBetween) IsSatisfiedBy(book domain.Book) bool {
	return book.Price.GreaterThanOrEqual(p.low) && book.Price.LessThanOrEqual(p.high)
}
