package domain

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CATALOG DOMAIN ERRORS
// =============================================================================

var (
	ErrBookNotFound     = &Error{Code: ENOTFOUND, Message: "Book not found"}
	ErrCategoryNotFound = &Error{Code: ENOTFOUND, Message: "Category not found"}
	ErrDuplicateISBN    = &Error{Code: EINVALID, Message: "ISBN is already registered"}
	ErrNegativePrice    = &Error{Code: EINVALID, Message: "Price must not be negative"}
	ErrPriceOutOfRange  = &Error{Code: EINVALID, Message: "Price must not exceed 9999999999.99 or have more than two decimals"}

	// ErrSearchParse is returned for malformed search tokens (bad price bounds).
	ErrSearchParse = &Error{Code: EINVALID, Message: "Malformed search parameters"}

	// ErrSpecificationProvider means a filter key has no registered provider.
	// It is a wiring bug, never a user input problem.
	ErrSpecificationProvider = &Error{Code: EINTERNAL, Message: "No specification provider registered"}
)

// PriceScale is the number of decimals a book price may carry.
const PriceScale = 2

// MaxPrice is the largest book price the catalog stores (NUMERIC(12,2)).
var MaxPrice = decimal.RequireFromString("9999999999.99")

// CheckPrice returns ErrNegativePrice or ErrPriceOutOfRange for a price the
// catalog cannot store, nil otherwise.
func CheckPrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return ErrNegativePrice
	case price.GreaterThan(MaxPrice), !price.Equal(price.Truncate(PriceScale)):
		return ErrPriceOutOfRange
	}
	return nil
}

// Book is a catalog entry. CategoryIDs is always loaded together with the book.
type Book struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CoverImage  string          `json:"coverImage"`
	CategoryIDs []int64         `json:"categoryIds"`
}

// Category groups books. Deleting a category hides it and drops it from
// every book's CategoryIDs; the books themselves stay.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BookSearchParameters is the transient query descriptor for catalog search.
// Prices holds the raw [low, high] tokens exactly as received.
type BookSearchParameters struct {
	Authors []string
	Prices  []string
}

// CategoryInput carries the fields for creating or replacing a category.
type CategoryInput struct {
	Name        string
	Description string
}

// BookInput carries the fields for creating or replacing a book.
type BookInput struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []int64
}
