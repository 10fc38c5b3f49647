package domain

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Shopping cart not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be between 1 and 1000"}
)

// MaxLineQuantity caps the quantity of a single cart line, merges included.
const MaxLineQuantity int32 = 1000

// Cart is the read view of a user's shopping cart.
// Book titles are resolved at read time, not frozen.
type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	CartItems []CartLine `json:"cartItems"`
}

// CartLine is one (book, quantity) row of a cart.
type CartLine struct {
	ID        int64  `json:"id"`
	BookID    int64  `json:"bookId"`
	BookTitle string `json:"bookTitle"`
	Quantity  int32  `json:"quantity"`
}
