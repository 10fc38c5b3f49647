package domain

import "slices"

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

var (
	ErrUserNotFound       = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrEmailTaken         = &Error{Code: ECONFLICT, Message: "Email is already registered"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid email or password"}
)

// User is a registered customer or administrator.
type User struct {
	ID              int64    `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	ShippingAddress string   `json:"shippingAddress"`
	Roles           []string `json:"-"`
}

// RegistrationInput carries the fields needed to register a user.
type RegistrationInput struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	ShippingAddress string
}

// Principal is the authenticated identity supplied by the auth boundary.
// The email is trusted as-is by every cart and order operation.
type Principal struct {
	Email string
	Roles []string
}

// HasRole reports whether the principal carries role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}
