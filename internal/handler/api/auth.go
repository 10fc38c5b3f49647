// Package api holds the JSON handlers of the bookstore HTTP API.
package api

import (
	"net/http"
	"time"

	"github.com/dukerupert/shelf/internal/domain"
	"github.com/dukerupert/shelf/internal/handler"
	"github.com/dukerupert/shelf/internal/service"
)

// TokenIssuer signs access tokens for authenticated principals.
type TokenIssuer interface {
	Issue(p domain.Principal) (string, time.Time, error)
}

// AuthHandler handles registration and login.
type AuthHandler struct {
	users  service.UserService
	tokens TokenIssuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users service.UserService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
	}
}

type registrationRequest struct {
	Email           string `json:"email" validate:"required,email,max=64"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	RepeatPassword  string `json:"repeatPassword" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"required,max=50"`
	LastName        string `json:"lastName" validate:"required,max=50"`
	ShippingAddress string `json:"shippingAddress" validate:"omitempty,max=255"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Register handles POST /auth/registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := handler.DecodeJSON(r, "auth.register", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), domain.RegistrationInput{
		Email:           req.Email,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := handler.DecodeJSON(r, "auth.login", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	principal, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(*principal)
	if err != nil {
		handler.InternalErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}

// principalEmail returns the authenticated caller's email.
// Routes using it sit behind RequireAuth.
func principalEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	p := domain.PrincipalFromContext(r.Context())
	if p == nil {
		handler.UnauthorizedResponse(w, r)
		return "", false
	}
	return p.Email, true
}
