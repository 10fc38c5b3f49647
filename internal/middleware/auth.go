package middleware

import (
	"net/http"
	"strings"

	"github.com/dukerupert/shelf/internal/domain"
)

// TokenVerifier turns a bearer token into the principal it was issued for.
type TokenVerifier interface {
	Verify(token string) (*domain.Principal, error)
}

// WithPrincipal reads a bearer token from the Authorization header and puts the
// verified principal on the request context.
// Requests without a token pass through anonymously; a bad token is a 401.
func WithPrincipal(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := verifier.Verify(token)
			if err != nil {
				GetLogger(r.Context()).Debug("bearer token rejected", "error", err)
				respondUnauthorized(w, r, "Invalid or expired token")
				return
			}

			ctx := domain.NewContextWithPrincipal(r.Context(), principal)
			ctx = withLogger(ctx, GetLogger(ctx).With("user", principal.Email))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without an authenticated principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if domain.PrincipalFromContext(r.Context()) == nil {
			respondUnauthorized(w, r, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := domain.PrincipalFromContext(r.Context())
		if p == nil {
			respondUnauthorized(w, r, "Authentication required")
			return
		}
		if !p.HasRole(domain.RoleAdmin) {
			respondForbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(token), true
}
