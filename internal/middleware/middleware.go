// Package middleware holds the HTTP middleware of the bookstore API: request
// ids, request-scoped logging, bearer authentication and metrics.
package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/shelf/internal/domain"
)

type contextKey string

// errorEnvelope matches the body written by handler.ErrorResponse. It is
// duplicated here because handler imports this package.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// statusByCode covers the codes middleware can produce.
var statusByCode = map[string]int{
	domain.EUNAUTHORIZED: http.StatusUnauthorized,
	domain.EFORBIDDEN:    http.StatusForbidden,
}

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	var body errorEnvelope
	body.Error.Code = domain.ErrorCode(err)
	body.Error.Message = domain.ErrorMessage(err)

	status, ok := statusByCode[body.Error.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	GetLogger(r.Context()).Info("request rejected",
		"code", body.Error.Code,
		"status", status,
		"error", err.Error(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	respondWithError(w, r, domain.Unauthorized("auth.verify", message))
}

func respondForbidden(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, r, domain.Forbidden("auth.require_admin", "You don't have permission to access this resource"))
}
