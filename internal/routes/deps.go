package routes

import (
	"net/http"

	"github.com/dukerupert/shelf/internal/handler/api"
)

// APIDeps contains the handlers served by the bookstore API
type APIDeps struct {
	// Registration and login
	AuthHandler *api.AuthHandler

	// Catalog
	BookHandler     *api.BookHandler
	CategoryHandler *api.CategoryHandler

	// Shopping cart of the caller
	CartHandler *api.CartHandler

	// Orders (placement, history, admin status)
	OrderHandler *api.OrderHandler

	// Operational endpoints; nil Metrics skips /metrics
	Health  http.HandlerFunc
	Metrics http.Handler
}
