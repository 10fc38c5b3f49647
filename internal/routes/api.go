package routes

import (
	"net/http"

	"github.com/dukerupert/shelf/internal/handler"
	"github.com/dukerupert/shelf/internal/middleware"
	"github.com/dukerupert/shelf/internal/router"
)

// RegisterAPIRoutes registers every bookstore route on r.
// r is expected to carry middleware.WithPrincipal so the auth groups can see the caller.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	health := deps.Health
	if health == nil {
		health = Health
	}
	r.Get("/health", health)
	if deps.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", deps.Metrics)
	}
	r.NotFound(handler.NotFoundResponse)

	// Public
	r.Post("/auth/registration", deps.AuthHandler.Register)
	r.Post("/auth/login", deps.AuthHandler.Login)

	// Authenticated users
	user := r.Group(middleware.RequireAuth)

	user.Get("/books", deps.BookHandler.List)
	user.Get("/books/search", deps.BookHandler.Search)
	user.Get("/books/{id}", deps.BookHandler.Get)

	user.Get("/categories", deps.CategoryHandler.List)
	user.Get("/categories/{id}", deps.CategoryHandler.Get)
	user.Get("/categories/{id}/books", deps.CategoryHandler.Books)

	user.Get("/cart", deps.CartHandler.View)
	user.Post("/cart", deps.CartHandler.Add)
	user.Put("/cart/cart-items/{id}", deps.CartHandler.Update)
	user.Delete("/cart/cart-items/{id}", deps.CartHandler.Remove)

	user.Post("/orders", deps.OrderHandler.Place)
	user.Get("/orders", deps.OrderHandler.List)
	user.Get("/orders/{orderId}/items", deps.OrderHandler.Items)
	user.Get("/orders/{orderId}/items/{itemId}", deps.OrderHandler.Item)

	// Administrators
	admin := r.Group(middleware.RequireAdmin)

	admin.Post("/books", deps.BookHandler.Create)
	admin.Put("/books/{id}", deps.BookHandler.Update)
	admin.Delete("/books/{id}", deps.BookHandler.Delete)

	admin.Post("/categories", deps.CategoryHandler.Create)
	admin.Put("/categories/{id}", deps.CategoryHandler.Update)
	admin.Delete("/categories/{id}", deps.CategoryHandler.Delete)

	admin.Put("/orders/{id}", deps.OrderHandler.UpdateStatus)
}

// Health answers liveness checks.
func Health(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
