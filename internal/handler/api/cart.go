package api

import (
	"net/http"

	"github.com/dukerupert/shelf/internal/handler"
	"github.com/dukerupert/shelf/internal/service"
)

// CartHandler handles the caller's shopping cart
type CartHandler struct {
	carts service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type addLineRequest struct {
	BookID   int64 `json:"bookId" validate:"required,gte=1"`
	Quantity int32 `json:"quantity" validate:"required,gte=1,lte=1000"`
}

type updateLineRequest struct {
	Quantity int32 `json:"quantity" validate:"required,gte=1,lte=1000"`
}

// View handles GET /cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	email, ok := principalEmail(w, r)
	if !ok {
		return
	}
	page, err := handler.Page(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), email, page)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, cart)
}

// Add handles POST /cart
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	email, ok := principalEmail(w, r)
	if !ok {
		return
	}

	var req addLineRequest
	if err := handler.DecodeJSON(r, "cart.add_line", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	line, err := h.carts.AddLine(r.Context(), email, req.BookID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusAccepted, line)
}

// Update handles PUT /cart/cart-items/{id}
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	email, ok := principalEmail(w, r)
	if !ok {
		return
	}
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req updateLineRequest
	if err := handler.DecodeJSON(r, "cart.update_line", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	line, err := h.carts.UpdateLine(r.Context(), email, id, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusAccepted, line)
}

// Remove handles DELETE /cart/cart-items/{id}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	email, ok := principalEmail(w, r)
	if !ok {
		return
	}
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.carts.RemoveLine(r.Context(), email, id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
