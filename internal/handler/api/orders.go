package api

import (
	"net/http"

	"github.com/dukerupert/shelf/internal/handler"
	"github.com/dukerupert/shelf/internal/service"
)

// OrderHandler handles order placement, history and fulfilment status
type OrderHandler struct {
	orders service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderRequest struct {
	ShippingAddress string `json:"shippingAddress" validate:"max=255"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Place handles POST /orders
// An empty body falls back to the user's stored shipping address.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	email, ok := principalEmail(w, r)
	if !ok {
		return
	}

	var req placeOrderRequest
	if r.ContentLength != 0 {
		if err := handler.DecodeJSON(r, "order.place", &req); err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
	}

	order, err := h.orders.PlaceOrder(r.Context(), email, req.ShippingAddress)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusAccepted, order)
}

// List handles GET /orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := principalEmail(w, r)
	if !ok {
		return
	}
	page, err := handler.Page(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), email, page)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /orders/{id}
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req updateStatusRequest
	if err := handler.DecodeJSON(r, "order.update_status", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	update, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, update)
}

// Items handles GET /orders/{orderId}/items
func (h *OrderHandler) Items(w http.ResponseWriter, r *http.Request) {
	email, ok := principalEmail(w, r)
	if !ok {
		return
	}
	orderID, err := handler.PathID(r, "orderId")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	page, err := handler.Page(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	items, err := h.orders.ListOrderItems(r.Context(), email, orderID, page)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, items)
}

// Item handles GET /orders/{orderId}/items/{itemId}
func (h *OrderHandler) Item(w http.ResponseWriter, r *http.Request) {
	email, ok := principalEmail(w, r)
	if !ok {
		return
	}
	orderID, err := handler.PathID(r, "orderId")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	itemID, err := handler.PathID(r, "itemId")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	item, err := h.orders.GetOrderItem(r.Context(), email, orderID, itemID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, item)
}
