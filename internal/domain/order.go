package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order-related domain errors.
var (
	ErrOrderNotFound     = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrOrderItemNotFound = &Error{Code: ENOTFOUND, Message: "Order item not found"}
	ErrEmptyCart         = &Error{Code: ECONFLICT, Message: "The order cannot be processed, since your shopping cart is empty"}
	ErrInvalidStatus     = &Error{Code: EINVALID, Message: "The status is not correct"}
	ErrOrderTooLarge     = &Error{Code: ECONFLICT, Message: "The order total is too large"}
)

// MaxOrderTotal is the largest order total or line subtotal stored (NUMERIC(19,2)).
var MaxOrderTotal = decimal.RequireFromString("99999999999999999.99")

// OrderStatus is the lifecycle state of an order: PENDING -> COMPLETED -> DELIVERED.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// OrderStatuses lists every recognized status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusCompleted,
	OrderStatusDelivered,
}

// ParseOrderStatus returns the status with the exact given name.
func ParseOrderStatus(name string) (OrderStatus, error) {
	for _, s := range OrderStatuses {
		if string(s) == name {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// rank is the position of s in OrderStatuses, or -1.
func (s OrderStatus) rank() int {
	for i, st := range OrderStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

// CanMoveTo reports whether next is s itself or a later lifecycle state.
// Steps may be skipped; moving back is not allowed.
func (s OrderStatus) CanMoveTo(next OrderStatus) bool {
	from, to := s.rank(), next.rank()
	return from >= 0 && to >= from
}

// IsTerminal reports whether no further transition exists.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// Order is the read view of a placed order.
type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Items           []OrderItem     `json:"orderItems"`
	OrderDate       time.Time       `json:"orderDate"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
}

// OrderItem is an immutable priced snapshot of a cart line.
// Price is unit price at placement multiplied by quantity.
type OrderItem struct {
	ID       int64           `json:"id"`
	BookID   int64           `json:"bookId"`
	Quantity int32           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderStatusUpdate is returned after an admin status change.
type OrderStatusUpdate struct {
	ID     int64       `json:"id"`
	Status OrderStatus `json:"status"`
}
