package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (user_id, status, total, order_date, shipping_address)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, status, total, order_date, shipping_address, is_deleted
`

type CreateOrderParams struct {
	UserID          int64              `json:"user_id"`
	Status          string             `json:"status"`
	Total           pgtype.Numeric     `json:"total"`
	OrderDate       pgtype.Timestamptz `json:"order_date"`
	ShippingAddress string             `json:"shipping_address"`
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.UserID,
		arg.Status,
		arg.Total,
		arg.OrderDate,
		arg.ShippingAddress,
	)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.Total,
		&i.OrderDate,
		&i.ShippingAddress,
		&i.IsDeleted,
	)
	return i, err
}

const getOrderByID = `-- name: GetOrderByID :one
SELECT id, user_id, status, total, order_date, shipping_address, is_deleted
FROM orders
WHERE id = $1 AND is_deleted = FALSE
`

func (q *Queries) GetOrderByID(ctx context.Context, id int64) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderByID, id)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.Total,
		&i.OrderDate,
		&i.ShippingAddress,
		&i.IsDeleted,
	)
	return i, err
}

const getOrderForUser = `-- name: GetOrderForUser :one
SELECT id, user_id, status, total, order_date, shipping_address, is_deleted
FROM orders
WHERE user_id = $1 AND id = $2 AND is_deleted = FALSE
`

type GetOrderForUserParams struct {
	UserID int64 `json:"user_id"`
	ID     int64 `json:"id"`
}

func (q *Queries) GetOrderForUser(ctx context.Context, arg GetOrderForUserParams) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderForUser, arg.UserID, arg.ID)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.Total,
		&i.OrderDate,
		&i.ShippingAddress,
		&i.IsDeleted,
	)
	return i, err
}

const listOrdersByUserID = `-- name: ListOrdersByUserID :many
SELECT id, user_id, status, total, order_date, shipping_address, is_deleted
FROM orders
WHERE user_id = $1 AND is_deleted = FALSE
ORDER BY order_date DESC, id DESC
LIMIT $2 OFFSET $3
`

type ListOrdersByUserIDParams struct {
	UserID int64 `json:"user_id"`
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListOrdersByUserID(ctx context.Context, arg ListOrdersByUserIDParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrdersByUserID, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Order{}
	for rows.Next() {
		var i Order
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Status,
			&i.Total,
			&i.OrderDate,
			&i.ShippingAddress,
			&i.IsDeleted,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateOrderStatus = `-- name: UpdateOrderStatus :one
UPDATE orders
SET status = $2
WHERE id = $1 AND is_deleted = FALSE
RETURNING id, user_id, status, total, order_date, shipping_address, is_deleted
`

type UpdateOrderStatusParams struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrderStatus, arg.ID, arg.Status)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.Total,
		&i.OrderDate,
		&i.ShippingAddress,
		&i.IsDeleted,
	)
	return i, err
}

const createOrderItem = `-- name: CreateOrderItem :one
INSERT INTO order_items (order_id, book_id, quantity, price)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, book_id, quantity, price, is_deleted
`

type CreateOrderItemParams struct {
	OrderID  int64          `json:"order_id"`
	BookID   int64          `json:"book_id"`
	Quantity int32          `json:"quantity"`
	Price    pgtype.Numeric `json:"price"`
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem,
		arg.OrderID,
		arg.BookID,
		arg.Quantity,
		arg.Price,
	)
	var i OrderItem
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.BookID,
		&i.Quantity,
		&i.Price,
		&i.IsDeleted,
	)
	return i, err
}

const listOrderItems = `-- name: ListOrderItems :many
SELECT id, order_id, book_id, quantity, price, is_deleted
FROM order_items
WHERE order_id = ANY($1::bigint[]) AND is_deleted = FALSE
ORDER BY order_id, id
`

// ListOrderItems returns the items of every order in orderIds.
func (q *Queries) ListOrderItems(ctx context.Context, orderIds []int64) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, listOrderItems, orderIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderItem{}
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.BookID,
			&i.Quantity,
			&i.Price,
			&i.IsDeleted,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOrderItemsPage = `-- name: ListOrderItemsPage :many
SELECT id, order_id, book_id, quantity, price, is_deleted
FROM order_items
WHERE order_id = $1 AND is_deleted = FALSE
ORDER BY id
LIMIT $2 OFFSET $3
`

type ListOrderItemsPageParams struct {
	OrderID int64 `json:"order_id"`
	Limit   int32 `json:"limit"`
	Offset  int32 `json:"offset"`
}

func (q *Queries) ListOrderItemsPage(ctx context.Context, arg ListOrderItemsPageParams) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, listOrderItemsPage, arg.OrderID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderItem{}
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.BookID,
			&i.Quantity,
			&i.Price,
			&i.IsDeleted,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getOrderItemForOrder = `-- name: GetOrderItemForOrder :one
SELECT id, order_id, book_id, quantity, price, is_deleted
FROM order_items
WHERE order_id = $1 AND id = $2 AND is_deleted = FALSE
`

type GetOrderItemForOrderParams struct {
	OrderID int64 `json:"order_id"`
	ID      int64 `json:"id"`
}

func (q *Queries) GetOrderItemForOrder(ctx context.Context, arg GetOrderItemForOrderParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, getOrderItemForOrder, arg.OrderID, arg.ID)
	var i OrderItem
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.BookID,
		&i.Quantity,
		&i.Price,
		&i.IsDeleted,
	)
	return i, err
}
