package repository

import (
	"context"
)

const getCartByUserEmail = `-- name: GetCartByUserEmail :one
SELECT sc.id, sc.user_id, sc.is_deleted
FROM shopping_carts sc
JOIN users u ON u.id = sc.user_id
WHERE u.email = $1 AND u.is_deleted = FALSE AND sc.is_deleted = FALSE
`

func (q *Queries) GetCartByUserEmail(ctx context.Context, email string) (ShoppingCart, error) {
	row := q.db.QueryRow(ctx, getCartByUserEmail, email)
	var i ShoppingCart
	err := row.Scan(&i.ID, &i.UserID, &i.IsDeleted)
	return i, err
}

const createCart = `-- name: CreateCart :one
INSERT INTO shopping_carts (user_id)
VALUES ($1)
RETURNING id, user_id, is_deleted
`

func (q *Queries) CreateCart(ctx context.Context, userID int64) (ShoppingCart, error) {
	row := q.db.QueryRow(ctx, createCart, userID)
	var i ShoppingCart
	err := row.Scan(&i.ID, &i.UserID, &i.IsDeleted)
	return i, err
}

const lockCart = `-- name: LockCart :one
SELECT id FROM shopping_carts WHERE id = $1 FOR UPDATE
`

// LockCart takes a row lock on the cart until the surrounding transaction ends.
func (q *Queries) LockCart(ctx context.Context, id int64) (int64, error) {
	row := q.db.QueryRow(ctx, lockCart, id)
	var lockedID int64
	err := row.Scan(&lockedID)
	return lockedID, err
}

const listCartItems = `-- name: ListCartItems :many
SELECT id, shopping_cart_id, book_id, quantity
FROM cart_items
WHERE shopping_cart_id = $1
ORDER BY id
`

func (q *Queries) ListCartItems(ctx context.Context, shoppingCartID int64) ([]CartItem, error) {
	rows, err := q.db.Query(ctx, listCartItems, shoppingCartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CartItem{}
	for rows.Next() {
		var i CartItem
		if err := rows.Scan(
			&i.ID,
			&i.ShoppingCartID,
			&i.BookID,
			&i.Quantity,
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

const listCartItemsPage = `-- name: ListCartItemsPage :many
SELECT ci.id, ci.shopping_cart_id, ci.book_id, ci.quantity, COALESCE(b.title, '') AS book_title
FROM cart_items ci
LEFT JOIN books b ON b.id = ci.book_id AND b.is_deleted = FALSE
WHERE ci.shopping_cart_id = $1
ORDER BY ci.id
LIMIT $2 OFFSET $3
`

type ListCartItemsPageParams struct {
	ShoppingCartID int64 `json:"shopping_cart_id"`
	Limit          int32 `json:"limit"`
	Offset         int32 `json:"offset"`
}

type ListCartItemsPageRow struct {
	ID             int64  `json:"id"`
	ShoppingCartID int64  `json:"shopping_cart_id"`
	BookID         int64  `json:"book_id"`
	Quantity       int32  `json:"quantity"`
	BookTitle      string `json:"book_title"`
}

func (q *Queries) ListCartItemsPage(ctx context.Context, arg ListCartItemsPageParams) ([]ListCartItemsPageRow, error) {
	rows, err := q.db.Query(ctx, listCartItemsPage, arg.ShoppingCartID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListCartItemsPageRow{}
	for rows.Next() {
		var i ListCartItemsPageRow
		if err := rows.Scan(
			&i.ID,
			&i.ShoppingCartID,
			&i.BookID,
			&i.Quantity,
			&i.BookTitle,
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

const getCartItemByBook = `-- name: GetCartItemByBook :one
SELECT id, shopping_cart_id, book_id, quantity
FROM cart_items
WHERE shopping_cart_id = $1 AND book_id = $2
`

type GetCartItemByBookParams struct {
	ShoppingCartID int64 `json:"shopping_cart_id"`
	BookID         int64 `json:"book_id"`
}

func (q *Queries) GetCartItemByBook(ctx context.Context, arg GetCartItemByBookParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, getCartItemByBook, arg.ShoppingCartID, arg.BookID)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.ShoppingCartID,
		&i.BookID,
		&i.Quantity,
	)
	return i, err
}

const getCartItemForCart = `-- name: GetCartItemForCart :one
SELECT id, shopping_cart_id, book_id, quantity
FROM cart_items
WHERE shopping_cart_id = $1 AND id = $2
`

type GetCartItemForCartParams struct {
	ShoppingCartID int64 `json:"shopping_cart_id"`
	ID             int64 `json:"id"`
}

func (q *Queries) GetCartItemForCart(ctx context.Context, arg GetCartItemForCartParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, getCartItemForCart, arg.ShoppingCartID, arg.ID)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.ShoppingCartID,
		&i.BookID,
		&i.Quantity,
	)
	return i, err
}

const createCartItem = `-- name: CreateCartItem :one
INSERT INTO cart_items (shopping_cart_id, book_id, quantity)
VALUES ($1, $2, $3)
RETURNING id, shopping_cart_id, book_id, quantity
`

type CreateCartItemParams struct {
	ShoppingCartID int64 `json:"shopping_cart_id"`
	BookID         int64 `json:"book_id"`
	Quantity       int32 `json:"quantity"`
}

func (q *Queries) CreateCartItem(ctx context.Context, arg CreateCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, createCartItem, arg.ShoppingCartID, arg.BookID, arg.Quantity)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.ShoppingCartID,
		&i.BookID,
		&i.Quantity,
	)
	return i, err
}

const updateCartItemQuantity = `-- name: UpdateCartItemQuantity :one
UPDATE cart_items
SET quantity = $2
WHERE id = $1
RETURNING id, shopping_cart_id, book_id, quantity
`

type UpdateCartItemQuantityParams struct {
	ID       int64 `json:"id"`
	Quantity int32 `json:"quantity"`
}

func (q *Queries) UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, updateCartItemQuantity, arg.ID, arg.Quantity)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.ShoppingCartID,
		&i.BookID,
		&i.Quantity,
	)
	return i, err
}

const deleteCartItem = `-- name: DeleteCartItem :exec
DELETE FROM cart_items WHERE id = $1
`

func (q *Queries) DeleteCartItem(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteCartItem, id)
	return err
}

const deleteCartItems = `-- name: DeleteCartItems :execrows
DELETE FROM cart_items WHERE id = ANY($1::bigint[])
`

func (q *Queries) DeleteCartItems(ctx context.Context, ids []int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartItems, ids)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
