package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Book struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	Isbn        string         `json:"isbn"`
	Price       pgtype.Numeric `json:"price"`
	Description pgtype.Text    `json:"description"`
	CoverImage  pgtype.Text    `json:"cover_image"`
	IsDeleted   bool           `json:"is_deleted"`
}

type BooksCategory struct {
	BookID     int64 `json:"book_id"`
	CategoryID int64 `json:"category_id"`
}

type CartItem struct {
	ID             int64 `json:"id"`
	ShoppingCartID int64 `json:"shopping_cart_id"`
	BookID         int64 `json:"book_id"`
	Quantity       int32 `json:"quantity"`
}

type Category struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description pgtype.Text `json:"description"`
	IsDeleted   bool        `json:"is_deleted"`
}

type Order struct {
	ID              int64              `json:"id"`
	UserID          int64              `json:"user_id"`
	Status          string             `json:"status"`
	Total           pgtype.Numeric     `json:"total"`
	OrderDate       pgtype.Timestamptz `json:"order_date"`
	ShippingAddress string             `json:"shipping_address"`
	IsDeleted       bool               `json:"is_deleted"`
}

type OrderItem struct {
	ID        int64          `json:"id"`
	OrderID   int64          `json:"order_id"`
	BookID    int64          `json:"book_id"`
	Quantity  int32          `json:"quantity"`
	Price     pgtype.Numeric `json:"price"`
	IsDeleted bool           `json:"is_deleted"`
}

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ShoppingCart struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	IsDeleted bool  `json:"is_deleted"`
}

type User struct {
	ID              int64              `json:"id"`
	Email           string             `json:"email"`
	PasswordHash    string             `json:"password_hash"`
	FirstName       string             `json:"first_name"`
	LastName        string             `json:"last_name"`
	ShippingAddress pgtype.Text        `json:"shipping_address"`
	IsDeleted       bool               `json:"is_deleted"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
}
