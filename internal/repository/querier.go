package repository

import (
	"context"
)

type Querier interface {
	AddUserRole(ctx context.Context, arg AddUserRoleParams) error
	CreateBook(ctx context.Context, arg CreateBookParams) (Book, error)
	CreateCart(ctx context.Context, userID int64) (ShoppingCart, error)
	CreateCartItem(ctx context.Context, arg CreateCartItemParams) (CartItem, error)
	CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error)
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	DeleteCartItem(ctx context.Context, id int64) error
	DeleteCartItems(ctx context.Context, ids []int64) (int64, error)
	GetBookByID(ctx context.Context, id int64) (Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (Book, error)
	GetCartByUserEmail(ctx context.Context, email string) (ShoppingCart, error)
	GetCartItemByBook(ctx context.Context, arg GetCartItemByBookParams) (CartItem, error)
	GetCartItemForCart(ctx context.Context, arg GetCartItemForCartParams) (CartItem, error)
	GetCategoryByID(ctx context.Context, id int64) (Category, error)
	GetOrderByID(ctx context.Context, id int64) (Order, error)
	GetOrderForUser(ctx context.Context, arg GetOrderForUserParams) (Order, error)
	GetOrderItemForOrder(ctx context.Context, arg GetOrderItemForOrderParams) (OrderItem, error)
	GetRoleByName(ctx context.Context, name string) (Role, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListBookCategoryIDs(ctx context.Context, bookIds []int64) ([]BooksCategory, error)
	ListBooks(ctx context.Context, arg ListBooksParams) ([]Book, error)
	ListBooksByCategoryID(ctx context.Context, arg ListBooksByCategoryIDParams) ([]Book, error)
	ListCartItems(ctx context.Context, shoppingCartID int64) ([]CartItem, error)
	ListCartItemsPage(ctx context.Context, arg ListCartItemsPageParams) ([]ListCartItemsPageRow, error)
	ListCategories(ctx context.Context, arg ListCategoriesParams) ([]Category, error)
	ListOrderItems(ctx context.Context, orderIds []int64) ([]OrderItem, error)
	ListOrderItemsPage(ctx context.Context, arg ListOrderItemsPageParams) ([]OrderItem, error)
	ListOrdersByUserID(ctx context.Context, arg ListOrdersByUserIDParams) ([]Order, error)
	ListUserRoleNames(ctx context.Context, userID int64) ([]string, error)
	LockCart(ctx context.Context, id int64) (int64, error)
	SetBookCategories(ctx context.Context, arg SetBookCategoriesParams) error
	SoftDeleteBook(ctx context.Context, id int64) (int64, error)
	SoftDeleteCategory(ctx context.Context, id int64) (int64, error)
	UpdateBook(ctx context.Context, arg UpdateBookParams) (Book, error)
	UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (CartItem, error)
	UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error)
	UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error)
}

var _ Querier = (*Queries)(nil)
