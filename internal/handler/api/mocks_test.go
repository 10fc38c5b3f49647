package api_test

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dukerupert/shelf/internal/domain"
	"github.com/dukerupert/shelf/internal/handler/api"
	"github.com/dukerupert/shelf/internal/middleware"
	"github.com/dukerupert/shelf/internal/router"
	"github.com/dukerupert/shelf/internal/routes"
)

// mockBookService implements service.BookService for testing
type mockBookService struct {
	createFunc         func(ctx context.Context, input domain.BookInput) (*domain.Book, error)
	getFunc            func(ctx context.Context, id int64) (*domain.Book, error)
	listFunc           func(ctx context.Context, page domain.PageRequest) ([]domain.Book, error)
	searchFunc         func(ctx context.Context, params domain.BookSearchParameters, page domain.PageRequest) ([]domain.Book, error)
	listByCategoryFunc func(ctx context.Context, categoryID int64, page domain.PageRequest) ([]domain.Book, error)
	updateFunc         func(ctx context.Context, id int64, input domain.BookInput) (*domain.Book, error)
	deleteFunc         func(ctx context.Context, id int64) error
}

func (m *mockBookService) Create(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBookService) List(ctx context.Context, page domain.PageRequest) ([]domain.Book, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, page)
	}
	return nil, nil
}

func (m *mockBookService) Search(ctx context.Context, params domain.BookSearchParameters, page domain.PageRequest) ([]domain.Book, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, params, page)
	}
	return nil, nil
}

func (m *mockBookService) ListByCategory(ctx context.Context, categoryID int64, page domain.PageRequest) ([]domain.Book, error) {
	if m.listByCategoryFunc != nil {
		return m.listByCategoryFunc(ctx, categoryID, page)
	}
	return nil, nil
}

func (m *mockBookService) Update(ctx context.Context, id int64, input domain.BookInput) (*domain.Book, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBookService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockCategoryService implements service.CategoryService for testing
type mockCategoryService struct {
	createFunc func(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
	listFunc   func(ctx context.Context, page domain.PageRequest) ([]domain.Category, error)
	getFunc    func(ctx context.Context, id int64) (*domain.Category, error)
	updateFunc func(ctx context.Context, id int64, input domain.CategoryInput) (*domain.Category, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockCategoryService) Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCategoryService) List(ctx context.Context, page domain.PageRequest) ([]domain.Category, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, page)
	}
	return nil, nil
}

func (m *mockCategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCategoryService) Update(ctx context.Context, id int64, input domain.CategoryInput) (*domain.Category, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCategoryService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockCartService implements service.CartService for testing
type mockCartService struct {
	addLineFunc    func(ctx context.Context, email string, bookID int64, quantity int32) (*domain.CartLine, error)
	getCartFunc    func(ctx context.Context, email string, page domain.PageRequest) (*domain.Cart, error)
	updateLineFunc func(ctx context.Context, email string, lineID int64, quantity int32) (*domain.CartLine, error)
	removeLineFunc func(ctx context.Context, email string, lineID int64) error
}

func (m *mockCartService) AddLine(ctx context.Context, email string, bookID int64, quantity int32) (*domain.CartLine, error) {
	if m.addLineFunc != nil {
		return m.addLineFunc(ctx, email, bookID, quantity)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCartService) GetCart(ctx context.Context, email string, page domain.PageRequest) (*domain.Cart, error) {
	if m.getCartFunc != nil {
		return m.getCartFunc(ctx, email, page)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCartService) UpdateLine(ctx context.Context, email string, lineID int64, quantity int32) (*domain.CartLine, error) {
	if m.updateLineFunc != nil {
		return m.updateLineFunc(ctx, email, lineID, quantity)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCartService) RemoveLine(ctx context.Context, email string, lineID int64) error {
	if m.removeLineFunc != nil {
		return m.removeLineFunc(ctx, email, lineID)
	}
	return nil
}

// mockOrderService implements service.OrderService for testing
type mockOrderService struct {
	placeOrderFunc     func(ctx context.Context, email, shippingAddress string) (*domain.Order, error)
	listOrdersFunc     func(ctx context.Context, email string, page domain.PageRequest) ([]domain.Order, error)
	updateStatusFunc   func(ctx context.Context, orderID int64, status string) (*domain.OrderStatusUpdate, error)
	listOrderItemsFunc func(ctx context.Context, email string, orderID int64, page domain.PageRequest) ([]domain.OrderItem, error)
	getOrderItemFunc   func(ctx context.Context, email string, orderID, itemID int64) (*domain.OrderItem, error)
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, email, shippingAddress string) (*domain.Order, error) {
	if m.placeOrderFunc != nil {
		return m.placeOrderFunc(ctx, email, shippingAddress)
	}
	return nil, errors.New("not implemented")
}

func (m *mockOrderService) ListOrders(ctx context.Context, email string, page domain.PageRequest) ([]domain.Order, error) {
	if m.listOrdersFunc != nil {
		return m.listOrdersFunc(ctx, email, page)
	}
	return nil, nil
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, orderID int64, status string) (*domain.OrderStatusUpdate, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, orderID, status)
	}
	return nil, errors.New("not implemented")
}

func (m *mockOrderService) ListOrderItems(ctx context.Context, email string, orderID int64, page domain.PageRequest) ([]domain.OrderItem, error) {
	if m.listOrderItemsFunc != nil {
		return m.listOrderItemsFunc(ctx, email, orderID, page)
	}
	return nil, nil
}

func (m *mockOrderService) GetOrderItem(ctx context.Context, email string, orderID, itemID int64) (*domain.OrderItem, error) {
	if m.getOrderItemFunc != nil {
		return m.getOrderItemFunc(ctx, email, orderID, itemID)
	}
	return nil, errors.New("not implemented")
}

// mockUserService implements service.UserService for testing
type mockUserService struct {
	registerFunc     func(ctx context.Context, input domain.RegistrationInput, roles ...string) (*domain.User, error)
	authenticateFunc func(ctx context.Context, email, password string) (*domain.Principal, error)
}

func (m *mockUserService) Register(ctx context.Context, input domain.RegistrationInput, roles ...string) (*domain.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, input, roles...)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*domain.Principal, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Exists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

// fakeTokens issues and verifies opaque tokens of the form "token:<email>".
type fakeTokens struct {
	principals map[string]*domain.Principal
}

func (f *fakeTokens) Issue(p domain.Principal) (string, time.Time, error) {
	return "token:" + p.Email, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func (f *fakeTokens) Verify(token string) (*domain.Principal, error) {
	if p, ok := f.principals[token]; ok {
		return p, nil
	}
	return nil, errors.New("bad token")
}

const (
	userToken  = "Bearer user"
	adminToken = "Bearer admin"
	userEmail  = "reader@example.com"
)

type services struct {
	books      *mockBookService
	categories *mockCategoryService
	carts      *mockCartService
	orders     *mockOrderService
	users      *mockUserService
}

func newServices() *services {
	return &services{
		books:      &mockBookService{},
		categories: &mockCategoryService{},
		carts:      &mockCartService{},
		orders:     &mockOrderService{},
		users:      &mockUserService{},
	}
}

// newAPI mounts the real route table over the mocks.
func newAPI(s *services) http.Handler {
	tokens := &fakeTokens{principals: map[string]*domain.Principal{
		"user":  {Email: userEmail, Roles: []string{domain.RoleUser}},
		"admin": {Email: "admin@example.com", Roles: []string{domain.RoleUser, domain.RoleAdmin}},
	}}

	r := router.New(middleware.RequestID, middleware.WithPrincipal(tokens))
	routes.RegisterAPIRoutes(r, routes.APIDeps{
		AuthHandler:     api.NewAuthHandler(s.users, tokens),
		BookHandler:     api.NewBookHandler(s.books),
		CategoryHandler: api.NewCategoryHandler(s.categories, s.books),
		CartHandler:     api.NewCartHandler(s.carts),
		OrderHandler:    api.NewOrderHandler(s.orders),
	})
	return r
}
