package service

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/shelf/internal/repository"
)

// memState is the table contents of memStore.
type memState struct {
	nextID     int64
	books      map[int64]repository.Book
	categories map[int64]repository.Category
	bookCats   map[int64][]int64
	users      map[int64]repository.User
	roles      map[string]repository.Role
	userRoles  map[int64][]int64
	carts      map[int64]repository.ShoppingCart
	cartItems  map[int64]repository.CartItem
	orders     map[int64]repository.Order
	orderItems map[int64]repository.OrderItem
}

func (s *memState) clone() *memState {
	c := *s
	c.books = maps.Clone(s.books)
	c.categories = maps.Clone(s.categories)
	c.bookCats = make(map[int64][]int64, len(s.bookCats))
	for k, v := range s.bookCats {
		c.bookCats[k] = slices.Clone(v)
	}
	c.users = maps.Clone(s.users)
	c.roles = maps.Clone(s.roles)
	c.userRoles = make(map[int64][]int64, len(s.userRoles))
	for k, v := range s.userRoles {
		c.userRoles[k] = slices.Clone(v)
	}
	c.carts = maps.Clone(s.carts)
	c.cartItems = maps.Clone(s.cartItems)
	c.orders = maps.Clone(s.orders)
	c.orderItems = maps.Clone(s.orderItems)
	return &c
}

// memStore is an in-memory repository.Store. Transactions are serialized and
// roll back by restoring a snapshot. Errors can be injected per method name.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   *memState

	fail map[string]error

	lastListBooks repository.ListBooksParams
	txCount       int
}

func newMemStore() *memStore {
	return &memStore{
		st: &memState{
			books:      map[int64]repository.Book{},
			categories: map[int64]repository.Category{},
			bookCats:   map[int64][]int64{},
			users:      map[int64]repository.User{},
			roles: map[string]repository.Role{
				"ROLE_USER":  {ID: 1, Name: "ROLE_USER"},
				"ROLE_ADMIN": {ID: 2, Name: "ROLE_ADMIN"},
			},
			userRoles:  map[int64][]int64{},
			carts:      map[int64]repository.ShoppingCart{},
			cartItems:  map[int64]repository.CartItem{},
			orders:     map[int64]repository.Order{},
			orderItems: map[int64]repository.OrderItem{},
			nextID:     100,
		},
		fail: map[string]error{},
	}
}

func (m *memStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := m.st.clone()
	m.txCount++
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.st = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) injected(name string) error {
	return m.fail[name]
}

func (m *memStore) id() int64 {
	m.st.nextID++
	return m.st.nextID
}

// ----------------------------------------------------------------------------
// Seeding helpers
// ----------------------------------------------------------------------------

func (m *memStore) seedBook(title, author, isbn, price string) repository.Book {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := repository.Book{
		ID:     m.id(),
		Title:  title,
		Author: author,
		Isbn:   isbn,
		Price:  repository.Numeric(decimal.RequireFromString(price)),
	}
	m.st.books[b.ID] = b
	return b
}

func (m *memStore) seedCategory(name string) repository.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := repository.Category{ID: m.id(), Name: name}
	m.st.categories[c.ID] = c
	return c
}

// seedUser creates a user with a cart and returns both.
func (m *memStore) seedUser(email string) (repository.User, repository.ShoppingCart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := repository.User{
		ID:              m.id(),
		Email:           email,
		FirstName:       "Test",
		LastName:        "User",
		ShippingAddress: pgtype.Text{String: "1 Main St", Valid: true},
	}
	m.st.users[u.ID] = u
	c := repository.ShoppingCart{ID: m.id(), UserID: u.ID}
	m.st.carts[c.ID] = c
	return u, c
}

func (m *memStore) seedCartItem(cartID, bookID int64, qty int32) repository.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	ci := repository.CartItem{ID: m.id(), ShoppingCartID: cartID, BookID: bookID, Quantity: qty}
	m.st.cartItems[ci.ID] = ci
	return ci
}

func (m *memStore) seedOrder(userID int64, status string, items ...repository.OrderItem) repository.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	o := repository.Order{
		ID:              m.id(),
		UserID:          userID,
		Status:          status,
		OrderDate:       pgtype.Timestamptz{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Valid: true},
		ShippingAddress: "1 Main St",
	}
	for _, it := range items {
		it.ID = m.id()
		it.OrderID = o.ID
		m.st.orderItems[it.ID] = it
		total = total.Add(repository.Decimal(it.Price))
	}
	o.Total = repository.Numeric(total)
	m.st.orders[o.ID] = o
	return o
}

func (m *memStore) cartLines(cartID int64) []repository.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.CartItem
	for _, ci := range m.st.cartItems {
		if ci.ShoppingCartID == cartID {
			out = append(out, ci)
		}
	}
	slices.SortFunc(out, func(a, b repository.CartItem) int { return int(a.ID - b.ID) })
	return out
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.orders)
}

func (m *memStore) orderItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.orderItems)
}

func (m *memStore) order(id int64) repository.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.orders[id]
}

// ----------------------------------------------------------------------------
// repository.Querier
// ----------------------------------------------------------------------------

func (m *memStore) AddUserRole(ctx context.Context, arg repository.AddUserRoleParams) error {
	if err := m.injected("AddUserRole"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.st.userRoles[arg.UserID], arg.RoleID) {
		m.st.userRoles[arg.UserID] = append(m.st.userRoles[arg.UserID], arg.RoleID)
	}
	return nil
}

func (m *memStore) CreateBook(ctx context.Context, arg repository.CreateBookParams) (repository.Book, error) {
	if err := m.injected("CreateBook"); err != nil {
		return repository.Book{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.st.books {
		if !b.IsDeleted && b.Isbn == arg.Isbn {
			return repository.Book{}, &pgconn.PgError{Code: "23505"}
		}
	}
	b := repository.Book{
		ID:          m.id(),
		Title:       arg.Title,
		Author:      arg.Author,
		Isbn:        arg.Isbn,
		Price:       arg.Price,
		Description: arg.Description,
		CoverImage:  arg.CoverImage,
	}
	m.st.books[b.ID] = b
	return b, nil
}

func (m *memStore) CreateCart(ctx context.Context, userID int64) (repository.ShoppingCart, error) {
	if err := m.injected("CreateCart"); err != nil {
		return repository.ShoppingCart{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := repository.ShoppingCart{ID: m.id(), UserID: userID}
	m.st.carts[c.ID] = c
	return c, nil
}

func (m *memStore) CreateCartItem(ctx context.Context, arg repository.CreateCartItemParams) (repository.CartItem, error) {
	if err := m.injected("CreateCartItem"); err != nil {
		return repository.CartItem{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ci := range m.st.cartItems {
		if ci.ShoppingCartID == arg.ShoppingCartID && ci.BookID == arg.BookID {
			return repository.CartItem{}, &pgconn.PgError{Code: "23505"}
		}
	}
	ci := repository.CartItem{ID: m.id(), ShoppingCartID: arg.ShoppingCartID, BookID: arg.BookID, Quantity: arg.Quantity}
	m.st.cartItems[ci.ID] = ci
	return ci, nil
}

func (m *memStore) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (repository.Order, error) {
	if err := m.injected("CreateOrder"); err != nil {
		return repository.Order{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o := repository.Order{
		ID:              m.id(),
		UserID:          arg.UserID,
		Status:          arg.Status,
		Total:           arg.Total,
		OrderDate:       arg.OrderDate,
		ShippingAddress: arg.ShippingAddress,
	}
	m.st.orders[o.ID] = o
	return o, nil
}

func (m *memStore) CreateOrderItem(ctx context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error) {
	if err := m.injected("CreateOrderItem"); err != nil {
		return repository.OrderItem{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	it := repository.OrderItem{ID: m.id(), OrderID: arg.OrderID, BookID: arg.BookID, Quantity: arg.Quantity, Price: arg.Price}
	m.st.orderItems[it.ID] = it
	return it, nil
}

func (m *memStore) CreateUser(ctx context.Context, arg repository.CreateUserParams) (repository.User, error) {
	if err := m.injected("CreateUser"); err != nil {
		return repository.User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.st.users {
		if u.Email == arg.Email {
			return repository.User{}, &pgconn.PgError{Code: "23505"}
		}
	}
	u := repository.User{
		ID:              m.id(),
		Email:           arg.Email,
		PasswordHash:    arg.PasswordHash,
		FirstName:       arg.FirstName,
		LastName:        arg.LastName,
		ShippingAddress: arg.ShippingAddress,
	}
	m.st.users[u.ID] = u
	return u, nil
}

func (m *memStore) DeleteCartItem(ctx context.Context, id int64) error {
	if err := m.injected("DeleteCartItem"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.st.cartItems, id)
	return nil
}

func (m *memStore) DeleteCartItems(ctx context.Context, ids []int64) (int64, error) {
	if err := m.injected("DeleteCartItems"); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := m.st.cartItems[id]; ok {
			delete(m.st.cartItems, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) GetBookByID(ctx context.Context, id int64) (repository.Book, error) {
	if err := m.injected("GetBookByID"); err != nil {
		return repository.Book{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.st.books[id]
	if !ok || b.IsDeleted {
		return repository.Book{}, pgx.ErrNoRows
	}
	return b, nil
}

func (m *memStore) GetBookByISBN(ctx context.Context, isbn string) (repository.Book, error) {
	if err := m.injected("GetBookByISBN"); err != nil {
		return repository.Book{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.st.books {
		if !b.IsDeleted && b.Isbn == isbn {
			return b, nil
		}
	}
	return repository.Book{}, pgx.ErrNoRows
}

func (m *memStore) GetCartByUserEmail(ctx context.Context, email string) (repository.ShoppingCart, error) {
	if err := m.injected("GetCartByUserEmail"); err != nil {
		return repository.ShoppingCart{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.st.users {
		if u.Email != email || u.IsDeleted {
			continue
		}
		for _, c := range m.st.carts {
			if c.UserID == u.ID && !c.IsDeleted {
				return c, nil
			}
		}
	}
	return repository.ShoppingCart{}, pgx.ErrNoRows
}

func (m *memStore) GetCartItemByBook(ctx context.Context, arg repository.GetCartItemByBookParams) (repository.CartItem, error) {
	if err := m.injected("GetCartItemByBook"); err != nil {
		return repository.CartItem{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ci := range m.st.cartItems {
		if ci.ShoppingCartID == arg.ShoppingCartID && ci.BookID == arg.BookID {
			return ci, nil
		}
	}
	return repository.CartItem{}, pgx.ErrNoRows
}

func (m *memStore) GetCartItemForCart(ctx context.Context, arg repository.GetCartItemForCartParams) (repository.CartItem, error) {
	if err := m.injected("GetCartItemForCart"); err != nil {
		return repository.CartItem{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ci, ok := m.st.cartItems[arg.ID]
	if !ok || ci.ShoppingCartID != arg.ShoppingCartID {
		return repository.CartItem{}, pgx.ErrNoRows
	}
	return ci, nil
}

func (m *memStore) CreateCategory(ctx context.Context, arg repository.CreateCategoryParams) (repository.Category, error) {
	if err := m.injected("CreateCategory"); err != nil {
		return repository.Category{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := repository.Category{ID: m.id(), Name: arg.Name, Description: arg.Description}
	m.st.categories[c.ID] = c
	return c, nil
}

func (m *memStore) UpdateCategory(ctx context.Context, arg repository.UpdateCategoryParams) (repository.Category, error) {
	if err := m.injected("UpdateCategory"); err != nil {
		return repository.Category{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.st.categories[arg.ID]
	if !ok || c.IsDeleted {
		return repository.Category{}, pgx.ErrNoRows
	}
	c.Name = arg.Name
	c.Description = arg.Description
	m.st.categories[c.ID] = c
	return c, nil
}

func (m *memStore) SoftDeleteCategory(ctx context.Context, id int64) (int64, error) {
	if err := m.injected("SoftDeleteCategory"); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.st.categories[id]
	if !ok || c.IsDeleted {
		return 0, nil
	}
	c.IsDeleted = true
	m.st.categories[id] = c
	return 1, nil
}

func (m *memStore) GetCategoryByID(ctx context.Context, id int64) (repository.Category, error) {
	if err := m.injected("GetCategoryByID"); err != nil {
		return repository.Category{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.st.categories[id]
	if !ok || c.IsDeleted {
		return repository.Category{}, pgx.ErrNoRows
	}
	return c, nil
}

func (m *memStore) GetOrderByID(ctx context.Context, id int64) (repository.Order, error) {
	if err := m.injected("GetOrderByID"); err != nil {
		return repository.Order{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.st.orders[id]
	if !ok || o.IsDeleted {
		return repository.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (m *memStore) GetOrderForUser(ctx context.Context, arg repository.GetOrderForUserParams) (repository.Order, error) {
	if err := m.injected("GetOrderForUser"); err != nil {
		return repository.Order{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.st.orders[arg.ID]
	if !ok || o.IsDeleted || o.UserID != arg.UserID {
		return repository.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (m *memStore) GetOrderItemForOrder(ctx context.Context, arg repository.GetOrderItemForOrderParams) (repository.OrderItem, error) {
	if err := m.injected("GetOrderItemForOrder"); err != nil {
		return repository.OrderItem{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.st.orderItems[arg.ID]
	if !ok || it.IsDeleted || it.OrderID != arg.OrderID {
		return repository.OrderItem{}, pgx.ErrNoRows
	}
	return it, nil
}

func (m *memStore) GetRoleByName(ctx context.Context, name string) (repository.Role, error) {
	if err := m.injected("GetRoleByName"); err != nil {
		return repository.Role{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.st.roles[name]
	if !ok {
		return repository.Role{}, pgx.ErrNoRows
	}
	return r, nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (repository.User, error) {
	if err := m.injected("GetUserByEmail"); err != nil {
		return repository.User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.st.users {
		if u.Email == email && !u.IsDeleted {
			return u, nil
		}
	}
	return repository.User{}, pgx.ErrNoRows
}

func (m *memStore) ListBookCategoryIDs(ctx context.Context, bookIds []int64) ([]repository.BooksCategory, error) {
	if err := m.injected("ListBookCategoryIDs"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []repository.BooksCategory{}
	for _, id := range bookIds {
		for _, c := range m.st.bookCats[id] {
			if m.st.categories[c].IsDeleted {
				continue
			}
			out = append(out, repository.BooksCategory{BookID: id, CategoryID: c})
		}
	}
	return out, nil
}

// ListBooks ignores the filter expression; predicate semantics are covered in package catalog.
func (m *memStore) ListBooks(ctx context.Context, arg repository.ListBooksParams) ([]repository.Book, error) {
	if err := m.injected("ListBooks"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastListBooks = arg
	out := []repository.Book{}
	for _, b := range m.st.books {
		if !b.IsDeleted {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b repository.Book) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *memStore) ListBooksByCategoryID(ctx context.Context, arg repository.ListBooksByCategoryIDParams) ([]repository.Book, error) {
	if err := m.injected("ListBooksByCategoryID"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []repository.Book{}
	for id, cats := range m.st.bookCats {
		if b, ok := m.st.books[id]; ok && !b.IsDeleted && slices.Contains(cats, arg.CategoryID) {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b repository.Book) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *memStore) ListCartItems(ctx context.Context, shoppingCartID int64) ([]repository.CartItem, error) {
	if err := m.injected("ListCartItems"); err != nil {
		return nil, err
	}
	return m.cartLines(shoppingCartID), nil
}

func (m *memStore) ListCartItemsPage(ctx context.Context, arg repository.ListCartItemsPageParams) ([]repository.ListCartItemsPageRow, error) {
	if err := m.injected("ListCartItemsPage"); err != nil {
		return nil, err
	}
	lines := m.cartLines(arg.ShoppingCartID)
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []repository.ListCartItemsPageRow{}
	for _, ci := range lines {
		title := ""
		if b, ok := m.st.books[ci.BookID]; ok && !b.IsDeleted {
			title = b.Title
		}
		out = append(out, repository.ListCartItemsPageRow{
			ID:             ci.ID,
			ShoppingCartID: ci.ShoppingCartID,
			BookID:         ci.BookID,
			Quantity:       ci.Quantity,
			BookTitle:      title,
		})
	}
	return out, nil
}

func (m *memStore) ListCategories(ctx context.Context, arg repository.ListCategoriesParams) ([]repository.Category, error) {
	if err := m.injected("ListCategories"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []repository.Category{}
	for _, c := range m.st.categories {
		if !c.IsDeleted {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b repository.Category) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *memStore) ListOrderItems(ctx context.Context, orderIds []int64) ([]repository.OrderItem, error) {
	if err := m.injected("ListOrderItems"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []repository.OrderItem{}
	for _, it := range m.st.orderItems {
		if slices.Contains(orderIds, it.OrderID) && !it.IsDeleted {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b repository.OrderItem) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *memStore) ListOrderItemsPage(ctx context.Context, arg repository.ListOrderItemsPageParams) ([]repository.OrderItem, error) {
	return m.ListOrderItems(ctx, []int64{arg.OrderID})
}

func (m *memStore) ListOrdersByUserID(ctx context.Context, arg repository.ListOrdersByUserIDParams) ([]repository.Order, error) {
	if err := m.injected("ListOrdersByUserID"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []repository.Order{}
	for _, o := range m.st.orders {
		if o.UserID == arg.UserID && !o.IsDeleted {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b repository.Order) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *memStore) ListUserRoleNames(ctx context.Context, userID int64) ([]string, error) {
	if err := m.injected("ListUserRoleNames"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []string{}
	for name, r := range m.st.roles {
		if slices.Contains(m.st.userRoles[userID], r.ID) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (m *memStore) LockCart(ctx context.Context, id int64) (int64, error) {
	if err := m.injected("LockCart"); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.st.carts[id]; !ok {
		return 0, pgx.ErrNoRows
	}
	return id, nil
}

func (m *memStore) SetBookCategories(ctx context.Context, arg repository.SetBookCategoriesParams) error {
	if err := m.injected("SetBookCategories"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.bookCats[arg.BookID] = slices.Clone(arg.CategoryIds)
	return nil
}

func (m *memStore) SoftDeleteBook(ctx context.Context, id int64) (int64, error) {
	if err := m.injected("SoftDeleteBook"); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.st.books[id]
	if !ok || b.IsDeleted {
		return 0, nil
	}
	b.IsDeleted = true
	m.st.books[id] = b
	return 1, nil
}

func (m *memStore) UpdateBook(ctx context.Context, arg repository.UpdateBookParams) (repository.Book, error) {
	if err := m.injected("UpdateBook"); err != nil {
		return repository.Book{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.st.books[arg.ID]
	if !ok || b.IsDeleted {
		return repository.Book{}, pgx.ErrNoRows
	}
	b.Title, b.Author, b.Isbn, b.Price = arg.Title, arg.Author, arg.Isbn, arg.Price
	b.Description, b.CoverImage = arg.Description, arg.CoverImage
	m.st.books[arg.ID] = b
	return b, nil
}

func (m *memStore) UpdateCartItemQuantity(ctx context.Context, arg repository.UpdateCartItemQuantityParams) (repository.CartItem, error) {
	if err := m.injected("UpdateCartItemQuantity"); err != nil {
		return repository.CartItem{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ci, ok := m.st.cartItems[arg.ID]
	if !ok {
		return repository.CartItem{}, pgx.ErrNoRows
	}
	ci.Quantity = arg.Quantity
	m.st.cartItems[arg.ID] = ci
	return ci, nil
}

func (m *memStore) UpdateOrderStatus(ctx context.Context, arg repository.UpdateOrderStatusParams) (repository.Order, error) {
	if err := m.injected("UpdateOrderStatus"); err != nil {
		return repository.Order{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.st.orders[arg.ID]
	if !ok || o.IsDeleted {
		return repository.Order{}, pgx.ErrNoRows
	}
	o.Status = arg.Status
	m.st.orders[arg.ID] = o
	return o, nil
}

var _ repository.Store = (*memStore)(nil)
