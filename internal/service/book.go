package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/shelf/internal/catalog"
	"github.com/dukerupert/shelf/internal/domain"
	"github.com/dukerupert/shelf/internal/repository"
	"github.com/dukerupert/shelf/internal/telemetry"
)

// BookService provides catalog reads, search and admin maintenance.
type BookService interface {
	Create(ctx context.Context, input domain.BookInput) (*domain.Book, error)
	Get(ctx context.Context, id int64) (*domain.Book, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Book, error)
	Search(ctx context.Context, params domain.BookSearchParameters, page domain.PageRequest) ([]domain.Book, error)
	ListByCategory(ctx context.Context, categoryID int64, page domain.PageRequest) ([]domain.Book, error)
	Update(ctx context.Context, id int64, input domain.BookInput) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	store   repository.Store
	builder *catalog.Builder
	logger  *slog.Logger
}

// NewBookService creates a BookService over store. Search predicates come from builder.
func NewBookService(store repository.Store, builder *catalog.Builder, logger *slog.Logger) BookService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bookService{
		store:   store,
		builder: builder,
		logger:  logger.With("service", "book"),
	}
}

func (s *bookService) Create(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
	const op = "book.create"

	if err := checkPrice(op, input.Price); err != nil {
		return nil, err
	}
	if err := s.ensureISBNAvailable(ctx, op, input.ISBN, 0); err != nil {
		return nil, err
	}
	if err := s.ensureCategoriesExist(ctx, op, input.CategoryIDs); err != nil {
		return nil, err
	}

	var created repository.Book
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		created, err = q.CreateBook(ctx, repository.CreateBookParams{
			Title:       input.Title,
			Author:      input.Author,
			Isbn:        input.ISBN,
			Price:       repository.Numeric(input.Price),
			Description: repository.Text(input.Description),
			CoverImage:  repository.Text(input.CoverImage),
		})
		if err != nil {
			return err
		}
		return q.SetBookCategories(ctx, repository.SetBookCategoriesParams{
			BookID:      created.ID,
			CategoryIds: sortedCopy(input.CategoryIDs),
		})
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, duplicateISBN(op, input.ISBN)
		}
		return nil, txError(err, op, "failed to create book")
	}

	if telemetry.Business != nil {
		telemetry.Business.BooksCreated.Inc()
	}
	s.logger.Info("book created", "book_id", created.ID, "isbn", created.Isbn)

	book := toDomainBook(created, sortedCopy(input.CategoryIDs))
	return &book, nil
}

func (s *bookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	const op = "book.get"

	row, err := s.store.GetBookByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound(domain.ErrBookNotFound, op, "There is no book by id: %d", id)
		}
		return nil, domain.Internal(err, op, "failed to get book")
	}

	books, err := s.withCategories(ctx, op, []repository.Book{row})
	if err != nil {
		return nil, err
	}
	return &books[0], nil
}

func (s *bookService) List(ctx context.Context, page domain.PageRequest) ([]domain.Book, error) {
	return s.list(ctx, "book.list", catalog.All(), page)
}

func (s *bookService) Search(ctx context.Context, params domain.BookSearchParameters, page domain.PageRequest) ([]domain.Book, error) {
	const op = "book.search"

	spec, err := s.builder.Build(params)
	if err != nil {
		if domain.ErrorCode(err) == domain.EINTERNAL {
			s.logger.Error("search specification failed", "error", err)
		}
		return nil, err
	}

	if telemetry.Business != nil {
		telemetry.Business.BookSearches.WithLabelValues(searchFilterLabel(params)).Inc()
	}

	return s.list(ctx, op, spec, page)
}

func (s *bookService) list(ctx context.Context, op string, spec catalog.Specification, page domain.PageRequest) ([]domain.Book, error) {
	arg := repository.ListBooksParams{
		Filter: spec.Expression(),
		Limit:  page.Limit(),
		Offset: page.Offset(),
	}
	for _, o := range page.Sort {
		arg.OrderBy = append(arg.OrderBy, repository.BookOrder{Column: o.Field, Desc: o.Desc})
	}

	rows, err := s.store.ListBooks(ctx, arg)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list books")
	}
	return s.withCategories(ctx, op, rows)
}

func (s *bookService) ListByCategory(ctx context.Context, categoryID int64, page domain.PageRequest) ([]domain.Book, error) {
	const op = "book.list_by_category"

	if _, err := s.store.GetCategoryByID(ctx, categoryID); err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound(domain.ErrCategoryNotFound, op, "There is no category by id: %d", categoryID)
		}
		return nil, domain.Internal(err, op, "failed to get category")
	}

	rows, err := s.store.ListBooksByCategoryID(ctx, repository.ListBooksByCategoryIDParams{
		CategoryID: categoryID,
		Limit:      page.Limit(),
		Offset:     page.Offset(),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list books by category")
	}
	return s.withCategories(ctx, op, rows)
}

func (s *bookService) Update(ctx context.Context, id int64, input domain.BookInput) (*domain.Book, error) {
	const op = "book.update"

	if err := checkPrice(op, input.Price); err != nil {
		return nil, err
	}
	if _, err := s.store.GetBookByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound(domain.ErrBookNotFound, op, "There is no book by id: %d", id)
		}
		return nil, domain.Internal(err, op, "failed to get book")
	}
	if err := s.ensureISBNAvailable(ctx, op, input.ISBN, id); err != nil {
		return nil, err
	}
	if err := s.ensureCategoriesExist(ctx, op, input.CategoryIDs); err != nil {
		return nil, err
	}

	var updated repository.Book
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		updated, err = q.UpdateBook(ctx, repository.UpdateBookParams{
			ID:          id,
			Title:       input.Title,
			Author:      input.Author,
			Isbn:        input.ISBN,
			Price:       repository.Numeric(input.Price),
			Description: repository.Text(input.Description),
			CoverImage:  repository.Text(input.CoverImage),
		})
		if err != nil {
			return err
		}
		return q.SetBookCategories(ctx, repository.SetBookCategoriesParams{
			BookID:      id,
			CategoryIds: sortedCopy(input.CategoryIDs),
		})
	})
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, notFound(domain.ErrBookNotFound, op, "There is no book by id: %d", id)
		case repository.IsUniqueViolation(err):
			return nil, duplicateISBN(op, input.ISBN)
		}
		return nil, txError(err, op, "failed to update book")
	}

	book := toDomainBook(updated, sortedCopy(input.CategoryIDs))
	return &book, nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	const op = "book.delete"

	n, err := s.store.SoftDeleteBook(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to delete book")
	}
	if n == 0 {
		return notFound(domain.ErrBookNotFound, op, "There is no book by id: %d", id)
	}

	if telemetry.Business != nil {
		telemetry.Business.BooksDeleted.Inc()
	}
	s.logger.Info("book deleted", "book_id", id)
	return nil
}

func checkPrice(op string, price decimal.Decimal) error {
	switch err := domain.CheckPrice(price); err {
	case nil:
		return nil
	case domain.ErrNegativePrice:
		return rejected(domain.ErrNegativePrice, op, "Price must not be negative: %s", price)
	default:
		return rejected(domain.ErrPriceOutOfRange, op, "Price %s must not exceed %s or have more than %d decimals", price, domain.MaxPrice, domain.PriceScale)
	}
}

// ensureISBNAvailable fails when another live book already uses isbn.
// selfID is the book being updated, or 0 on create.
func (s *bookService) ensureISBNAvailable(ctx context.Context, op, isbn string, selfID int64) error {
	existing, err := s.store.GetBookByISBN(ctx, isbn)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return duplicateISBN(op, isbn)
		}
		return nil
	case repository.IsNotFound(err):
		return nil
	default:
		return domain.Internal(err, op, "failed to check isbn")
	}
}

func (s *bookService) ensureCategoriesExist(ctx context.Context, op string, ids []int64) error {
	for _, id := range ids {
		if _, err := s.store.GetCategoryByID(ctx, id); err != nil {
			if repository.IsNotFound(err) {
				return notFound(domain.ErrCategoryNotFound, op, "There is no category by id: %d", id)
			}
			return domain.Internal(err, op, "failed to get category")
		}
	}
	return nil
}

// withCategories loads category membership for rows in one query.
func (s *bookService) withCategories(ctx context.Context, op string, rows []repository.Book) ([]domain.Book, error) {
	books := make([]domain.Book, 0, len(rows))
	if len(rows) == 0 {
		return books, nil
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}

	links, err := s.store.ListBookCategoryIDs(ctx, ids)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load book categories")
	}
	byBook := make(map[int64][]int64, len(rows))
	for _, l := range links {
		byBook[l.BookID] = append(byBook[l.BookID], l.CategoryID)
	}

	for _, r := range rows {
		books = append(books, toDomainBook(r, byBook[r.ID]))
	}
	return books, nil
}

func duplicateISBN(op, isbn string) error {
	return rejected(domain.ErrDuplicateISBN, op, "Can't save book, ISBN %s is already in use", isbn)
}

func searchFilterLabel(params domain.BookSearchParameters) string {
	switch {
	case len(params.Authors) > 0 && len(params.Prices) > 0:
		return "author_price"
	case len(params.Authors) > 0:
		return "author"
	case len(params.Prices) > 0:
		return "price"
	}
	return "none"
}

