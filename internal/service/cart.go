package service

import (
	"context"
	"log/slog"

	"github.com/dukerupert/shelf/internal/domain"
	"github.com/dukerupert/shelf/internal/repository"
	"github.com/dukerupert/shelf/internal/telemetry"
)

// CartService manages the authenticated user's shopping cart.
// Every mutation runs in a transaction holding the cart row lock.
type CartService interface {
	// AddLine adds quantity of a book, merging into an existing line for the same book.
	AddLine(ctx context.Context, email string, bookID int64, quantity int32) (*domain.CartLine, error)
	GetCart(ctx context.Context, email string, page domain.PageRequest) (*domain.Cart, error)
	// UpdateLine overwrites the quantity of one of the user's lines.
	UpdateLine(ctx context.Context, email string, lineID int64, quantity int32) (*domain.CartLine, error)
	RemoveLine(ctx context.Context, email string, lineID int64) error
}

type cartService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewCartService creates a new CartService instance
func NewCartService(store repository.Store, logger *slog.Logger) CartService {
	if logger == nil {
		logger = slog.Default()
	}
	return &cartService{
		store:  store,
		logger: logger.With("service", "cart"),
	}
}

func (s *cartService) AddLine(ctx context.Context, email string, bookID int64, quantity int32) (*domain.CartLine, error) {
	const op = "cart.add_line"

	if quantity < 1 || quantity > domain.MaxLineQuantity {
		return nil, rejected(domain.ErrInvalidQuantity, op, "Quantity must be between 1 and %d, got %d", domain.MaxLineQuantity, quantity)
	}

	cart, err := s.cartFor(ctx, op, email)
	if err != nil {
		return nil, err
	}

	var (
		line   repository.CartItem
		title  string
		merged bool
	)
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.LockCart(ctx, cart.ID); err != nil {
			return err
		}

		existing, err := q.GetCartItemByBook(ctx, repository.GetCartItemByBookParams{
			ShoppingCartID: cart.ID,
			BookID:         bookID,
		})
		switch {
		case err == nil:
			if int64(existing.Quantity)+int64(quantity) > int64(domain.MaxLineQuantity) {
				return rejected(domain.ErrInvalidQuantity, op, "Quantity for book %d would exceed %d", bookID, domain.MaxLineQuantity)
			}
			line, err = q.UpdateCartItemQuantity(ctx, repository.UpdateCartItemQuantityParams{
				ID:       existing.ID,
				Quantity: existing.Quantity + quantity,
			})
			if err != nil {
				return err
			}
			merged = true
			title = s.bookTitle(ctx, q, bookID)
			return nil

		case repository.IsNotFound(err):
			book, err := q.GetBookByID(ctx, bookID)
			if err != nil {
				if repository.IsNotFound(err) {
					return notFound(domain.ErrBookNotFound, op, "There is no book by id: %d", bookID)
				}
				return err
			}
			line, err = q.CreateCartItem(ctx, repository.CreateCartItemParams{
				ShoppingCartID: cart.ID,
				BookID:         bookID,
				Quantity:       quantity,
			})
			if err != nil {
				return err
			}
			title = book.Title
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, txError(err, op, "failed to add cart line")
	}

	if telemetry.Business != nil {
		outcome := "created"
		if merged {
			outcome = "merged"
		}
		telemetry.Business.CartLinesAdded.WithLabelValues(outcome).Inc()
	}

	return toCartLine(line, title), nil
}

func (s *cartService) GetCart(ctx context.Context, email string, page domain.PageRequest) (*domain.Cart, error) {
	const op = "cart.get"

	cart, err := s.cartFor(ctx, op, email)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListCartItemsPage(ctx, repository.ListCartItemsPageParams{
		ShoppingCartID: cart.ID,
		Limit:          page.Limit(),
		Offset:         page.Offset(),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list cart lines")
	}

	lines := make([]domain.CartLine, len(rows))
	for i, r := range rows {
		lines[i] = domain.CartLine{
			ID:        r.ID,
			BookID:    r.BookID,
			BookTitle: r.BookTitle,
			Quantity:  r.Quantity,
		}
	}

	return &domain.Cart{
		ID:        cart.ID,
		UserID:    cart.UserID,
		CartItems: lines,
	}, nil
}

func (s *cartService) UpdateLine(ctx context.Context, email string, lineID int64, quantity int32) (*domain.CartLine, error) {
	const op = "cart.update_line"

	if quantity < 1 || quantity > domain.MaxLineQuantity {
		return nil, rejected(domain.ErrInvalidQuantity, op, "Quantity must be between 1 and %d, got %d", domain.MaxLineQuantity, quantity)
	}

	cart, err := s.cartFor(ctx, op, email)
	if err != nil {
		return nil, err
	}

	var (
		line  repository.CartItem
		title string
	)
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.LockCart(ctx, cart.ID); err != nil {
			return err
		}
		existing, err := s.ownedLine(ctx, q, op, cart.ID, lineID)
		if err != nil {
			return err
		}
		line, err = q.UpdateCartItemQuantity(ctx, repository.UpdateCartItemQuantityParams{
			ID:       existing.ID,
			Quantity: quantity,
		})
		if err != nil {
			return err
		}
		title = s.bookTitle(ctx, q, line.BookID)
		return nil
	})
	if err != nil {
		return nil, txError(err, op, "failed to update cart line")
	}

	if telemetry.Business != nil {
		telemetry.Business.CartLinesUpdated.Inc()
	}

	return toCartLine(line, title), nil
}

func (s *cartService) RemoveLine(ctx context.Context, email string, lineID int64) error {
	const op = "cart.remove_line"

	cart, err := s.cartFor(ctx, op, email)
	if err != nil {
		return err
	}

	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.LockCart(ctx, cart.ID); err != nil {
			return err
		}
		if _, err := s.ownedLine(ctx, q, op, cart.ID, lineID); err != nil {
			return err
		}
		return q.DeleteCartItem(ctx, lineID)
	})
	if err != nil {
		return txError(err, op, "failed to remove cart line")
	}

	if telemetry.Business != nil {
		telemetry.Business.CartLinesRemoved.Inc()
	}
	return nil
}

// cartFor resolves the cart of an authenticated user. Every registered user
// owns exactly one cart, so absence is an integrity problem.
func (s *cartService) cartFor(ctx context.Context, op, email string) (repository.ShoppingCart, error) {
	cart, err := s.store.GetCartByUserEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			s.logger.Error("authenticated user has no shopping cart", "email", email)
			return cart, notFound(domain.ErrCartNotFound, op, "There is no shopping cart for user: %s", email)
		}
		return cart, domain.Internal(err, op, "failed to get shopping cart")
	}
	return cart, nil
}

// ownedLine finds lineID within cartID. Lines of other carts look missing.
func (s *cartService) ownedLine(ctx context.Context, q repository.Querier, op string, cartID, lineID int64) (repository.CartItem, error) {
	line, err := q.GetCartItemForCart(ctx, repository.GetCartItemForCartParams{
		ShoppingCartID: cartID,
		ID:             lineID,
	})
	if err != nil && repository.IsNotFound(err) {
		return line, notFound(domain.ErrCartItemNotFound, op, "There is no cart-item by id: %d", lineID)
	}
	return line, err
}

func (s *cartService) bookTitle(ctx context.Context, q repository.Querier, bookID int64) string {
	book, err := q.GetBookByID(ctx, bookID)
	if err != nil {
		if repository.IsNotFound(err) {
			s.logger.Error("cart line references missing book", "book_id", bookID)
		}
		return ""
	}
	return book.Title
}

func toCartLine(r repository.CartItem, title string) *domain.CartLine {
	return &domain.CartLine{
		ID:        r.ID,
		BookID:    r.BookID,
		BookTitle: title,
		Quantity:  r.Quantity,
	}
}
