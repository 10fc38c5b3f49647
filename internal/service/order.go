package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/shelf/internal/domain"
	"github.com/dukerupert/shelf/internal/events"
	"github.com/dukerupert/shelf/internal/repository"
	"github.com/dukerupert/shelf/internal/telemetry"
)

// OrderService places orders from carts and serves order history.
type OrderService interface {
	// PlaceOrder converts every line of the user's cart into one PENDING order.
	// Either the whole order is written and the consumed lines removed, or nothing changes.
	PlaceOrder(ctx context.Context, email, shippingAddress string) (*domain.Order, error)

	ListOrders(ctx context.Context, email string, page domain.PageRequest) ([]domain.Order, error)

	// UpdateStatus sets the status of any order by name.
	UpdateStatus(ctx context.Context, orderID int64, status string) (*domain.OrderStatusUpdate, error)

	// ListOrderItems and GetOrderItem only see orders owned by the user.
	ListOrderItems(ctx context.Context, email string, orderID int64, page domain.PageRequest) ([]domain.OrderItem, error)
	GetOrderItem(ctx context.Context, email string, orderID, itemID int64) (*domain.OrderItem, error)
}

type orderService struct {
	store     repository.Store
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService instance. A nil publisher disables events.
func NewOrderService(store repository.Store, publisher events.Publisher, logger *slog.Logger) OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &orderService{
		store:     store,
		publisher: publisher,
		logger:    logger.With("service", "order"),
		now:       time.Now,
	}
}

// pricedLine is a cart line with its frozen subtotal.
type pricedLine struct {
	line     repository.CartItem
	subtotal decimal.Decimal
}

func (s *orderService) PlaceOrder(ctx context.Context, email, shippingAddress string) (*domain.Order, error) {
	const op = "order.place"

	user, err := s.userFor(ctx, op, email)
	if err != nil {
		return nil, err
	}

	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		shippingAddress = strings.TrimSpace(user.ShippingAddress.String)
	}
	if shippingAddress == "" {
		return nil, domain.Invalid(op, "Shipping address is required")
	}

	cart, err := s.store.GetCartByUserEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			s.logger.Error("authenticated user has no shopping cart", "email", email)
			return nil, notFound(domain.ErrCartNotFound, op, "There is no shopping cart by user id: %d", user.ID)
		}
		return nil, domain.Internal(err, op, "failed to get shopping cart")
	}

	var (
		order repository.Order
		items []repository.OrderItem
	)
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.LockCart(ctx, cart.ID); err != nil {
			return err
		}

		lines, err := q.ListCartItems(ctx, cart.ID)
		if err != nil {
			return err
		}

		priced := make([]pricedLine, 0, len(lines))
		total := decimal.Zero
		for _, line := range lines {
			book, err := q.GetBookByID(ctx, line.BookID)
			if err != nil {
				if repository.IsNotFound(err) {
					s.logger.Error("cart line references missing book",
						"cart_id", cart.ID, "line_id", line.ID, "book_id", line.BookID)
					return notFound(domain.ErrBookNotFound, op, "There is no book by id: %d", line.BookID)
				}
				return err
			}
			subtotal := repository.Decimal(book.Price).Mul(decimal.NewFromInt32(line.Quantity))
			total = total.Add(subtotal)
			priced = append(priced, pricedLine{line: line, subtotal: subtotal})
		}

		if !total.IsPositive() {
			return rejected(domain.ErrEmptyCart, op, "The order cannot be processed, since your shopping cart is empty! Add a few books there")
		}
		if total.GreaterThan(domain.MaxOrderTotal) {
			return rejected(domain.ErrOrderTooLarge, op, "The order total %s exceeds %s", total, domain.MaxOrderTotal)
		}

		order, err = q.CreateOrder(ctx, repository.CreateOrderParams{
			UserID:          user.ID,
			Status:          string(domain.OrderStatusPending),
			Total:           repository.Numeric(total),
			OrderDate:       repository.Timestamptz(s.now()),
			ShippingAddress: shippingAddress,
		})
		if err != nil {
			return err
		}

		consumed := make([]int64, 0, len(priced))
		items = make([]repository.OrderItem, 0, len(priced))
		for _, p := range priced {
			item, err := q.CreateOrderItem(ctx, repository.CreateOrderItemParams{
				OrderID:  order.ID,
				BookID:   p.line.BookID,
				Quantity: p.line.Quantity,
				Price:    repository.Numeric(p.subtotal),
			})
			if err != nil {
				return err
			}
			items = append(items, item)
			consumed = append(consumed, p.line.ID)
		}

		deleted, err := q.DeleteCartItems(ctx, consumed)
		if err != nil {
			return err
		}
		if deleted != int64(len(consumed)) {
			return fmt.Errorf("removed %d of %d consumed cart lines", deleted, len(consumed))
		}
		return nil
	})
	if err != nil {
		s.recordPlacementFailure(err)
		return nil, txError(err, op, "failed to place order")
	}

	domainItems := make([]domain.OrderItem, len(items))
	for i, it := range items {
		domainItems[i] = toDomainOrderItem(it)
	}
	placed := toDomainOrder(order, domainItems)

	if telemetry.Business != nil {
		telemetry.Business.OrdersPlaced.Inc()
		telemetry.Business.OrderValue.Observe(placed.Total.InexactFloat64())
		telemetry.Business.OrderItemCount.Observe(float64(len(placed.Items)))
	}
	s.logger.Info("order placed",
		"order_id", placed.ID, "user_id", placed.UserID, "total", placed.Total.String(), "items", len(placed.Items))

	event := events.OrderPlaced{
		OrderID:   placed.ID,
		UserID:    placed.UserID,
		Total:     placed.Total,
		ItemCount: len(placed.Items),
		PlacedAt:  placed.OrderDate,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Warn("failed to publish order placed event", "order_id", placed.ID, "error", err)
		if telemetry.Business != nil {
			telemetry.Business.EventsFailed.WithLabelValues("order_placed").Inc()
		}
	}

	return &placed, nil
}

func (s *orderService) recordPlacementFailure(err error) {
	if telemetry.Business == nil {
		return
	}
	reason := "internal"
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		reason = "empty_cart"
	case errors.Is(err, domain.ErrBookNotFound):
		reason = "missing_book"
	}
	telemetry.Business.OrderPlacementFails.WithLabelValues(reason).Inc()
}

func (s *orderService) ListOrders(ctx context.Context, email string, page domain.PageRequest) ([]domain.Order, error) {
	const op = "order.list"

	user, err := s.userFor(ctx, op, email)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListOrdersByUserID(ctx, repository.ListOrdersByUserIDParams{
		UserID: user.ID,
		Limit:  page.Limit(),
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list orders")
	}

	orders := make([]domain.Order, 0, len(rows))
	if len(rows) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	itemRows, err := s.store.ListOrderItems(ctx, ids)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list order items")
	}
	byOrder := make(map[int64][]domain.OrderItem, len(rows))
	for _, it := range itemRows {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], toDomainOrderItem(it))
	}

	for _, r := range rows {
		orders = append(orders, toDomainOrder(r, byOrder[r.ID]))
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID int64, status string) (*domain.OrderStatusUpdate, error) {
	const op = "order.update_status"

	current, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound(domain.ErrOrderNotFound, op, "There is no order by id: %d", orderID)
		}
		return nil, domain.Internal(err, op, "failed to get order")
	}

	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, rejected(domain.ErrInvalidStatus, op, "The status is not correct! Make sure the status is correctly written: %q", status)
	}
	if from := domain.OrderStatus(current.Status); !from.CanMoveTo(next) {
		return nil, rejected(domain.ErrInvalidStatus, op, "Order %d cannot move from %s back to %s", orderID, from, next)
	}

	updated, err := s.store.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
		ID:     orderID,
		Status: string(next),
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound(domain.ErrOrderNotFound, op, "There is no order by id: %d", orderID)
		}
		return nil, domain.Internal(err, op, "failed to update order status")
	}

	if telemetry.Business != nil {
		telemetry.Business.OrderStatusUpdates.WithLabelValues(string(next)).Inc()
	}
	s.logger.Info("order status updated", "order_id", updated.ID, "status", updated.Status)

	return &domain.OrderStatusUpdate{
		ID:     updated.ID,
		Status: domain.OrderStatus(updated.Status),
	}, nil
}

func (s *orderService) ListOrderItems(ctx context.Context, email string, orderID int64, page domain.PageRequest) ([]domain.OrderItem, error) {
	const op = "order.list_items"

	order, err := s.ownedOrder(ctx, op, email, orderID)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListOrderItemsPage(ctx, repository.ListOrderItemsPageParams{
		OrderID: order.ID,
		Limit:   page.Limit(),
		Offset:  page.Offset(),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list order items")
	}

	items := make([]domain.OrderItem, len(rows))
	for i, r := range rows {
		items[i] = toDomainOrderItem(r)
	}
	return items, nil
}

func (s *orderService) GetOrderItem(ctx context.Context, email string, orderID, itemID int64) (*domain.OrderItem, error) {
	const op = "order.get_item"

	order, err := s.ownedOrder(ctx, op, email, orderID)
	if err != nil {
		return nil, err
	}

	row, err := s.store.GetOrderItemForOrder(ctx, repository.GetOrderItemForOrderParams{
		OrderID: order.ID,
		ID:      itemID,
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound(domain.ErrOrderItemNotFound, op, "There is no order-item by id: %d", itemID)
		}
		return nil, domain.Internal(err, op, "failed to get order item")
	}

	item := toDomainOrderItem(row)
	return &item, nil
}

func (s *orderService) userFor(ctx context.Context, op, email string) (repository.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return user, notFound(domain.ErrUserNotFound, op, "There is no user by email: %s", email)
		}
		return user, domain.Internal(err, op, "failed to get user")
	}
	return user, nil
}

// ownedOrder resolves orderID among the user's orders. A foreign order is reported as missing.
func (s *orderService) ownedOrder(ctx context.Context, op, email string, orderID int64) (repository.Order, error) {
	user, err := s.userFor(ctx, op, email)
	if err != nil {
		return repository.Order{}, err
	}

	order, err := s.store.GetOrderForUser(ctx, repository.GetOrderForUserParams{
		UserID: user.ID,
		ID:     orderID,
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return order, notFound(domain.ErrOrderNotFound, op, "There is no order by id: %d", orderID)
		}
		return order, domain.Internal(err, op, "failed to get order")
	}
	return order, nil
}
