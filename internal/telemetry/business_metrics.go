package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for bookstore activity.
type BusinessMetrics struct {
	// Catalog
	BookSearches *prometheus.CounterVec
	BooksCreated prometheus.Counter
	BooksDeleted prometheus.Counter

	// Cart
	CartLinesAdded   *prometheus.CounterVec
	CartLinesUpdated prometheus.Counter
	CartLinesRemoved prometheus.Counter

	// Orders
	OrdersPlaced        prometheus.Counter
	OrderPlacementFails *prometheus.CounterVec
	OrderValue          prometheus.Histogram
	OrderItemCount      prometheus.Histogram
	OrderStatusUpdates  *prometheus.CounterVec

	// Accounts
	Signups      prometheus.Counter
	Logins       *prometheus.CounterVec
	EventsFailed *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics on the default registry.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	return NewBusinessMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewBusinessMetricsWith registers the metrics on reg.
func NewBusinessMetricsWith(reg prometheus.Registerer, namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "shelf"
	}

	subsystem := "business"
	factory := promauto.With(reg)

	return &BusinessMetrics{
		// =======================================================================
		// Catalog
		// =======================================================================
		BookSearches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "book_searches_total",
				Help:      "Total catalog searches by applied filter",
			},
			[]string{"filter"}, // filter: author, price, author_price, none
		),
		BooksCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "books_created_total",
				Help:      "Total books added to the catalog",
			},
		),
		BooksDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "books_deleted_total",
				Help:      "Total books soft deleted from the catalog",
			},
		),

		// =======================================================================
		// Cart
		// =======================================================================
		CartLinesAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_lines_added_total",
				Help:      "Total add to cart actions",
			},
			[]string{"outcome"}, // outcome: created, merged
		),
		CartLinesUpdated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_lines_updated_total",
				Help:      "Total cart line quantity changes",
			},
		),
		CartLinesRemoved: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_lines_removed_total",
				Help:      "Total cart lines removed",
			},
		),

		// =======================================================================
		// Orders
		// =======================================================================
		OrdersPlaced: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_placed_total",
				Help:      "Total orders placed",
			},
		),
		OrderPlacementFails: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_placement_failures_total",
				Help:      "Total rejected order placements",
			},
			[]string{"reason"}, // reason: empty_cart, missing_book, internal
		),
		OrderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value",
				Help:      "Order total in store currency",
				Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
		OrderItemCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of items per order",
				Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
			},
		),
		OrderStatusUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_status_updates_total",
				Help:      "Total order status changes by new status",
			},
			[]string{"status"},
		),

		// =======================================================================
		// Accounts
		// =======================================================================
		Signups: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "signups_total",
				Help:      "Total user registrations",
			},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "logins_total",
				Help:      "Total login attempts",
			},
			[]string{"result"}, // result: success, failure
		),
		EventsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_failed_total",
				Help:      "Total events that could not be published",
			},
			[]string{"event"},
		),
	}
}

// Business is the global business metrics instance. It is nil until InitBusinessMetrics runs.
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance.
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace)
	return Business
}
