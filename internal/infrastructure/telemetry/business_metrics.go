// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// CheckoutMetrics provides business metrics for the storefront checkout flow.
// It tracks cart activity and order placement.
type CheckoutMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	cartMutationTotal *Counter
	orderPlacedTotal  *Counter

	// Histogram metrics (distributions)
	orderTotalAmount *Histogram
}

// CheckoutMetricsConfig holds configuration for checkout metrics.
type CheckoutMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewCheckoutMetrics creates a new CheckoutMetrics instance.
func NewCheckoutMetrics(cfg CheckoutMetricsConfig) (*CheckoutMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cm := &CheckoutMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	cm.cartMutationTotal, err = NewCounter(
		cfg.Meter,
		"storefront_cart_mutation_total",
		"Total number of cart mutations",
		"{mutations}",
	)
	if err != nil {
		return nil, err
	}

	cm.orderPlacedTotal, err = NewCounter(
		cfg.Meter,
		"storefront_order_placed_total",
		"Total number of order placement attempts",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	cm.orderTotalAmount, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "storefront_order_total_amount",
		Description: "Distribution of order grand totals including delivery fee",
		Unit:        "{currency}",
		Boundaries:  OrderAmountBuckets,
	})
	if err != nil {
		return nil, err
	}

	return cm, nil
}

// =============================================================================
// Cart Metrics
// =============================================================================

// CartMutation labels the kind of cart change for metrics.
type CartMutation string

const (
	CartMutationAdd       CartMutation = "add"
	CartMutationDecrement CartMutation = "decrement"
	CartMutationRemove    CartMutation = "remove"
)

// RecordCartMutation records a cart line change.
// This should be called from the application layer after the change is persisted.
func (cm *CheckoutMetrics) RecordCartMutation(ctx context.Context, mutation CartMutation) {
	cm.cartMutationTotal.Inc(ctx,
		AttrCartMutation.String(string(mutation)),
	)
}

// =============================================================================
// Order Metrics
// =============================================================================

// OrderOutcome labels the result of an order placement for metrics.
type OrderOutcome string

const (
	OrderOutcomePlaced    OrderOutcome = "placed"
	OrderOutcomeEmptyCart OrderOutcome = "empty_cart"
	OrderOutcomeRejected  OrderOutcome = "rejected"
	OrderOutcomeFailed    OrderOutcome = "failed"
)

// RecordOrderPlaced records a successful order placement together with its
// grand total.
func (cm *CheckoutMetrics) RecordOrderPlaced(ctx context.Context, total decimal.Decimal) {
	cm.orderPlacedTotal.Inc(ctx,
		AttrOrderOutcome.String(string(OrderOutcomePlaced)),
	)
	amount, _ := total.Float64()
	cm.orderTotalAmount.Record(ctx, amount)
}

// RecordOrderRejected records an order placement attempt that did not produce
// an order.
func (cm *CheckoutMetrics) RecordOrderRejected(ctx context.Context, outcome OrderOutcome) {
	cm.orderPlacedTotal.Inc(ctx,
		AttrOrderOutcome.String(string(outcome)),
	)
}

// OrderAmountBuckets are bucket boundaries for order grand totals.
var OrderAmountBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewCheckoutMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
