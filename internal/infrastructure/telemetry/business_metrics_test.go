package telemetry_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

func TestNewCheckoutMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	cm, err := telemetry.NewCheckoutMetrics(telemetry.CheckoutMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})

	require.NoError(t, err)
	require.NotNil(t, cm)
}

func TestNewCheckoutMetrics_NilMeter(t *testing.T) {
	cm, err := telemetry.NewCheckoutMetrics(telemetry.CheckoutMetricsConfig{
		Meter:  nil,
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, cm)
	assert.Equal(t, "NewCheckoutMetrics: meter cannot be nil", err.Error())
}

func TestCheckoutMetrics_RecordCartMutation(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	cm, err := telemetry.NewCheckoutMetrics(telemetry.CheckoutMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	cm.RecordCartMutation(ctx, telemetry.CartMutationAdd)
	cm.RecordCartMutation(ctx, telemetry.CartMutationDecrement)
	cm.RecordCartMutation(ctx, telemetry.CartMutationRemove)
}

func TestCheckoutMetrics_RecordOrderPlaced(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	cm, err := telemetry.NewCheckoutMetrics(telemetry.CheckoutMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic and record both count and amount
	cm.RecordOrderPlaced(ctx, decimal.NewFromFloat(15.00))
	cm.RecordOrderPlaced(ctx, decimal.Zero)
}

func TestCheckoutMetrics_RecordOrderRejected(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	cm, err := telemetry.NewCheckoutMetrics(telemetry.CheckoutMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	cm.RecordOrderRejected(ctx, telemetry.OrderOutcomeEmptyCart)
	cm.RecordOrderRejected(ctx, telemetry.OrderOutcomeRejected)
	cm.RecordOrderRejected(ctx, telemetry.OrderOutcomeFailed)
}

func TestCartMutation_Values(t *testing.T) {
	assert.Equal(t, telemetry.CartMutation("add"), telemetry.CartMutationAdd)
	assert.Equal(t, telemetry.CartMutation("decrement"), telemetry.CartMutationDecrement)
	assert.Equal(t, telemetry.CartMutation("remove"), telemetry.CartMutationRemove)
}

func TestOrderOutcome_Values(t *testing.T) {
	assert.Equal(t, telemetry.OrderOutcome("placed"), telemetry.OrderOutcomePlaced)
	assert.Equal(t, telemetry.OrderOutcome("empty_cart"), telemetry.OrderOutcomeEmptyCart)
	assert.Equal(t, telemetry.OrderOutcome("rejected"), telemetry.OrderOutcomeRejected)
	assert.Equal(t, telemetry.OrderOutcome("failed"), telemetry.OrderOutcomeFailed)
}

func TestMetricsError_Error(t *testing.T) {
	err := &telemetry.MetricsError{
		Op:  "TestOperation",
		Err: "test error message",
	}

	assert.Equal(t, "TestOperation: test error message", err.Error())
}
