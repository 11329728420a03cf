package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/storefront/backend/internal/application/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// IdempotencyKeyHeader names the header a client sends to dedupe retried
// checkout requests
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler handles checkout and order query API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.Service
	metrics      *telemetry.CheckoutMetrics
}

// NewOrderHandler creates a new OrderHandler. metrics may be nil.
func NewOrderHandler(orderService *orderingapp.Service, metrics *telemetry.CheckoutMetrics) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		metrics:      metrics,
	}
}

// PlaceOrder handles POST /orders. It converts the cart into an order in a
// single transaction; the cart is cleared only if the order persists.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	cartID, ok := resolveCartID(c)
	if !ok {
		h.BadRequest(c, "Invalid X-Cart-ID header")
		return
	}

	var req orderingapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)

	order, err := h.orderService.PlaceOrder(c.Request.Context(), cartID, idempotencyKey, req)
	if err != nil {
		h.recordOrderFailure(c, err)
		h.HandleDomainError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordOrderPlaced(c.Request.Context(), order.Total)
	}

	h.Created(c, order)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, orders)
}

// recordOrderFailure classifies a failed checkout for metrics
func (h *OrderHandler) recordOrderFailure(c *gin.Context, err error) {
	if h.metrics == nil {
		return
	}

	outcome := telemetry.OrderOutcomeFailed
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Code == "CART_EMPTY" {
			outcome = telemetry.OrderOutcomeEmptyCart
		} else {
			outcome = telemetry.OrderOutcomeRejected
		}
	}
	h.metrics.RecordOrderRejected(c.Request.Context(), outcome)
}
