package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// CartIDHeader names the optional header a client uses to address its own
// cart. Without it every request operates on the shared default cart.
const CartIDHeader = "X-Cart-ID"

// defaultCartID is the cart used when the client does not send X-Cart-ID
var defaultCartID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// CartHandler handles shopping cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
	metrics     *telemetry.CheckoutMetrics
}

// NewCartHandler creates a new CartHandler. metrics may be nil.
func NewCartHandler(cartService *cartapp.Service, metrics *telemetry.CheckoutMetrics) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		metrics:     metrics,
	}
}

// resolveCartID reads the cart ID from the X-Cart-ID header, falling back
// to the default cart. A malformed header is reported, not silently ignored.
func resolveCartID(c *gin.Context) (uuid.UUID, bool) {
	header := c.GetHeader(CartIDHeader)
	if header == "" {
		return defaultCartID, true
	}
	id, err := uuid.Parse(header)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, ok := resolveCartID(c)
	if !ok {
		h.BadRequest(c, "Invalid X-Cart-ID header")
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.cartService.AddItem(c.Request.Context(), cartID, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordCartMutation(c.Request.Context(), telemetry.CartMutationAdd)
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	cartID, ok := resolveCartID(c)
	if !ok {
		h.BadRequest(c, "Invalid X-Cart-ID header")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// DecrementItem handles PATCH /cart/items/:product_id/decrement
func (h *CartHandler) DecrementItem(c *gin.Context) {
	cartID, ok := resolveCartID(c)
	if !ok {
		h.BadRequest(c, "Invalid X-Cart-ID header")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.cartService.DecrementItem(c.Request.Context(), cartID, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordCartMutation(c.Request.Context(), telemetry.CartMutationDecrement)
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem handles DELETE /cart/items/:product_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, ok := resolveCartID(c)
	if !ok {
		h.BadRequest(c, "Invalid X-Cart-ID header")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), cartID, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordCartMutation(c.Request.Context(), telemetry.CartMutationRemove)
	}

	h.NoContent(c)
}
