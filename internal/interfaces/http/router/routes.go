package router

import (
	"github.com/storefront/backend/internal/interfaces/http/handler"
)

// Handlers bundles the HTTP handlers the storefront API exposes
type Handlers struct {
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	System  *handler.SystemHandler
}

// StorefrontRoutes builds the route groups for the storefront API.
// The groups are registered under the router's versioned prefix.
func StorefrontRoutes(h Handlers) []RouteRegistrar {
	products := NewDomainGroup("products", "/products")
	products.POST("", h.Product.Create).
		GET("", h.Product.List).
		GET("/:id", h.Product.GetByID).
		PUT("/:id", h.Product.Update).
		DELETE("/:id", h.Product.Delete).
		POST("/:id/image", h.Product.RequestImageUpload).
		POST("/:id/image/confirm", h.Product.ConfirmImageUpload)

	cart := NewDomainGroup("cart", "/cart")
	cart.GET("", h.Cart.GetCart).
		POST("/items", h.Cart.AddItem).
		PATCH("/items/:product_id/decrement", h.Cart.DecrementItem).
		DELETE("/items/:product_id", h.Cart.RemoveItem)

	orders := NewDomainGroup("orders", "/orders")
	orders.POST("", h.Order.PlaceOrder).
		GET("", h.Order.ListOrders).
		GET("/:id", h.Order.GetOrder)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo).
		GET("/health", h.System.Health)

	return []RouteRegistrar{products, cart, orders, system}
}
