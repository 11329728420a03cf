package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// Service handles cart mutation and display operations
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem adds a product to the cart or increments an existing line. The
// product's current price is read here and captured onto the line; a line
// that already exists keeps its earlier price.
func (s *Service) AddItem(ctx context.Context, cartID uuid.UUID, req AddItemRequest) error {
	if req.Quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return err
	}

	line, err := cart.NewLine(cartID, product.ID, req.Quantity, product.Price)
	if err != nil {
		return err
	}

	return s.cartRepo.AddOrIncrement(ctx, line)
}

// DecrementItem lowers a line's quantity by one, removing it at zero
func (s *Service) DecrementItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return s.cartRepo.Decrement(ctx, cartID, productID)
}

// RemoveItem removes a line from the cart
func (s *Service) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return s.cartRepo.Remove(ctx, cartID, productID)
}

// GetCart returns the cart contents with product display fields and the
// priced summary
func (s *Service) GetCart(ctx context.Context, cartID uuid.UUID) (*Response, error) {
	views, err := s.cartRepo.FindView(ctx, cartID)
	if err != nil {
		return nil, err
	}

	response := ToResponse(views)
	return &response, nil
}
