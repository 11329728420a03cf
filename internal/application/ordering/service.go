package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
)

// Service handles checkout and order queries
type Service struct {
	orderRepo ordering.OrderRepository
	idemStore shared.IdempotencyStore
	idemCfg   shared.IdempotencyConfig
}

// NewService creates a new ordering Service. The idempotency store may be
// nil, in which case idempotency keys are ignored.
func NewService(orderRepo ordering.OrderRepository, idemStore shared.IdempotencyStore, idemCfg shared.IdempotencyConfig) *Service {
	return &Service{
		orderRepo: orderRepo,
		idemStore: idemStore,
		idemCfg:   idemCfg,
	}
}

// PlaceOrder turns the cart into an order in a single transaction. The cart
// is read, priced with the unit prices captured at add time, written as an
// order with frozen lines, and cleared. Any failure leaves the cart intact.
//
// A non-empty idempotencyKey dedupes retried checkouts; a key seen before
// within its TTL is rejected.
func (s *Service) PlaceOrder(ctx context.Context, cartID uuid.UUID, idempotencyKey string, req PlaceOrderRequest) (*OrderResponse, error) {
	customer, err := ordering.NewCustomer(
		req.FirstName, req.LastName, req.Email,
		req.Address, req.City, req.State, req.Zip, req.Country, req.Phone,
	)
	if err != nil {
		return nil, err
	}

	keyReserved := false
	if idempotencyKey != "" && s.idemStore != nil && s.idemCfg.Enabled {
		fresh, err := s.idemStore.MarkProcessed(ctx, idempotencyKey, s.idemCfg.TTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An order with this idempotency key was already placed")
		}
		keyReserved = true
	}

	order, err := s.orderRepo.CommitFromCart(ctx, cartID, func(lines []cart.Line) (*ordering.Order, error) {
		return ordering.NewOrderFromCart(cartID, customer, lines)
	})
	if err != nil {
		if keyReserved {
			// Free the key so the caller can retry after a failure
			_ = s.idemStore.Release(ctx, idempotencyKey)
		}
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetOrder returns a single placed order with its lines
func (s *Service) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// ListOrders returns all placed orders, newest first
func (s *Service) ListOrders(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses, nil
}
