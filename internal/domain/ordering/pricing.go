package ordering

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
)

// flatDeliveryFee is the only definition of the delivery fee in the system.
// Cart summaries and placed orders both price through this package, so the
// figure shown before checkout and the figure charged at checkout cannot
// diverge.
var flatDeliveryFee = decimal.NewFromInt(2)

// Subtotal sums the line totals of the given cart lines using each line's
// stored unit price. Current catalog prices play no part here.
func Subtotal(lines []cart.Line) decimal.Decimal {
	subtotal := decimal.Zero
	for i := range lines {
		subtotal = subtotal.Add(lines[i].LineTotal())
	}
	return subtotal
}

// DeliveryFee returns zero for an empty subtotal, otherwise the flat fee.
func DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	return flatDeliveryFee
}

// Total returns subtotal plus delivery fee.
func Total(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(DeliveryFee(subtotal))
}
