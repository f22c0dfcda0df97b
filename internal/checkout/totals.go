package checkout

import "jubili-gateway/internal/models"

const (
	// FlatDeliveryEstimate is the placeholder per-order delivery fee shown
	// before live carrier quotes resolve.
	FlatDeliveryEstimate = 49
	// PlatformCharge is the fixed approximate per-order service fee.
	PlatformCharge = 14.16
)

// CartTotals passes through the backend-computed cart aggregates verbatim
// instead of re-deriving them from items, so totals stay consistent with
// server-side rounding. Invariant: GrandTotal == cart.FinalTotal.
func CartTotals(cart *models.Cart) models.Totals {
	if cart == nil || len(cart.Items) == 0 {
		return models.Totals{}
	}
	return models.Totals{
		Subtotal:        cart.TotalOriginalPrice,
		CurrentTotal:    cart.TotalCurrentPrice,
		Discount:        cart.TotalOriginalPrice - cart.TotalCurrentPrice,
		DeliveryCharges: cart.TotalDeliveryCharges,
		PlatformCharges: cart.TotalPlatformCharges,
		GrandTotal:      cart.FinalTotal,
	}
}

// SingleItemTotals derives totals for a one-product checkout. The live
// per-shipment quote is authoritative for delivery charges; before quotes
// resolve the flat estimate stands in.
func SingleItemTotals(product *models.Product, quantity int, liveDelivery float64, quoted bool) models.Totals {
	if product == nil || quantity < 1 {
		return models.Totals{}
	}

	subtotal := product.Price * float64(quantity)
	currentTotal := product.CurrentPrice * float64(quantity)
	delivery := float64(FlatDeliveryEstimate)
	if quoted {
		delivery = liveDelivery
	}

	return models.Totals{
		Subtotal:        subtotal,
		CurrentTotal:    currentTotal,
		Discount:        subtotal - currentTotal,
		DeliveryCharges: delivery,
		PlatformCharges: PlatformCharge,
		GrandTotal:      currentTotal + delivery + PlatformCharge,
	}
}

// TotalsFor dispatches on the checkout mode once. Zero resolved items mean
// all-zero totals and nothing to pay.
func TotalsFor(mode models.CheckoutMode, subject Subject, liveDelivery float64, quoted bool) models.Totals {
	switch mode.Kind {
	case models.CartCheckout:
		return CartTotals(subject.Cart)
	case models.SingleItemCheckout:
		return SingleItemTotals(subject.Product, mode.Quantity, liveDelivery, quoted)
	default:
		return models.Totals{}
	}
}
