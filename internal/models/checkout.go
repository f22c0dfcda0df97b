package models

import (
	"fmt"
	"strings"
)

// CheckoutKind tags the two checkout subjects the storefront supports.
type CheckoutKind int

const (
	// CartCheckout pays for the user's full cart.
	CartCheckout CheckoutKind = iota
	// SingleItemCheckout pays for one product, quantity fixed at 1.
	SingleItemCheckout
)

// CheckoutMode names the subject of a checkout attempt. It is dispatched
// once at the top of the orchestration; nothing downstream re-checks flags.
type CheckoutMode struct {
	Kind      CheckoutKind
	ProductID string
	Quantity  int
}

// CartMode targets the user's full cart.
func CartMode() CheckoutMode {
	return CheckoutMode{Kind: CartCheckout}
}

// SingleItemMode targets one product. Quantity is not user-adjustable.
func SingleItemMode(productID string) CheckoutMode {
	return CheckoutMode{Kind: SingleItemCheckout, ProductID: productID, Quantity: 1}
}

// LineItem is one product entry within a checkout, constructed fresh on
// every checkout load and never mutated in place.
type LineItem struct {
	ProductID         string     `json:"productId"`
	Name              string     `json:"name"`
	Brand             string     `json:"brand"`
	Category          string     `json:"category,omitempty"`
	Description       string     `json:"description,omitempty"`
	Price             float64    `json:"price"`
	CurrentPrice      float64    `json:"currentPrice"`
	Quantity          int        `json:"quantity"`
	ImageURL          string     `json:"imageUrl"`
	TotalCurrentPrice float64    `json:"totalCurrentPrice"`
	SellerID          string     `json:"sellerId,omitempty"`
	AddressID         string     `json:"addressId,omitempty"`
	Dimensions        Dimensions `json:"dimensions"`
	DeliveryCharge    float64    `json:"deliveryCharge"`
}

// Totals are derived per checkout attempt, never stored.
type Totals struct {
	Subtotal        float64 `json:"subTotal"`
	CurrentTotal    float64 `json:"currentTotal"`
	Discount        float64 `json:"discount"`
	DeliveryCharges float64 `json:"deliveryCharges"`
	PlatformCharges float64 `json:"platformCharges"`
	GrandTotal      float64 `json:"grandTotal"`
}

// ShipmentRequest is the deduplication unit for carrier-rate quotes: every
// line item sharing the same profile collapses to one rate call.
type ShipmentRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Length      float64 `json:"length"`
	Breadth     float64 `json:"breadth"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
}

// Key returns the canonical profile key used for dedup and attribution.
func (s ShipmentRequest) Key() string {
	return fmt.Sprintf("%s-%s-%g-%g-%g-%g", s.Origin, s.Destination, s.Length, s.Breadth, s.Height, s.Weight)
}

// RoutingCodeOf extracts the leading segment of a composite "code-suffix"
// identifier. Only that prefix is a locational routing code; the rest is an
// opaque suffix.
func RoutingCodeOf(id string) string {
	code, _, _ := strings.Cut(id, "-")
	return code
}
