package models

// Dimensions describes the physical profile of a single unit, used for
// shipping-rate requests.
type Dimensions struct {
	Length  float64 `json:"length"`
	Breadth float64 `json:"breadth"`
	Height  float64 `json:"height"`
	Weight  float64 `json:"weight"`
}

// CartItem is one entry of the cart as served by the catalog backend.
// Price fields are per unit; TotalCurrentPrice is currentPrice * quantity.
type CartItem struct {
	ProductID         string     `json:"productId"`
	ProductName       string     `json:"productName"`
	ImageURL          string     `json:"imageUrl"`
	Brand             string     `json:"brand"`
	SellerID          string     `json:"sellerId"`
	SellerName        string     `json:"sellerName"`
	Price             float64    `json:"price"`
	CurrentPrice      float64    `json:"currentPrice"`
	Quantity          int        `json:"quantity"`
	TotalCurrentPrice float64    `json:"totalCurrentPrice"`
	DeliveryCharges   float64    `json:"deliveryCharges"`
	PlatformCharges   float64    `json:"platformCharges"`
	Category          string     `json:"category"`
	Description       string     `json:"description"`
	AddressID         string     `json:"addressId"`
	Dimensions        Dimensions `json:"dimensions"`
}

// Cart is the cart snapshot with backend-computed aggregates. The aggregates
// are authoritative for cart-mode totals; they are never re-derived here so
// that totals stay consistent with server-side rounding.
type Cart struct {
	TotalItems           int        `json:"totalItems"`
	Items                []CartItem `json:"items"`
	TotalOriginalPrice   float64    `json:"totalOriginalPrice"`
	TotalCurrentPrice    float64    `json:"totalCurrentPrice"`
	TotalDeliveryCharges float64    `json:"totalDeliveryCharges"`
	TotalPlatformCharges float64    `json:"totalPlatformCharges"`
	Subtotal             float64    `json:"subtotal"`
	FinalTotal           float64    `json:"finalTotal"`
	Message              string     `json:"message,omitempty"`
}
