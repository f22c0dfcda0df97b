package models

// Order lifecycle event types pushed by the order backend. ORDER_CREATED and
// ORDER_FAILED are terminal: only one terminal event is expected per
// checkout attempt.
const (
	EventOrderCreating = "ORDER_CREATING"
	EventOrderCreated  = "ORDER_CREATED"
	EventOrderFailed   = "ORDER_FAILED"
)

// OrderEvent is one order-lifecycle event on the wire.
type OrderEvent struct {
	Type        string  `json:"type"`
	UserID      string  `json:"userId,omitempty"`
	OrderID     string  `json:"orderId,omitempty"`
	TotalAmount float64 `json:"totalAmount,omitempty"`
	Message     string  `json:"message,omitempty"`
}

// Terminal reports whether no further events are expected after this one.
func (e OrderEvent) Terminal() bool {
	return e.Type == EventOrderCreated || e.Type == EventOrderFailed
}

// GatewayOrder is the payment-gateway order descriptor returned by the
// order-creation endpoint.
type GatewayOrder struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// OrderCreationResult is the order-creation endpoint response.
type OrderCreationResult struct {
	Success bool         `json:"success"`
	Order   GatewayOrder `json:"order"`
	Key     string       `json:"key"`
}

// WidgetPrefill pre-populates the payment widget's contact fields.
type WidgetPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// WidgetOptions is everything the client needs to open the third-party
// payment widget for a created order.
type WidgetOptions struct {
	Key         string        `json:"key"`
	Amount      float64       `json:"amount"`
	Currency    string        `json:"currency"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	OrderID     string        `json:"order_id"`
	Prefill     WidgetPrefill `json:"prefill"`
	Theme       WidgetTheme   `json:"theme"`
}

// WidgetTheme styles the widget overlay.
type WidgetTheme struct {
	Color string `json:"color"`
}

// VerificationRequest carries the gateway signature fields posted back by
// the widget's completion handler.
type VerificationRequest struct {
	PaymentID  string   `json:"razorpay_payment_id" binding:"required"`
	OrderID    string   `json:"razorpay_order_id" binding:"required"`
	Signature  string   `json:"razorpay_signature" binding:"required"`
	GatewayID  string   `json:"orderId" binding:"required"`
	ProductIDs []string `json:"productIds" binding:"required"`
}

// VerificationResult is the order-verification endpoint response.
type VerificationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
