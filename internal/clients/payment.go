package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"jubili-gateway/internal/models"
)

// OrderItemRequest is one line item of an order-creation call, carrying the
// per-item shipping cost attributed by the quote aggregator.
type OrderItemRequest struct {
	PickupLocation    string            `json:"pickupLocation"`
	SellerID          string            `json:"sellerId"`
	ProductName       string            `json:"productName"`
	ProductID         string            `json:"productId"`
	ProductDimensions models.Dimensions `json:"productDimensions"`
	PackagingType     string            `json:"packagingType"`
	Fragile           bool              `json:"fragile"`
	Quantity          int               `json:"quantity"`
	Price             float64           `json:"price"`
	UnitItemPrice     float64           `json:"unitItemPrice"`
	DeliveryByUser    float64           `json:"deliveryByUser"`
	DeliveryBySeller  float64           `json:"deliveryBySeller"`
	ServiceCharge     float64           `json:"serviceCharge"`
}

// OrderCreationRequest is the order-creation endpoint payload.
type OrderCreationRequest struct {
	Amount        float64            `json:"amount"`
	Receipt       string             `json:"receipt"`
	OrderID       string             `json:"orderId"`
	TotalAmount   float64            `json:"totalAmount"`
	UserID        string             `json:"userId"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerPhone string             `json:"customerPhone"`
	Address       models.Address     `json:"address"`
	TransportMode string             `json:"transportMode"`
	PaymentMode   string             `json:"paymentMode"`
	CODAmount     float64            `json:"codAmount"`
	Items         []OrderItemRequest `json:"items"`
}

// PaymentClient talks to the payment backend: gateway order creation and
// post-payment verification.
type PaymentClient struct {
	baseURL string
	client  *http.Client
}

func NewPaymentClient(baseURL string, timeout time.Duration) *PaymentClient {
	return &PaymentClient{baseURL: baseURL, client: newHTTPClient(timeout)}
}

// Ready reports whether the gateway backend is configured at all. Payment
// initiation is aborted up front when it is not.
func (c *PaymentClient) Ready() bool {
	return c != nil && c.baseURL != ""
}

// CreateOrder registers the order with the payment gateway via the backend.
func (c *PaymentClient) CreateOrder(ctx context.Context, token string, req OrderCreationRequest) (*models.OrderCreationResult, error) {
	endpoint := c.baseURL + "/api/payment/razorpay/order"

	var result models.OrderCreationResult
	if err := postJSON(ctx, c.client, endpoint, token, req, &result); err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}
	return &result, nil
}

// VerifyPayment checks the gateway signature for a completed payment.
func (c *PaymentClient) VerifyPayment(ctx context.Context, token string, req models.VerificationRequest) (*models.VerificationResult, error) {
	endpoint := c.baseURL + "/api/payment/razorpay/verify"

	var result models.VerificationResult
	if err := postJSON(ctx, c.client, endpoint, token, req, &result); err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	return &result, nil
}
