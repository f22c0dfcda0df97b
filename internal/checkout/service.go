package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jubili-gateway/internal/clients"
	"jubili-gateway/internal/events"
	"jubili-gateway/internal/metrics"
	"jubili-gateway/internal/models"
)

// Precondition and gateway failures of the payment flow. Preconditions abort
// before any network call; gateway failures are terminal for the attempt.
var (
	ErrGatewayNotReady     = errors.New("payment gateway is not configured")
	ErrNoAddressSelected   = errors.New("no delivery address selected")
	ErrOrderCreationFailed = errors.New("order creation failed")
)

// CatalogAPI is the cart/product data collaborator.
type CatalogAPI interface {
	GetCart(ctx context.Context, userID, token string) (*models.Cart, error)
	GetProduct(ctx context.Context, productID, token string) (*models.Product, error)
}

// PaymentAPI is the order-creation/verification collaborator.
type PaymentAPI interface {
	Ready() bool
	CreateOrder(ctx context.Context, token string, req clients.OrderCreationRequest) (*models.OrderCreationResult, error)
	VerifyPayment(ctx context.Context, token string, req models.VerificationRequest) (*models.VerificationResult, error)
}

// Identity is the authenticated caller, as carried by the request context.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Phone  string
	Token  string
}

// Service orchestrates the checkout flow: subject resolution, totals,
// shipping quotes, the order event channel and payment initiation. Each
// request owns its own resolved state; the service itself is stateless.
type Service struct {
	catalog    CatalogAPI
	payments   PaymentAPI
	aggregator *Aggregator
	broker     *events.Broker
	metrics    *metrics.CheckoutMetrics
}

func NewService(catalog CatalogAPI, payments PaymentAPI, aggregator *Aggregator, broker *events.Broker, m *metrics.CheckoutMetrics) *Service {
	return &Service{
		catalog:    catalog,
		payments:   payments,
		aggregator: aggregator,
		broker:     broker,
		metrics:    m,
	}
}

// ModeFromParam maps the checkout path parameter to a mode: the literal
// "cart" pays for the cart, anything else is a product id.
func ModeFromParam(param string) models.CheckoutMode {
	if param == "cart" {
		return models.CartMode()
	}
	return models.SingleItemMode(param)
}

func modeLabel(mode models.CheckoutMode) string {
	if mode.Kind == models.CartCheckout {
		return "cart"
	}
	return "single"
}

// Preview is the checkout page payload: resolved items with per-item
// delivery charges, totals, and the empty-checkout flag that blocks the
// payment button.
type Preview struct {
	Mode           string             `json:"mode"`
	Items          []models.LineItem  `json:"items"`
	Totals         models.Totals      `json:"totals"`
	Empty          bool               `json:"empty"`
	QuotesResolved bool               `json:"quotesResolved"`
	Warning        string             `json:"warning,omitempty"`
	Address        *models.Address    `json:"address,omitempty"`
	Charges        map[string]float64 `json:"-"`
}

// loadSubject fetches the checkout subject. A fetch failure is
// data-unavailable: the subject stays absent and resolution yields the
// empty-checkout state.
func (s *Service) loadSubject(ctx context.Context, mode models.CheckoutMode, id Identity) Subject {
	var subject Subject
	switch mode.Kind {
	case models.CartCheckout:
		cart, err := s.catalog.GetCart(ctx, id.UserID, id.Token)
		if err != nil {
			log.Println("[CHECKOUT] [ERROR] cart fetch failed:", err)
			return subject
		}
		subject.Cart = cart
	case models.SingleItemCheckout:
		product, err := s.catalog.GetProduct(ctx, mode.ProductID, id.Token)
		if err != nil {
			log.Println("[CHECKOUT] [ERROR] product fetch failed:", err)
			return subject
		}
		subject.Product = product
	}
	return subject
}

// BuildPreview resolves the checkout subject and computes totals and
// shipping quotes for display. A quote failure is non-blocking: charges stay
// absent and a warning is surfaced instead.
func (s *Service) BuildPreview(ctx context.Context, mode models.CheckoutMode, id Identity, address *models.Address) *Preview {
	preview := &Preview{
		Mode:    modeLabel(mode),
		Items:   []models.LineItem{},
		Address: address,
		Charges: map[string]float64{},
	}

	subject := s.loadSubject(ctx, mode, id)
	items, err := ResolveItems(mode, subject)
	if err != nil {
		preview.Empty = true
		return preview
	}

	if address != nil {
		destination := address.RoutingCode()
		charges, err := s.aggregator.QuoteAll(ctx, items, destination)
		if err != nil {
			log.Println("[CHECKOUT] [ERROR]", err)
			preview.Warning = "delivery cost calculation failed"
		} else {
			preview.Charges = charges
			preview.QuotesResolved = true
			items = AttachDeliveryCharges(items, charges, destination)
		}
	}

	preview.Items = items
	preview.Totals = TotalsFor(mode, subject, TotalDelivery(preview.Charges), preview.QuotesResolved)
	return preview
}

// InitiatePayment runs the payment sequence: preconditions, order event
// channel, order creation, and the widget options handed back to the client.
// The channel is opened before the order-creation call so the creating event
// emitted immediately by the backend is not missed.
func (s *Service) InitiatePayment(ctx context.Context, mode models.CheckoutMode, id Identity, address *models.Address) (*models.WidgetOptions, error) {
	if !s.payments.Ready() {
		return nil, ErrGatewayNotReady
	}
	if address == nil {
		return nil, ErrNoAddressSelected
	}

	subject := s.loadSubject(ctx, mode, id)
	items, err := ResolveItems(mode, subject)
	if err != nil {
		return nil, err
	}

	destination := address.RoutingCode()
	charges, err := s.aggregator.QuoteAll(ctx, items, destination)
	quoted := err == nil
	if err != nil {
		// Quote failure does not block checkout; items fall back to zero
		// attributed delivery and totals to the flat estimate.
		log.Println("[CHECKOUT] [ERROR]", err)
		charges = map[string]float64{}
	}
	items = AttachDeliveryCharges(items, charges, destination)
	totals := TotalsFor(mode, subject, TotalDelivery(charges), quoted)

	channel := events.OpenChannel(s.broker, id.UserID)

	result, err := s.payments.CreateOrder(ctx, id.Token, s.orderRequest(id, address, items, totals))
	if err != nil {
		channel.Close()
		s.countInitiation(mode, "error")
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	if !result.Success {
		channel.Close()
		s.countInitiation(mode, "rejected")
		return nil, ErrOrderCreationFailed
	}
	s.countInitiation(mode, "ok")

	// The channel keeps consuming in the background and closes itself on the
	// terminal event; the SSE stream carries the progression to the client.
	return &models.WidgetOptions{
		Key:         result.Key,
		Amount:      result.Order.Amount,
		Currency:    result.Order.Currency,
		Name:        "Jubili",
		Description: "Safe & Secure Payment",
		OrderID:     result.Order.ID,
		Prefill: models.WidgetPrefill{
			Name:    prefillOr(address.Name, id.Name, "unnamed"),
			Email:   prefillOr(id.Email, "", "unknown@example.com"),
			Contact: prefillOr(address.PhoneNumber, id.Phone, "unknown"),
		},
		Theme: models.WidgetTheme{Color: "#3399cc"},
	}, nil
}

func (s *Service) orderRequest(id Identity, address *models.Address, items []models.LineItem, totals models.Totals) clients.OrderCreationRequest {
	now := time.Now().UnixMilli()

	orderItems := make([]clients.OrderItemRequest, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, clients.OrderItemRequest{
			PickupLocation:    item.SellerID,
			SellerID:          item.SellerID,
			ProductName:       item.Name,
			ProductID:         item.ProductID,
			ProductDimensions: item.Dimensions,
			PackagingType:     "Box",
			Fragile:           false,
			Quantity:          item.Quantity,
			Price:             item.Price,
			UnitItemPrice:     item.CurrentPrice,
			DeliveryByUser:    item.DeliveryCharge,
			DeliveryBySeller:  item.DeliveryCharge,
			ServiceCharge:     10,
		})
	}

	return clients.OrderCreationRequest{
		Amount:        totals.GrandTotal,
		Receipt:       fmt.Sprintf("rcpt_%d", now),
		OrderID:       fmt.Sprintf("order_%d", now),
		TotalAmount:   totals.GrandTotal,
		UserID:        id.UserID,
		CustomerName:  address.Name,
		CustomerEmail: id.Email,
		CustomerPhone: address.PhoneNumber,
		Address:       *address,
		TransportMode: "Surface",
		PaymentMode:   "Prepaid",
		CODAmount:     0,
		Items:         orderItems,
	}
}

// VerifyPayment forwards the widget's completion payload to the
// verification endpoint.
func (s *Service) VerifyPayment(ctx context.Context, id Identity, req models.VerificationRequest) (*models.VerificationResult, error) {
	result, err := s.payments.VerifyPayment(ctx, id.Token, req)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) countInitiation(mode models.CheckoutMode, outcome string) {
	if s.metrics != nil {
		s.metrics.PaymentsInitiated.WithLabelValues(modeLabel(mode), outcome).Inc()
	}
}

func prefillOr(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
