package checkout

import (
	"context"
	"errors"
	"testing"

	"jubili-gateway/internal/clients"
	"jubili-gateway/internal/events"
	"jubili-gateway/internal/models"
)

type fakeCatalog struct {
	cart    *models.Cart
	product *models.Product
	err     error
}

func (f *fakeCatalog) GetCart(ctx context.Context, userID, token string) (*models.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCatalog) GetProduct(ctx context.Context, productID, token string) (*models.Product, error) {
	return f.product, f.err
}

type fakePayments struct {
	ready   bool
	result  *models.OrderCreationResult
	verify  *models.VerificationResult
	err     error
	lastReq clients.OrderCreationRequest
}

func (f *fakePayments) Ready() bool { return f.ready }

func (f *fakePayments) CreateOrder(ctx context.Context, token string, req clients.OrderCreationRequest) (*models.OrderCreationResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func (f *fakePayments) VerifyPayment(ctx context.Context, token string, req models.VerificationRequest) (*models.VerificationResult, error) {
	return f.verify, f.err
}

func testService(catalog *fakeCatalog, payments *fakePayments, rates RateAPI) *Service {
	if rates == nil {
		rates = &fakeRateAPI{totalAmount: 100}
	}
	return NewService(catalog, payments, NewAggregator(rates, nil, nil), events.NewBroker(nil), nil)
}

func testAddress() *models.Address {
	return &models.Address{
		AddressID:   "700001-home",
		Name:        "Alex Doe",
		PhoneNumber: "9876543210",
		PostalCode:  "700001",
		IsDefault:   true,
	}
}

func singleProduct() *models.Product {
	return &models.Product{
		ProductID:    "p1",
		ProductName:  "Lamp",
		Price:        1000,
		CurrentPrice: 800,
		SellerID:     "seller-1",
		AddressID:    "110001-s1",
		Dimensions:   models.Dimensions{Length: 10, Breadth: 5, Height: 5, Weight: 0.5},
	}
}

func TestInitiatePaymentGatewayNotReady(t *testing.T) {
	service := testService(&fakeCatalog{product: singleProduct()}, &fakePayments{ready: false}, nil)

	_, err := service.InitiatePayment(context.Background(), models.SingleItemMode("p1"), Identity{UserID: "u1"}, testAddress())
	if !errors.Is(err, ErrGatewayNotReady) {
		t.Fatalf("expected ErrGatewayNotReady, got %v", err)
	}
}

func TestInitiatePaymentNoAddress(t *testing.T) {
	service := testService(&fakeCatalog{product: singleProduct()}, &fakePayments{ready: true}, nil)

	_, err := service.InitiatePayment(context.Background(), models.SingleItemMode("p1"), Identity{UserID: "u1"}, nil)
	if !errors.Is(err, ErrNoAddressSelected) {
		t.Fatalf("expected ErrNoAddressSelected, got %v", err)
	}
}

func TestInitiatePaymentNothingToCheckOut(t *testing.T) {
	payments := &fakePayments{ready: true}
	service := testService(&fakeCatalog{err: errors.New("catalog down")}, payments, nil)

	_, err := service.InitiatePayment(context.Background(), models.SingleItemMode("p1"), Identity{UserID: "u1"}, testAddress())
	if !errors.Is(err, ErrNothingToCheckOut) {
		t.Fatalf("expected ErrNothingToCheckOut, got %v", err)
	}
	if payments.lastReq.UserID != "" {
		t.Fatal("order creation must not be called for an empty checkout")
	}
}

func TestInitiatePaymentSuccess(t *testing.T) {
	payments := &fakePayments{
		ready: true,
		result: &models.OrderCreationResult{
			Success: true,
			Order:   models.GatewayOrder{ID: "order_rzp_1", Amount: 877.66, Currency: "INR"},
			Key:     "rzp_key",
		},
	}
	service := testService(&fakeCatalog{product: singleProduct()}, payments, &fakeRateAPI{totalAmount: 127})

	options, err := service.InitiatePayment(context.Background(), models.SingleItemMode("p1"), Identity{UserID: "u1", Email: "a@b.c"}, testAddress())
	if err != nil {
		t.Fatalf("initiate payment failed: %v", err)
	}

	if options.Key != "rzp_key" || options.OrderID != "order_rzp_1" || options.Currency != "INR" {
		t.Fatalf("widget options not taken from gateway response: %+v", options)
	}
	if options.Prefill.Name != "Alex Doe" || options.Prefill.Contact != "9876543210" {
		t.Fatalf("prefill not taken from selected address: %+v", options.Prefill)
	}

	req := payments.lastReq
	if len(req.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(req.Items))
	}
	if req.Items[0].DeliveryByUser != 63.5 {
		t.Fatalf("expected attributed delivery 63.5 on order item, got %v", req.Items[0].DeliveryByUser)
	}
	want := 800 + 63.5 + PlatformCharge
	if req.Amount != want {
		t.Fatalf("expected order amount %v, got %v", want, req.Amount)
	}
	if req.Address.AddressID != "700001-home" {
		t.Fatalf("selected address not forwarded: %+v", req.Address)
	}
}

func TestInitiatePaymentGatewayRejection(t *testing.T) {
	payments := &fakePayments{ready: true, result: &models.OrderCreationResult{Success: false}}
	service := testService(&fakeCatalog{product: singleProduct()}, payments, nil)

	_, err := service.InitiatePayment(context.Background(), models.SingleItemMode("p1"), Identity{UserID: "u1"}, testAddress())
	if !errors.Is(err, ErrOrderCreationFailed) {
		t.Fatalf("expected ErrOrderCreationFailed, got %v", err)
	}
}

func TestInitiatePaymentQuoteFailureDoesNotBlock(t *testing.T) {
	payments := &fakePayments{
		ready:  true,
		result: &models.OrderCreationResult{Success: true, Order: models.GatewayOrder{ID: "o1", Currency: "INR"}, Key: "k"},
	}
	service := testService(&fakeCatalog{product: singleProduct()}, payments, &fakeRateAPI{fail: true})

	_, err := service.InitiatePayment(context.Background(), models.SingleItemMode("p1"), Identity{UserID: "u1"}, testAddress())
	if err != nil {
		t.Fatalf("quote failure must not block checkout, got %v", err)
	}
	if payments.lastReq.Items[0].DeliveryByUser != 0 {
		t.Fatalf("expected zero attributed delivery after quote failure, got %v", payments.lastReq.Items[0].DeliveryByUser)
	}
	// Falls back to the flat estimate.
	want := 800 + float64(FlatDeliveryEstimate) + PlatformCharge
	if payments.lastReq.Amount != want {
		t.Fatalf("expected fallback amount %v, got %v", want, payments.lastReq.Amount)
	}
}

func TestBuildPreviewCartMode(t *testing.T) {
	cart := &models.Cart{
		TotalItems: 1,
		Items: []models.CartItem{{
			ProductID: "p1", ProductName: "Sneakers", Price: 500, CurrentPrice: 500,
			Quantity: 3, TotalCurrentPrice: 1500, AddressID: "110001-s1",
		}},
		TotalOriginalPrice: 1500,
		TotalCurrentPrice:  1500,
		FinalTotal:         1563.16,
	}
	service := testService(&fakeCatalog{cart: cart}, &fakePayments{ready: true}, &fakeRateAPI{totalAmount: 127})

	preview := service.BuildPreview(context.Background(), models.CartMode(), Identity{UserID: "u1"}, testAddress())
	if preview.Empty {
		t.Fatal("expected non-empty preview")
	}
	if preview.Totals.GrandTotal != 1563.16 {
		t.Fatalf("cart preview must pass through finalTotal, got %v", preview.Totals.GrandTotal)
	}
	if preview.Totals.Discount != 0 {
		t.Fatalf("expected zero discount, got %v", preview.Totals.Discount)
	}
	if !preview.QuotesResolved || preview.Items[0].DeliveryCharge != 63.5 {
		t.Fatalf("expected resolved quote on preview item, got %+v", preview.Items[0])
	}
}

func TestBuildPreviewEmptyCheckout(t *testing.T) {
	service := testService(&fakeCatalog{cart: &models.Cart{}}, &fakePayments{ready: true}, nil)

	preview := service.BuildPreview(context.Background(), models.CartMode(), Identity{UserID: "u1"}, testAddress())
	if !preview.Empty {
		t.Fatal("expected empty-checkout state")
	}
	if preview.Totals != (models.Totals{}) {
		t.Fatalf("expected all-zero totals, got %+v", preview.Totals)
	}
}

func TestBuildPreviewQuoteFailureWarns(t *testing.T) {
	service := testService(&fakeCatalog{product: singleProduct()}, &fakePayments{ready: true}, &fakeRateAPI{fail: true})

	preview := service.BuildPreview(context.Background(), models.SingleItemMode("p1"), Identity{UserID: "u1"}, testAddress())
	if preview.Empty {
		t.Fatal("quote failure must not empty the checkout")
	}
	if preview.Warning != "delivery cost calculation failed" {
		t.Fatalf("expected delivery warning, got %q", preview.Warning)
	}
	if preview.QuotesResolved {
		t.Fatal("quotes must not be marked resolved after a failed batch")
	}
	if preview.Totals.DeliveryCharges != FlatDeliveryEstimate {
		t.Fatalf("expected flat estimate in totals, got %v", preview.Totals.DeliveryCharges)
	}
}
