package checkout

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"jubili-gateway/internal/models"
)

type fakeRateAPI struct {
	calls       atomic.Int64
	totalAmount float64
	fail        bool
}

func (f *fakeRateAPI) QuoteShipment(ctx context.Context, req models.ShipmentRequest) (*models.RateResponse, error) {
	f.calls.Add(1)
	if f.fail {
		return nil, errors.New("carrier unavailable")
	}
	return &models.RateResponse{Data: []models.RateBreakdown{
		{TotalAmount: f.totalAmount},
		{TotalAmount: 9999}, // later candidates must be ignored
	}}, nil
}

func sameProfileItems() []models.LineItem {
	dims := models.Dimensions{Length: 10, Breadth: 5, Height: 5, Weight: 0.5}
	return []models.LineItem{
		{ProductID: "p1", AddressID: "110001-s1", Dimensions: dims},
		{ProductID: "p2", AddressID: "110001-s2", Dimensions: dims},
	}
}

func TestBuildShipmentRequestsDeduplicates(t *testing.T) {
	requests := BuildShipmentRequests(sameProfileItems(), "700001")
	if len(requests) != 1 {
		t.Fatalf("expected 1 unique shipment request, got %d", len(requests))
	}
	req := requests[0]
	if req.Origin != "110001" || req.Destination != "700001" {
		t.Fatalf("unexpected routing codes: %+v", req)
	}
}

func TestBuildShipmentRequestsMissingDimensionsDefaultZero(t *testing.T) {
	items := []models.LineItem{{ProductID: "p1", AddressID: "560001-s1"}}

	requests := BuildShipmentRequests(items, "700001")
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}
	req := requests[0]
	if req.Length != 0 || req.Breadth != 0 || req.Height != 0 || req.Weight != 0 {
		t.Fatalf("expected zero dimensions, got %+v", req)
	}
}

func TestQuoteAllSingleCallForSharedProfile(t *testing.T) {
	rates := &fakeRateAPI{totalAmount: 127}
	aggregator := NewAggregator(rates, nil, nil)
	items := sameProfileItems()

	charges, err := aggregator.QuoteAll(context.Background(), items, "700001")
	if err != nil {
		t.Fatalf("quote batch failed: %v", err)
	}
	if got := rates.calls.Load(); got != 1 {
		t.Fatalf("expected exactly 1 rate call for shared profile, got %d", got)
	}

	attributed := AttachDeliveryCharges(items, charges, "700001")
	// total_amount of the first candidate, halved.
	if attributed[0].DeliveryCharge != 63.5 || attributed[1].DeliveryCharge != 63.5 {
		t.Fatalf("expected both items to carry 63.5, got %v and %v",
			attributed[0].DeliveryCharge, attributed[1].DeliveryCharge)
	}
}

func TestQuoteAllDistinctProfiles(t *testing.T) {
	rates := &fakeRateAPI{totalAmount: 100}
	aggregator := NewAggregator(rates, nil, nil)
	items := []models.LineItem{
		{ProductID: "p1", AddressID: "110001-s1", Dimensions: models.Dimensions{Weight: 1}},
		{ProductID: "p2", AddressID: "560001-s2", Dimensions: models.Dimensions{Weight: 1}},
	}

	charges, err := aggregator.QuoteAll(context.Background(), items, "700001")
	if err != nil {
		t.Fatalf("quote batch failed: %v", err)
	}
	if got := rates.calls.Load(); got != 2 {
		t.Fatalf("expected 2 rate calls for distinct origins, got %d", got)
	}
	if len(charges) != 2 {
		t.Fatalf("expected 2 charge entries, got %d", len(charges))
	}
	if TotalDelivery(charges) != 100 {
		t.Fatalf("expected total delivery 100, got %v", TotalDelivery(charges))
	}
}

func TestQuoteAllBatchFailsTogether(t *testing.T) {
	rates := &fakeRateAPI{fail: true}
	aggregator := NewAggregator(rates, nil, nil)

	if _, err := aggregator.QuoteAll(context.Background(), sameProfileItems(), "700001"); err == nil {
		t.Fatal("expected batch failure when the rate endpoint fails")
	}
}

func TestQuoteAllNoItems(t *testing.T) {
	rates := &fakeRateAPI{totalAmount: 100}
	aggregator := NewAggregator(rates, nil, nil)

	charges, err := aggregator.QuoteAll(context.Background(), nil, "700001")
	if err != nil {
		t.Fatalf("expected empty batch to succeed, got %v", err)
	}
	if len(charges) != 0 {
		t.Fatalf("expected no charges, got %v", charges)
	}
	if rates.calls.Load() != 0 {
		t.Fatal("expected no rate calls for empty batch")
	}
}
