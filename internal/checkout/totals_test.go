package checkout

import (
	"testing"

	"jubili-gateway/internal/models"
)

func TestCartTotalsPassThrough(t *testing.T) {
	cart := &models.Cart{
		TotalItems:           2,
		Items:                []models.CartItem{{ProductID: "p1"}, {ProductID: "p2"}},
		TotalOriginalPrice:   3000,
		TotalCurrentPrice:    2500,
		TotalDeliveryCharges: 98,
		TotalPlatformCharges: 28.32,
		Subtotal:             2500,
		FinalTotal:           2626.32,
	}

	totals := CartTotals(cart)
	if totals.GrandTotal != cart.FinalTotal {
		t.Fatalf("cart grand total must equal backend finalTotal: got %v, want %v", totals.GrandTotal, cart.FinalTotal)
	}
	if totals.Subtotal != 3000 || totals.CurrentTotal != 2500 || totals.Discount != 500 {
		t.Fatalf("unexpected cart totals: %+v", totals)
	}
	if totals.GrandTotal < totals.CurrentTotal {
		t.Fatalf("grand total %v below current total %v", totals.GrandTotal, totals.CurrentTotal)
	}
}

func TestSingleItemTotalsWithDiscount(t *testing.T) {
	product := &models.Product{ProductID: "p1", Price: 1000, CurrentPrice: 800}

	totals := SingleItemTotals(product, 2, 0, false)
	if totals.Subtotal != 2000 {
		t.Fatalf("expected subtotal 2000, got %v", totals.Subtotal)
	}
	if totals.Discount != 400 {
		t.Fatalf("expected discount 400, got %v", totals.Discount)
	}
	if totals.CurrentTotal != 1600 {
		t.Fatalf("expected current total 1600, got %v", totals.CurrentTotal)
	}
	if totals.DeliveryCharges != FlatDeliveryEstimate {
		t.Fatalf("expected flat delivery estimate before quotes, got %v", totals.DeliveryCharges)
	}
}

func TestSingleItemTotalsNoDiscount(t *testing.T) {
	product := &models.Product{ProductID: "p1", Price: 500, CurrentPrice: 500}

	totals := SingleItemTotals(product, 3, 0, false)
	if totals.Discount != 0 {
		t.Fatalf("expected zero discount, got %v", totals.Discount)
	}
	if totals.Subtotal != 1500 || totals.CurrentTotal != 1500 {
		t.Fatalf("expected subtotal and current total 1500, got %v and %v", totals.Subtotal, totals.CurrentTotal)
	}
}

func TestSingleItemTotalsLiveQuoteAuthoritative(t *testing.T) {
	product := &models.Product{ProductID: "p1", Price: 1000, CurrentPrice: 800}

	totals := SingleItemTotals(product, 1, 63.5, true)
	if totals.DeliveryCharges != 63.5 {
		t.Fatalf("expected live quote 63.5, got %v", totals.DeliveryCharges)
	}
	want := 800 + 63.5 + PlatformCharge
	if totals.GrandTotal != want {
		t.Fatalf("expected grand total %v, got %v", want, totals.GrandTotal)
	}
	if totals.GrandTotal < totals.CurrentTotal {
		t.Fatalf("grand total %v below current total %v", totals.GrandTotal, totals.CurrentTotal)
	}
}

func TestTotalsForZeroItems(t *testing.T) {
	totals := TotalsFor(models.CartMode(), Subject{}, 0, false)
	if totals != (models.Totals{}) {
		t.Fatalf("expected all-zero totals for empty checkout, got %+v", totals)
	}

	totals = TotalsFor(models.SingleItemMode("p1"), Subject{}, 0, false)
	if totals != (models.Totals{}) {
		t.Fatalf("expected all-zero totals for absent product, got %+v", totals)
	}
}
