package checkout

import (
	"errors"
	"testing"

	"jubili-gateway/internal/models"
)

func TestResolveCartItems(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{
				ProductID:         "p1",
				ProductName:       "Sneakers",
				Brand:             "Acme",
				Price:             1000,
				CurrentPrice:      800,
				Quantity:          2,
				TotalCurrentPrice: 1600,
				SellerID:          "seller-1",
				AddressID:         "110001-abc",
				Dimensions:        models.Dimensions{Length: 10, Breadth: 5, Height: 5, Weight: 0.5},
			},
			{ProductID: "p2", ProductName: "Socks", Price: 200, CurrentPrice: 200, Quantity: 1, TotalCurrentPrice: 200},
		},
	}

	items, err := ResolveItems(models.CartMode(), Subject{Cart: cart})
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}
	first := items[0]
	if first.ProductID != "p1" || first.TotalCurrentPrice != 1600 || first.AddressID != "110001-abc" {
		t.Fatalf("cart item not carried through: %+v", first)
	}
	if first.CurrentPrice > first.Price {
		t.Fatalf("current price %v exceeds original price %v", first.CurrentPrice, first.Price)
	}
}

func TestResolveSingleItemFixedQuantity(t *testing.T) {
	product := &models.Product{
		ProductID:    "p9",
		ProductName:  "Lamp",
		Price:        1000,
		CurrentPrice: 800,
		ImageURLs:    []string{"https://cdn/p9.jpg"},
		AddressID:    "700001-xyz",
	}

	items, err := ResolveItems(models.SingleItemMode("p9"), Subject{Product: product})
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly one line item, got %d", len(items))
	}
	item := items[0]
	if item.Quantity != 1 {
		t.Fatalf("single-item quantity must be 1, got %d", item.Quantity)
	}
	if item.TotalCurrentPrice != 800 {
		t.Fatalf("expected total current price 800, got %v", item.TotalCurrentPrice)
	}
	if item.ImageURL != "https://cdn/p9.jpg" {
		t.Fatalf("unexpected image url %q", item.ImageURL)
	}
}

func TestResolveSingleItemImageFallback(t *testing.T) {
	product := &models.Product{ProductID: "p9", Price: 100, CurrentPrice: 100}

	items, err := ResolveItems(models.SingleItemMode("p9"), Subject{Product: product})
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if items[0].ImageURL != "/images/logo.svg" {
		t.Fatalf("expected placeholder image, got %q", items[0].ImageURL)
	}
}

func TestResolveAbsentSubject(t *testing.T) {
	if _, err := ResolveItems(models.CartMode(), Subject{}); !errors.Is(err, ErrNothingToCheckOut) {
		t.Fatalf("expected ErrNothingToCheckOut for missing cart, got %v", err)
	}
	if _, err := ResolveItems(models.CartMode(), Subject{Cart: &models.Cart{}}); !errors.Is(err, ErrNothingToCheckOut) {
		t.Fatalf("expected ErrNothingToCheckOut for empty cart, got %v", err)
	}
	if _, err := ResolveItems(models.SingleItemMode("p1"), Subject{}); !errors.Is(err, ErrNothingToCheckOut) {
		t.Fatalf("expected ErrNothingToCheckOut for missing product, got %v", err)
	}
}

func TestModeFromParam(t *testing.T) {
	if mode := ModeFromParam("cart"); mode.Kind != models.CartCheckout {
		t.Fatalf("expected cart mode, got %+v", mode)
	}
	mode := ModeFromParam("p42")
	if mode.Kind != models.SingleItemCheckout || mode.ProductID != "p42" || mode.Quantity != 1 {
		t.Fatalf("expected single-item mode for p42, got %+v", mode)
	}
}
