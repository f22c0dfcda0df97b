package handlers

import (
	"strings"
	"testing"

	"jubili-gateway/internal/models"
)

func TestNewAddressIDCarriesRoutingPrefix(t *testing.T) {
	id := newAddressID("700001")
	if !strings.HasPrefix(id, "700001-") {
		t.Fatalf("expected postal-code prefix, got %q", id)
	}
	if models.RoutingCodeOf(id) != "700001" {
		t.Fatalf("routing code derivation broken for %q", id)
	}
}

func TestNewAddressIDUniqueSuffixes(t *testing.T) {
	if newAddressID("700001") == newAddressID("700001") {
		t.Fatal("expected distinct suffixes for same postal code")
	}
}

func TestAddressFromRequestDefaultsType(t *testing.T) {
	address := addressFromRequest(addressRequest{
		Name:         " Alex Doe ",
		PhoneNumber:  "9876543210",
		AddressLine1: "221B Baker Street",
		City:         "Mumbai",
		State:        "MH",
		PostalCode:   "400001",
		Country:      "IN",
	}, "400001-abc")

	if address.AddressType != "HOME" {
		t.Fatalf("expected HOME default, got %q", address.AddressType)
	}
	if address.Name != "Alex Doe" {
		t.Fatalf("expected trimmed name, got %q", address.Name)
	}
	if address.RoutingCode() != "400001" {
		t.Fatalf("unexpected routing code %q", address.RoutingCode())
	}
}

func TestSelectedAddressMatchesDerivationSource(t *testing.T) {
	user := models.User{
		UserID: "u1",
		Addresses: []models.Address{
			{AddressID: "110001-a", Name: "Home", IsDefault: false},
			{AddressID: "700001-b", Name: "Office", IsDefault: true},
		},
	}

	selected := user.AddressByID("110001-a")
	if selected == nil || selected.Name != "Home" {
		t.Fatalf("lookup by id failed: %+v", selected)
	}
	if selected.RoutingCode() != "110001" {
		t.Fatalf("destination derivation must use the selected address, got %q", selected.RoutingCode())
	}

	fallback := user.DefaultAddress()
	if fallback == nil || fallback.AddressID != "700001-b" {
		t.Fatalf("default selection broken: %+v", fallback)
	}
}
