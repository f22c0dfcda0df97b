package checkout

import (
	"errors"

	"jubili-gateway/internal/models"
)

// ErrNothingToCheckOut marks an absent or empty checkout subject. The
// resolved item list is empty and payment initiation must be blocked.
var ErrNothingToCheckOut = errors.New("nothing to check out")

// Subject is the raw checkout subject: the cart snapshot for cart mode, the
// fetched product for single-item mode. Whichever does not apply is nil.
type Subject struct {
	Cart    *models.Cart
	Product *models.Product
}

// ResolveItems normalizes the checkout subject into an ordered line-item
// list. An absent subject resolves to an empty list plus
// ErrNothingToCheckOut rather than failing into the calculation.
func ResolveItems(mode models.CheckoutMode, subject Subject) ([]models.LineItem, error) {
	switch mode.Kind {
	case models.CartCheckout:
		if subject.Cart == nil || len(subject.Cart.Items) == 0 {
			return nil, ErrNothingToCheckOut
		}
		return cartLineItems(subject.Cart.Items), nil
	case models.SingleItemCheckout:
		if subject.Product == nil {
			return nil, ErrNothingToCheckOut
		}
		quantity := mode.Quantity
		if quantity < 1 {
			quantity = 1
		}
		return []models.LineItem{singleLineItem(*subject.Product, quantity)}, nil
	default:
		return nil, ErrNothingToCheckOut
	}
}

func cartLineItems(items []models.CartItem) []models.LineItem {
	resolved := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		resolved = append(resolved, models.LineItem{
			ProductID:         item.ProductID,
			Name:              item.ProductName,
			Brand:             item.Brand,
			Category:          item.Category,
			Description:       item.Description,
			Price:             item.Price,
			CurrentPrice:      item.CurrentPrice,
			Quantity:          item.Quantity,
			ImageURL:          item.ImageURL,
			TotalCurrentPrice: item.TotalCurrentPrice,
			SellerID:          item.SellerID,
			AddressID:         item.AddressID,
			Dimensions:        item.Dimensions,
		})
	}
	return resolved
}

func singleLineItem(product models.Product, quantity int) models.LineItem {
	return models.LineItem{
		ProductID:         product.ProductID,
		Name:              product.ProductName,
		Brand:             product.Brand,
		Price:             product.Price,
		CurrentPrice:      product.CurrentPrice,
		Quantity:          quantity,
		ImageURL:          product.FirstImage(),
		TotalCurrentPrice: product.CurrentPrice * float64(quantity),
		SellerID:          product.SellerID,
		AddressID:         product.AddressID,
		Dimensions:        product.Dimensions,
	}
}
