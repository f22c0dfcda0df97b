package models

// Product is a single product as served by the catalog backend.
type Product struct {
	ProductID          string            `json:"productId"`
	ProductName        string            `json:"productName"`
	ProductDescription string            `json:"productDescription,omitempty"`
	Brand              string            `json:"brand"`
	Price              float64           `json:"price"`
	CurrentPrice       float64           `json:"currentPrice"`
	Stock              int               `json:"stock"`
	ImageURLs          []string          `json:"imageUrls"`
	SellerID           string            `json:"sellerId,omitempty"`
	SellerName         string            `json:"sellerName,omitempty"`
	AddressID          string            `json:"addressId,omitempty"`
	CategoryID         string            `json:"categoryId,omitempty"`
	Dimensions         Dimensions        `json:"dimensions"`
	Attributes         map[string]string `json:"attributes,omitempty"`
	LikeCount          int               `json:"likeCount,omitempty"`
}

// FirstImage returns the primary product image, falling back to the
// placeholder asset used across the storefront.
func (p Product) FirstImage() string {
	if len(p.ImageURLs) > 0 && p.ImageURLs[0] != "" {
		return p.ImageURLs[0]
	}
	return "/images/logo.svg"
}
