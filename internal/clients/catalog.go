package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"jubili-gateway/internal/models"
)

// CatalogClient fetches carts and products from the catalog backend.
type CatalogClient struct {
	baseURL string
	client  *http.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{baseURL: baseURL, client: newHTTPClient(timeout)}
}

// GetCart fetches the current cart snapshot for a user.
func (c *CatalogClient) GetCart(ctx context.Context, userID, token string) (*models.Cart, error) {
	endpoint := fmt.Sprintf("%s/api/cart?userId=%s", c.baseURL, url.QueryEscape(userID))

	var cart models.Cart
	if err := getJSON(ctx, c.client, endpoint, token, &cart); err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}
	return &cart, nil
}

// GetProduct fetches a single product by id.
func (c *CatalogClient) GetProduct(ctx context.Context, productID, token string) (*models.Product, error) {
	endpoint := fmt.Sprintf("%s/api/products/%s", c.baseURL, url.PathEscape(productID))

	var product models.Product
	if err := getJSON(ctx, c.client, endpoint, token, &product); err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", productID, err)
	}
	return &product, nil
}
