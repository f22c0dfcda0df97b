package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"jubili-gateway/internal/models"
)

// ShippingClient quotes delivery cost for one shipment profile against the
// carrier-rate backend.
type ShippingClient struct {
	baseURL string
	client  *http.Client
}

func NewShippingClient(baseURL string, timeout time.Duration) *ShippingClient {
	return &ShippingClient{baseURL: baseURL, client: newHTTPClient(timeout)}
}

// QuoteShipment posts one shipment profile and returns the candidate charge
// breakdowns. The response always carries at least one breakdown on success.
func (c *ShippingClient) QuoteShipment(ctx context.Context, req models.ShipmentRequest) (*models.RateResponse, error) {
	endpoint := c.baseURL + "/api/delhivary/shipment/coast"

	var resp models.RateResponse
	if err := postJSON(ctx, c.client, endpoint, "", req, &resp); err != nil {
		return nil, fmt.Errorf("quote shipment %s: %w", req.Key(), err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("quote shipment %s: empty rate response", req.Key())
	}
	return &resp, nil
}
