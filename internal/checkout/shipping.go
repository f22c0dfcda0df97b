package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"jubili-gateway/internal/cache"
	"jubili-gateway/internal/metrics"
	"jubili-gateway/internal/models"
)

// RateAPI is the carrier-rate collaborator.
type RateAPI interface {
	QuoteShipment(ctx context.Context, req models.ShipmentRequest) (*models.RateResponse, error)
}

// Aggregator computes delivery cost per unique shipment profile and
// attributes it back to every line item sharing the profile. A change to the
// cart, the product or the selected address invalidates the whole batch;
// there is no incremental update.
type Aggregator struct {
	rates   RateAPI
	cache   *cache.QuoteCache
	metrics *metrics.CheckoutMetrics
	group   singleflight.Group
}

// NewAggregator builds an aggregator. The quote cache is optional.
func NewAggregator(rates RateAPI, quoteCache *cache.QuoteCache, m *metrics.CheckoutMetrics) *Aggregator {
	return &Aggregator{rates: rates, cache: quoteCache, metrics: m}
}

// BuildShipmentRequests collapses line items into unique shipment profiles,
// preserving first-seen order. Items missing dimensions default all
// dimension fields to zero; the item's origin is the routing-code prefix of
// its seller address id.
func BuildShipmentRequests(items []models.LineItem, destination string) []models.ShipmentRequest {
	seen := make(map[string]struct{}, len(items))
	requests := make([]models.ShipmentRequest, 0, len(items))

	for _, item := range items {
		req := shipmentRequestFor(item, destination)
		key := req.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		requests = append(requests, req)
	}
	return requests
}

func shipmentRequestFor(item models.LineItem, destination string) models.ShipmentRequest {
	return models.ShipmentRequest{
		Origin:      models.RoutingCodeOf(item.AddressID),
		Destination: destination,
		Length:      item.Dimensions.Length,
		Breadth:     item.Dimensions.Breadth,
		Height:      item.Dimensions.Height,
		Weight:      item.Dimensions.Weight,
	}
}

// QuoteAll fetches a delivery charge for every unique shipment profile of
// the given items, concurrently. The batch fails together: any request
// failing fails the whole call and the caller keeps its last-known charges.
func (a *Aggregator) QuoteAll(ctx context.Context, items []models.LineItem, destination string) (map[string]float64, error) {
	requests := BuildShipmentRequests(items, destination)
	if len(requests) == 0 {
		return map[string]float64{}, nil
	}

	charges := make([]float64, len(requests))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, req := range requests {
		group.Go(func() error {
			charge, err := a.quoteOne(groupCtx, req)
			if err != nil {
				return err
			}
			charges[i] = charge
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("delivery cost calculation failed: %w", err)
	}

	byProfile := make(map[string]float64, len(requests))
	for i, req := range requests {
		byProfile[req.Key()] = charges[i]
	}
	return byProfile, nil
}

// quoteOne returns the charge for a single profile, consulting the cache
// first and collapsing concurrent identical misses.
func (a *Aggregator) quoteOne(ctx context.Context, req models.ShipmentRequest) (float64, error) {
	key := req.Key()

	if a.cache != nil {
		charge, err := a.cache.Get(ctx, key)
		if err == nil {
			if a.metrics != nil {
				a.metrics.QuoteCacheHits.Inc()
			}
			return charge, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Println("[SHIPPING] [ERROR] quote cache get failed:", err)
		}
	}

	value, err, _ := a.group.Do(key, func() (interface{}, error) {
		start := time.Now()
		resp, err := a.rates.QuoteShipment(ctx, req)
		if a.metrics != nil {
			a.metrics.QuoteLatencyMS.Observe(float64(time.Since(start).Milliseconds()))
			if err != nil {
				a.metrics.QuoteRequests.WithLabelValues("error").Inc()
			} else {
				a.metrics.QuoteRequests.WithLabelValues("ok").Inc()
			}
		}
		if err != nil {
			return 0.0, err
		}

		// Only the first candidate breakdown's total_amount is used, halved.
		// Business rule carried over from the storefront; do not re-derive.
		charge := resp.Data[0].TotalAmount / 2

		if a.cache != nil {
			if cacheErr := a.cache.Set(ctx, key, charge); cacheErr != nil {
				log.Println("[SHIPPING] [ERROR] quote cache set failed:", cacheErr)
			}
		}
		return charge, nil
	})
	if err != nil {
		return 0, err
	}
	return value.(float64), nil
}

// AttachDeliveryCharges fans per-profile charges back out to every line item
// sharing the profile, producing a new slice. Items whose profile has no
// charge keep zero.
func AttachDeliveryCharges(items []models.LineItem, charges map[string]float64, destination string) []models.LineItem {
	attributed := make([]models.LineItem, len(items))
	for i, item := range items {
		item.DeliveryCharge = charges[shipmentRequestFor(item, destination).Key()]
		attributed[i] = item
	}
	return attributed
}

// TotalDelivery sums the per-profile charges of one quote batch.
func TotalDelivery(charges map[string]float64) float64 {
	var total float64
	for _, charge := range charges {
		total += charge
	}
	return total
}
