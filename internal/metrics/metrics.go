package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckoutMetrics tracks the orchestration flow: rate-quote traffic, payment
// initiations and order lifecycle events.
type CheckoutMetrics struct {
	QuoteRequests     *prometheus.CounterVec
	QuoteCacheHits    prometheus.Counter
	QuoteLatencyMS    prometheus.Histogram
	PaymentsInitiated *prometheus.CounterVec
	OrderEvents       *prometheus.CounterVec
}

func NewCheckoutMetrics() *CheckoutMetrics {
	quoteRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jubili",
		Subsystem: "checkout",
		Name:      "quote_requests_total",
		Help:      "Total carrier rate-quote requests issued.",
	}, []string{"result"})
	quoteCacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "jubili",
		Subsystem: "checkout",
		Name:      "quote_cache_hits_total",
		Help:      "Rate quotes served from cache.",
	})
	quoteLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "jubili",
		Subsystem: "checkout",
		Name:      "quote_request_duration_ms",
		Help:      "Carrier rate-quote latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})
	paymentsInitiated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jubili",
		Subsystem: "checkout",
		Name:      "payments_initiated_total",
		Help:      "Payment initiations by checkout mode and outcome.",
	}, []string{"mode", "outcome"})
	orderEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jubili",
		Subsystem: "checkout",
		Name:      "order_events_total",
		Help:      "Order lifecycle events fanned out to subscribers.",
	}, []string{"type"})

	prometheus.MustRegister(quoteRequests, quoteCacheHits, quoteLatency, paymentsInitiated, orderEvents)
	return &CheckoutMetrics{
		QuoteRequests:     quoteRequests,
		QuoteCacheHits:    quoteCacheHits,
		QuoteLatencyMS:    quoteLatency,
		PaymentsInitiated: paymentsInitiated,
		OrderEvents:       orderEvents,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
