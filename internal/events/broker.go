package events

import (
	"log"
	"sync"

	"jubili-gateway/internal/metrics"
	"jubili-gateway/internal/models"
)

const subscriptionBuffer = 16

// Broker fans order lifecycle events out to the subscribers of a user. Each
// checkout attempt and each SSE stream owns its own subscription; there is
// no shared state across attempts beyond the subscriber map itself.
type Broker struct {
	mu      sync.RWMutex
	subs    map[string]map[*Subscription]struct{}
	metrics *metrics.CheckoutMetrics
}

func NewBroker(m *metrics.CheckoutMetrics) *Broker {
	return &Broker{
		subs:    make(map[string]map[*Subscription]struct{}),
		metrics: m,
	}
}

// Subscription is one listener for a user's order events.
type Subscription struct {
	broker *Broker
	userID string
	ch     chan models.OrderEvent
	once   sync.Once
}

// Subscribe registers a listener for the given user. The caller must Close
// the subscription when done.
func (b *Broker) Subscribe(userID string) *Subscription {
	sub := &Subscription{
		broker: b,
		userID: userID,
		ch:     make(chan models.OrderEvent, subscriptionBuffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[*Subscription]struct{})
	}
	b.subs[userID][sub] = struct{}{}
	return sub
}

// Publish delivers an event to every subscriber of its user. Delivery never
// blocks: a subscriber that stopped draining loses the event.
func (b *Broker) Publish(event models.OrderEvent) {
	if b.metrics != nil {
		b.metrics.OrderEvents.WithLabelValues(event.Type).Inc()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs[event.UserID] {
		select {
		case sub.ch <- event:
		default:
			log.Println("[EVENTS] [ERROR] dropping event for slow subscriber, user:", event.UserID)
		}
	}
}

// Events is the stream of events for this subscription. It is closed by
// Close.
func (s *Subscription) Events() <-chan models.OrderEvent {
	return s.ch
}

// Close deregisters the subscription and closes its event stream. Safe to
// call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.mu.Lock()
		if subs := s.broker.subs[s.userID]; subs != nil {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.broker.subs, s.userID)
			}
		}
		s.broker.mu.Unlock()
		close(s.ch)
	})
}
