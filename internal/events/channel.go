package events

import (
	"log"
	"sync"

	"jubili-gateway/internal/models"
)

// State is the order-creation progression of one checkout attempt.
type State int

const (
	StateIdle State = iota
	StateCreating
	StateCreated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreating:
		return "creating"
	case StateCreated:
		return "created"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Channel tracks one checkout attempt's order events. It must be opened
// before the order-creation call goes out, so the ORDER_CREATING event the
// backend emits immediately is not missed. The channel closes itself on the
// first terminal event; Close handles teardown before one arrives. A single
// order attempt owns a single channel instance.
type Channel struct {
	sub    *Subscription
	events chan models.OrderEvent

	mu      sync.Mutex
	state   State
	orderID string
	failure string

	done      chan struct{}
	closeOnce sync.Once
}

// OpenChannel subscribes to a user's order events and starts tracking state.
func OpenChannel(broker *Broker, userID string) *Channel {
	c := &Channel{
		sub:    broker.Subscribe(userID),
		events: make(chan models.OrderEvent, subscriptionBuffer),
		done:   make(chan struct{}),
	}
	go c.run(userID)
	return c
}

func (c *Channel) run(userID string) {
	// events is closed here, not in Close, so a teardown racing an inbound
	// event can never send on a closed channel.
	defer close(c.events)
	defer c.Close()

	for event := range c.sub.Events() {
		terminal := c.apply(userID, event)

		select {
		case c.events <- event:
		default:
		}

		if terminal {
			return
		}
	}
}

// apply advances the state machine and reports whether the event was
// terminal.
func (c *Channel) apply(userID string, event models.OrderEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Type {
	case models.EventOrderCreating:
		c.state = StateCreating
		log.Println("[ORDER] [INFO] order is being created, user:", userID)
	case models.EventOrderCreated:
		c.state = StateCreated
		c.orderID = event.OrderID
		log.Println("[ORDER] [INFO] order created:", event.OrderID)
		return true
	case models.EventOrderFailed:
		c.state = StateFailed
		c.failure = event.Message
		log.Println("[ORDER] [ERROR] order failed:", event.Message)
		return true
	default:
		log.Println("[ORDER] [ERROR] unknown order event type:", event.Type)
	}
	return false
}

// Events forwards the events seen by this channel. Closed on terminal event
// or teardown.
func (c *Channel) Events() <-chan models.OrderEvent {
	return c.events
}

// Done is closed once the channel has shut down.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// State returns the current progression state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OrderID returns the created order id, set once StateCreated is reached.
func (c *Channel) OrderID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orderID
}

// FailureMessage returns the server-supplied failure reason, set once
// StateFailed is reached.
func (c *Channel) FailureMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// Close releases the subscription. Idempotent; called automatically on the
// first terminal event.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		c.sub.Close()
		close(c.done)
	})
}
