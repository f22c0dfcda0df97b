package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/segmentio/kafka-go"

	"jubili-gateway/internal/models"
)

// Consumer reads order lifecycle events from the order backend's topic and
// feeds them into the broker. Returns nil when no brokers are configured;
// events can still be published to the broker directly.
type Consumer struct {
	reader *kafka.Reader
	broker *Broker
}

func NewConsumer(brokersCSV, topic string, broker *Broker) *Consumer {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: "jubili-gateway",
	})
	return &Consumer{reader: reader, broker: broker}
}

// Run consumes until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	log.Println("[EVENTS] [INFO] order event consumer started")
	for {
		message, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			log.Println("[EVENTS] [ERROR] read order event failed:", err)
			continue
		}

		var event models.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Println("[EVENTS] [ERROR] invalid order event payload:", err)
			continue
		}
		if event.UserID == "" {
			log.Println("[EVENTS] [ERROR] order event missing userId, type:", event.Type)
			continue
		}

		c.broker.Publish(event)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
