package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the slice of kafka.Writer the notifier uses, split out so
// tests can capture messages without a broker.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ShipmentEvent is the payload published for each committed checkout with
// shippable items.
type ShipmentEvent struct {
	ShipmentID    string        `json:"shipment_id"`
	Items         []PackageItem `json:"items"`
	TotalWeightKg float64       `json:"total_weight_kg"`
	CreatedAt     time.Time     `json:"created_at"`
}

// KafkaNotifier publishes shipment events to a Kafka topic. Delivery is best
// effort; the checkout that triggered it has already committed.
type KafkaNotifier struct {
	writer messageWriter
}

func NewKafkaNotifier(topic string, brokers ...string) *KafkaNotifier {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
	return &KafkaNotifier{writer: w}
}

func (n *KafkaNotifier) NotifyShipment(ctx context.Context, items []PackageItem) error {
	event := ShipmentEvent{
		ShipmentID:    uuid.New().String(),
		Items:         items,
		TotalWeightKg: TotalWeightKg(items),
		CreatedAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal shipment event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ShipmentID), // shipment_id for ordering
		Value: payload,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish shipment event: %w", err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
