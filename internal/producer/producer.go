// Package producer publishes monitor.changed events to Kafka.
package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"riskmonitor/internal/events"
	"riskmonitor/internal/kafkautil"
)

// Producer wraps a Kafka writer and provides a simple interface for
// publishing monitor changed events.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer with the specified brokers and
// topic, configured for at-least-once delivery with synchronous writes.
func NewProducer(brokers string, topic string) (*Producer, error) {
	if brokers == "" {
		return nil, fmt.Errorf("brokers cannot be empty")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	brokerList := kafkautil.ParseBrokers(brokers)

	slog.Info("Initializing Kafka producer",
		"brokers", brokerList,
		"topic", topic,
	)

	// Hash balancer partitions by message key, so all changes for one
	// (client, category) pair land on the same partition in order.
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerList...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: kafkautil.WriteTimeout,
		RequiredAcks: kafka.RequireOne,
		Async:        false, // Synchronous writes for reliability and error handling
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}, nil
}

// Publish serializes a monitor changed event to JSON and publishes it,
// keyed by client_id:category.
func (p *Producer) Publish(ctx context.Context, changed *events.MonitorChanged) error {
	payload, err := json.Marshal(changed)
	if err != nil {
		return fmt.Errorf("failed to marshal monitor changed event: %w", err)
	}

	key := changed.ClientID + ":" + string(changed.Category)

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "schema_version", Value: []byte(fmt.Sprintf("%d", changed.SchemaVersion))},
			{Key: "action", Value: []byte(changed.Action)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("Failed to write message to Kafka",
			"client_id", changed.ClientID,
			"category", changed.Category,
			"topic", p.topic,
			"error", err,
		)
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	slog.Info("Published monitor changed event",
		"client_id", changed.ClientID,
		"category", changed.Category,
		"action", changed.Action,
	)

	return nil
}

// Close gracefully closes the Kafka writer and releases resources.
func (p *Producer) Close() error {
	slog.Info("Closing Kafka producer", "topic", p.topic)
	return p.writer.Close()
}
