// Package consumer reads raw feed signals from the signals.incoming topic.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"riskmonitor/internal/events"
	"riskmonitor/internal/kafkautil"
)

// Consumer wraps a Kafka reader and provides a simple interface for
// consuming feed signals.
type Consumer struct {
	reader *kafka.Reader
	topic  string
}

// NewConsumer creates a new Kafka consumer with the specified brokers,
// topic, and group ID, configured for at-least-once delivery.
func NewConsumer(brokers string, topic string, groupID string) (*Consumer, error) {
	if brokers == "" {
		return nil, fmt.Errorf("brokers cannot be empty")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return nil, fmt.Errorf("groupID cannot be empty")
	}

	brokerList := kafkautil.ParseBrokers(brokers)

	slog.Info("Initializing Kafka consumer",
		"brokers", brokerList,
		"topic", topic,
		"group_id", groupID,
	)

	reader := kafka.NewReader(kafkautil.NewReaderConfig(brokerList, topic, groupID))

	return &Consumer{
		reader: reader,
		topic:  topic,
	}, nil
}

// ReadSignal reads the next message from Kafka and deserializes it as a
// feed signal.
func (c *Consumer) ReadSignal(ctx context.Context) (*events.Signal, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read message from Kafka: %w", err)
	}

	var signal events.Signal
	if err := json.Unmarshal(msg.Value, &signal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal signal: %w", err)
	}

	return &signal, nil
}

// Close gracefully closes the Kafka reader and releases resources.
func (c *Consumer) Close() error {
	slog.Info("Closing Kafka consumer", "topic", c.topic)
	return c.reader.Close()
}
