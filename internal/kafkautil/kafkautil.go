// Package kafkautil provides shared Kafka configuration for producer and
// consumer sides.
package kafkautil

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	// WriteTimeout is the maximum time to wait for a Kafka write operation.
	WriteTimeout = 10 * time.Second
	// MaxPollWait is the maximum time the reader waits for a fetch.
	MaxPollWait = 1 * time.Second
	// CommitInterval is how often consumed offsets are committed.
	CommitInterval = 1 * time.Second
)

// ParseBrokers parses a comma-separated broker list and trims whitespace.
func ParseBrokers(brokers string) []string {
	if brokers == "" {
		return nil
	}
	brokerList := strings.Split(brokers, ",")
	for i := range brokerList {
		brokerList[i] = strings.TrimSpace(brokerList[i])
	}
	return brokerList
}

// NewReaderConfig creates the standard reader configuration for
// at-least-once delivery, shared by every consumer in the repository.
// StartOffset only applies when no committed offset exists for the group;
// FirstOffset ensures nothing is skipped on a fresh start.
func NewReaderConfig(brokers []string, topic, groupID string) kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,    // Return immediately when any data is available
		MaxBytes:       10e6, // 10MB
		MaxWait:        MaxPollWait,
		CommitInterval: CommitInterval,
		StartOffset:    kafka.FirstOffset,
	}
}
