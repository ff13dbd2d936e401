// Package config provides configuration parsing and validation for the
// riskmonitor binaries.
package config

import (
	"fmt"
	"time"
)

// ServiceConfig holds all configuration parameters for the HTTP service.
type ServiceConfig struct {
	HTTPPort            string
	PostgresDSN         string
	KafkaBrokers        string
	MonitorChangedTopic string
	RedisAddr           string
}

// Validate checks that all required configuration fields are set and have valid values.
// Returns an error if validation fails, nil otherwise.
func (c *ServiceConfig) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("http-port cannot be empty")
	}
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres-dsn cannot be empty")
	}
	if c.KafkaBrokers == "" {
		return fmt.Errorf("kafka-brokers cannot be empty")
	}
	if c.MonitorChangedTopic == "" {
		return fmt.Errorf("monitor-changed-topic cannot be empty")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("redis-addr cannot be empty")
	}
	return nil
}

// WatcherConfig holds all configuration parameters for the feed watcher.
type WatcherConfig struct {
	KafkaBrokers        string
	SignalsTopic        string
	ConsumerGroupID     string
	PostgresDSN         string
	RedisAddr           string
	VersionPollInterval time.Duration
}

// Validate checks that all required configuration fields are set and have valid values.
// Returns an error if validation fails, nil otherwise.
func (c *WatcherConfig) Validate() error {
	if c.KafkaBrokers == "" {
		return fmt.Errorf("kafka-brokers cannot be empty")
	}
	if c.SignalsTopic == "" {
		return fmt.Errorf("signals-topic cannot be empty")
	}
	if c.ConsumerGroupID == "" {
		return fmt.Errorf("consumer-group-id cannot be empty")
	}
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres-dsn cannot be empty")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("redis-addr cannot be empty")
	}
	if c.VersionPollInterval <= 0 {
		return fmt.Errorf("version-poll-interval must be > 0")
	}
	return nil
}
