// Package handlers provides HTTP handlers for the riskmonitor API.
package handlers

import (
	"context"
	"time"

	"riskmonitor/internal/alert"
	"riskmonitor/internal/database"
	"riskmonitor/internal/events"
	"riskmonitor/internal/monitor"
	"riskmonitor/internal/snapshot"
)

// MonitorPublisher defines the interface for publishing monitor change events to Kafka.
// This interface allows for dependency injection and easier testing.
type MonitorPublisher interface {
	// Publish sends a monitor changed event to Kafka.
	// Returns an error if serialization or publishing fails.
	Publish(ctx context.Context, changed *events.MonitorChanged) error

	// Close gracefully closes the publisher and releases resources.
	Close() error
}

// SnapshotStore defines the interface for persisting the active-monitor
// snapshot that the feed watcher evaluates against.
type SnapshotStore interface {
	Write(ctx context.Context, snap *snapshot.Snapshot) error
}

// NoOpSnapshots is a no-op implementation of SnapshotStore.
type NoOpSnapshots struct{}

var _ SnapshotStore = (*NoOpSnapshots)(nil)

func (NoOpSnapshots) Write(_ context.Context, _ *snapshot.Snapshot) error { return nil }

// Repository defines the interface for database operations.
// This allows handlers to be tested without a real database.
type Repository interface {
	// Client operations
	CreateClient(ctx context.Context, clientID, name string) error
	GetClient(ctx context.Context, clientID string) (*database.Client, error)
	ListClients(ctx context.Context) ([]*database.Client, error)

	// Monitor rule operations
	UpsertRule(ctx context.Context, r monitor.Rule) (*monitor.Rule, error)
	GetRule(ctx context.Context, clientID string, category monitor.Category) (*monitor.Rule, error)
	ListRules(ctx context.Context, clientID *string) ([]*monitor.Rule, error)

	// Alert operations
	CreateAlert(ctx context.Context, rec alert.Record) (*alert.Record, error)
	GetAlert(ctx context.Context, alertID string) (*alert.Record, error)
	ListAlerts(ctx context.Context, clientID *string) ([]alert.Record, error)
	UpdateAlert(ctx context.Context, rec alert.Record) (*alert.Record, error)

	// Lifecycle
	Close() error
}

// MetricsRecorder defines the interface for recording metrics.
// This uses the null object pattern - a no-op implementation avoids nil checks.
type MetricsRecorder interface {
	RecordReceived()
	RecordError()
	IncrementCustom(name string)
}

// NoOpMetrics is a no-op implementation of MetricsRecorder.
// Use this when metrics collection is not needed, avoiding nil checks.
type NoOpMetrics struct{}

// Ensure NoOpMetrics implements MetricsRecorder.
var _ MetricsRecorder = (*NoOpMetrics)(nil)

func (NoOpMetrics) RecordReceived()          {}
func (NoOpMetrics) RecordError()             {}
func (NoOpMetrics) IncrementCustom(_ string) {}

// metricsAdapter wraps the metrics.Collector to implement MetricsRecorder.
type metricsAdapter struct {
	collector metricsCollectorInterface
}

// metricsCollectorInterface defines the subset of metrics.Collector methods we use.
type metricsCollectorInterface interface {
	RecordReceived()
	RecordEvaluated(latency time.Duration)
	RecordError()
	IncrementCustom(name string)
}

func (a *metricsAdapter) RecordReceived()            { a.collector.RecordReceived() }
func (a *metricsAdapter) RecordError()               { a.collector.RecordError() }
func (a *metricsAdapter) IncrementCustom(name string) { a.collector.IncrementCustom(name) }
