// Package handlers provides HTTP handlers for the riskmonitor API.
package handlers

import (
	"context"
	"log/slog"

	"riskmonitor/internal/database"
	"riskmonitor/internal/events"
	"riskmonitor/internal/metrics"
	"riskmonitor/internal/monitor"
	"riskmonitor/internal/producer"
	"riskmonitor/internal/snapshot"
)

// Handlers wraps dependencies for HTTP handlers.
type Handlers struct {
	db        Repository
	producer  MonitorPublisher
	snapshots SnapshotStore
	metrics   MetricsRecorder
}

// Option is a functional option for configuring Handlers.
type Option func(*Handlers)

// WithMetrics sets a custom metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(h *Handlers) {
		if m != nil {
			h.metrics = m
		}
	}
}

// NewHandlers creates a new handlers instance.
// If snapWriter or metricsCollector is nil, a no-op implementation is used.
func NewHandlers(db *database.DB, prod *producer.Producer, snapWriter *snapshot.Writer, metricsCollector *metrics.Collector, opts ...Option) *Handlers {
	h := &Handlers{
		db:        db,
		producer:  prod,
		snapshots: NoOpSnapshots{}, // Default to no-op, never nil
		metrics:   NoOpMetrics{},   // Default to no-op, never nil
	}

	if snapWriter != nil {
		h.snapshots = snapWriter
	}

	// If a metrics collector was provided, wrap it
	if metricsCollector != nil {
		h.metrics = &metricsAdapter{collector: metricsCollector}
	}

	// Apply any additional options
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// NewHandlersWithDeps creates handlers with explicit interface dependencies.
// This constructor is primarily for testing.
func NewHandlersWithDeps(db Repository, prod MonitorPublisher, snaps SnapshotStore, m MetricsRecorder) *Handlers {
	if snaps == nil {
		snaps = NoOpSnapshots{}
	}
	if m == nil {
		m = NoOpMetrics{}
	}
	return &Handlers{
		db:        db,
		producer:  prod,
		snapshots: snaps,
		metrics:   m,
	}
}

// publishMonitorChanged publishes a monitor.changed event after a successful
// rule store. Publish failures are logged, not surfaced: the rule is already
// committed and the snapshot refresh covers eventual consistency.
func (h *Handlers) publishMonitorChanged(ctx context.Context, rule *monitor.Rule, action string) {
	changed := &events.MonitorChanged{
		ClientID:      rule.ClientID,
		Category:      rule.Category,
		Action:        action,
		Active:        rule.Active,
		UpdatedAt:     rule.UpdatedAt.Unix(),
		SchemaVersion: events.SchemaVersion,
	}
	if err := h.producer.Publish(ctx, changed); err != nil {
		slog.Error("Failed to publish monitor.changed event",
			"error", err,
			"client_id", rule.ClientID,
			"category", rule.Category,
		)
		h.metrics.RecordError()
	}
}

// refreshSnapshot rebuilds the active-monitor snapshot from the database and
// writes it to Redis. Failures are logged, not surfaced, for the same reason
// as event publishing.
func (h *Handlers) refreshSnapshot(ctx context.Context) {
	rules, err := h.db.ListRules(ctx, nil)
	if err != nil {
		slog.Error("Failed to list rules for snapshot refresh", "error", err)
		h.metrics.RecordError()
		return
	}
	clients, err := h.db.ListClients(ctx)
	if err != nil {
		slog.Error("Failed to list clients for snapshot refresh", "error", err)
		h.metrics.RecordError()
		return
	}
	if err := h.snapshots.Write(ctx, snapshot.Build(rules, clients)); err != nil {
		slog.Error("Failed to write monitor snapshot", "error", err)
		h.metrics.RecordError()
	}
}
