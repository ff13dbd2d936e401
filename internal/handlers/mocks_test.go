// Package handlers provides test mocks for handler dependencies.
package handlers

import (
	"context"

	"riskmonitor/internal/alert"
	"riskmonitor/internal/database"
	"riskmonitor/internal/events"
	"riskmonitor/internal/monitor"
	"riskmonitor/internal/snapshot"
)

// mockRepository implements Repository interface for testing.
type mockRepository struct {
	// Callbacks for each method (set these to control behavior)
	CreateClientFn func(ctx context.Context, clientID, name string) error
	GetClientFn    func(ctx context.Context, clientID string) (*database.Client, error)
	ListClientsFn  func(ctx context.Context) ([]*database.Client, error)
	UpsertRuleFn   func(ctx context.Context, r monitor.Rule) (*monitor.Rule, error)
	GetRuleFn      func(ctx context.Context, clientID string, category monitor.Category) (*monitor.Rule, error)
	ListRulesFn    func(ctx context.Context, clientID *string) ([]*monitor.Rule, error)
	CreateAlertFn  func(ctx context.Context, rec alert.Record) (*alert.Record, error)
	GetAlertFn     func(ctx context.Context, alertID string) (*alert.Record, error)
	ListAlertsFn   func(ctx context.Context, clientID *string) ([]alert.Record, error)
	UpdateAlertFn  func(ctx context.Context, rec alert.Record) (*alert.Record, error)
}

func (m *mockRepository) CreateClient(ctx context.Context, clientID, name string) error {
	if m.CreateClientFn != nil {
		return m.CreateClientFn(ctx, clientID, name)
	}
	return nil
}

func (m *mockRepository) GetClient(ctx context.Context, clientID string) (*database.Client, error) {
	if m.GetClientFn != nil {
		return m.GetClientFn(ctx, clientID)
	}
	return &database.Client{ClientID: clientID, Name: "Test Client"}, nil
}

func (m *mockRepository) ListClients(ctx context.Context) ([]*database.Client, error) {
	if m.ListClientsFn != nil {
		return m.ListClientsFn(ctx)
	}
	return []*database.Client{}, nil
}

func (m *mockRepository) UpsertRule(ctx context.Context, r monitor.Rule) (*monitor.Rule, error) {
	if m.UpsertRuleFn != nil {
		return m.UpsertRuleFn(ctx, r)
	}
	stored := r
	return &stored, nil
}

func (m *mockRepository) GetRule(ctx context.Context, clientID string, category monitor.Category) (*monitor.Rule, error) {
	if m.GetRuleFn != nil {
		return m.GetRuleFn(ctx, clientID, category)
	}
	rule := monitor.NewRule(clientID, category)
	return &rule, nil
}

func (m *mockRepository) ListRules(ctx context.Context, clientID *string) ([]*monitor.Rule, error) {
	if m.ListRulesFn != nil {
		return m.ListRulesFn(ctx, clientID)
	}
	return []*monitor.Rule{}, nil
}

func (m *mockRepository) CreateAlert(ctx context.Context, rec alert.Record) (*alert.Record, error) {
	if m.CreateAlertFn != nil {
		return m.CreateAlertFn(ctx, rec)
	}
	created := rec
	created.ID = "alert-1"
	return &created, nil
}

func (m *mockRepository) GetAlert(ctx context.Context, alertID string) (*alert.Record, error) {
	if m.GetAlertFn != nil {
		return m.GetAlertFn(ctx, alertID)
	}
	return &alert.Record{ID: alertID, ClientID: "client-1", Status: alert.StatusNew}, nil
}

func (m *mockRepository) ListAlerts(ctx context.Context, clientID *string) ([]alert.Record, error) {
	if m.ListAlertsFn != nil {
		return m.ListAlertsFn(ctx, clientID)
	}
	return []alert.Record{}, nil
}

func (m *mockRepository) UpdateAlert(ctx context.Context, rec alert.Record) (*alert.Record, error) {
	if m.UpdateAlertFn != nil {
		return m.UpdateAlertFn(ctx, rec)
	}
	updated := rec
	return &updated, nil
}

func (m *mockRepository) Close() error { return nil }

// mockPublisher implements MonitorPublisher interface for testing.
type mockPublisher struct {
	PublishFn func(ctx context.Context, changed *events.MonitorChanged) error
	published []*events.MonitorChanged
}

func (m *mockPublisher) Publish(ctx context.Context, changed *events.MonitorChanged) error {
	m.published = append(m.published, changed)
	if m.PublishFn != nil {
		return m.PublishFn(ctx, changed)
	}
	return nil
}

func (m *mockPublisher) Close() error { return nil }

// mockSnapshots implements SnapshotStore interface for testing.
type mockSnapshots struct {
	WriteFn func(ctx context.Context, snap *snapshot.Snapshot) error
	written []*snapshot.Snapshot
}

func (m *mockSnapshots) Write(ctx context.Context, snap *snapshot.Snapshot) error {
	m.written = append(m.written, snap)
	if m.WriteFn != nil {
		return m.WriteFn(ctx, snap)
	}
	return nil
}
