package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"riskmonitor/internal/monitor"
)

var ruleColumns = []string{"client_id", "category", "active", "params", "created_at", "updated_at"}

// TestDB_UpsertRule tests storing a monitor rule.
func TestDB_UpsertRule(t *testing.T) {
	d, mock := newMockDB(t)
	ctx := context.Background()
	now := time.Now()

	rule := monitor.Rule{
		ClientID:       "client-1",
		Category:       monitor.CategoryMeteorological,
		Active:         true,
		Meteorological: &monitor.MeteorologicalParams{MinWarningLevel: monitor.WarningRed},
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		notFound  bool
	}{
		{
			name: "successful upsert",
			setupMock: func() {
				rows := sqlmock.NewRows(ruleColumns).
					AddRow("client-1", "meteorological", true, `{"min_warning_level":"red"}`, now, now)
				mock.ExpectQuery("INSERT INTO monitor_rules").
					WillReturnRows(rows)
			},
		},
		{
			name: "unknown client maps to not found",
			setupMock: func() {
				mock.ExpectQuery("INSERT INTO monitor_rules").
					WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr:  true,
			notFound: true,
		},
		{
			name: "database error",
			setupMock: func() {
				mock.ExpectQuery("INSERT INTO monitor_rules").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()
			got, err := d.UpsertRule(ctx, rule)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpsertRule() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.notFound && !errors.Is(err, ErrNotFound) {
				t.Errorf("UpsertRule() error = %v, want ErrNotFound", err)
			}
			if !tt.wantErr {
				if got.Meteorological == nil || got.Meteorological.MinWarningLevel != monitor.WarningRed {
					t.Errorf("UpsertRule() params = %+v, want red threshold", got.Meteorological)
				}
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("Mock expectations were not met: %v", err)
			}
		})
	}
}

// TestDB_GetRule tests retrieving a rule for one (client, category) pair.
func TestDB_GetRule(t *testing.T) {
	d, mock := newMockDB(t)
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		notFound  bool
		check     func(t *testing.T, rule *monitor.Rule)
	}{
		{
			name: "traffic rule with params",
			setupMock: func() {
				rows := sqlmock.NewRows(ruleColumns).
					AddRow("client-1", "traffic", true, `{"area_of_interest":"route","incident_scope":"closuresOnly"}`, now, now)
				mock.ExpectQuery("SELECT client_id, category, active, params").
					WithArgs("client-1", "traffic").
					WillReturnRows(rows)
			},
			check: func(t *testing.T, rule *monitor.Rule) {
				if rule.Traffic == nil {
					t.Fatal("Traffic params not decoded")
				}
				if rule.Traffic.AreaOfInterest != monitor.AreaRoute || rule.Traffic.IncidentScope != monitor.ScopeClosuresOnly {
					t.Errorf("Traffic params = %+v", rule.Traffic)
				}
			},
		},
		{
			name: "corrupt params fall back to defaults",
			setupMock: func() {
				rows := sqlmock.NewRows(ruleColumns).
					AddRow("client-1", "traffic", true, `{not json`, now, now)
				mock.ExpectQuery("SELECT client_id, category, active, params").
					WithArgs("client-1", "traffic").
					WillReturnRows(rows)
			},
			check: func(t *testing.T, rule *monitor.Rule) {
				if rule.Traffic == nil {
					t.Fatal("Traffic params not defaulted")
				}
				if rule.Traffic.AreaOfInterest != monitor.AreaMunicipality || rule.Traffic.IncidentScope != monitor.ScopeSevereOnly {
					t.Errorf("Traffic defaults = %+v", rule.Traffic)
				}
			},
		},
		{
			name: "rule not found",
			setupMock: func() {
				mock.ExpectQuery("SELECT client_id, category, active, params").
					WithArgs("client-1", "traffic").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr:  true,
			notFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()
			rule, err := d.GetRule(ctx, "client-1", monitor.CategoryTraffic)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetRule() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.notFound && !errors.Is(err, ErrNotFound) {
				t.Errorf("GetRule() error = %v, want ErrNotFound", err)
			}
			if tt.check != nil && err == nil {
				tt.check(t, rule)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("Mock expectations were not met: %v", err)
			}
		})
	}
}

// TestDB_ListRules tests listing rules with and without a client filter.
func TestDB_ListRules(t *testing.T) {
	d, mock := newMockDB(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("all rules", func(t *testing.T) {
		rows := sqlmock.NewRows(ruleColumns).
			AddRow("client-1", "meteorological", true, `{"min_warning_level":"orange"}`, now, now).
			AddRow("client-2", "corporate", false, `{"watched_acts":["merger","bankruptcy"]}`, now, now)
		mock.ExpectQuery("SELECT client_id, category, active, params").
			WillReturnRows(rows)

		rules, err := d.ListRules(ctx, nil)
		if err != nil {
			t.Fatalf("ListRules() error = %v", err)
		}
		if len(rules) != 2 {
			t.Fatalf("ListRules() returned %d rules, want 2", len(rules))
		}
		if rules[1].Corporate == nil || len(rules[1].Corporate.WatchedActs) != 2 {
			t.Errorf("corporate params = %+v", rules[1].Corporate)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Mock expectations were not met: %v", err)
		}
	})

	t.Run("filtered by client", func(t *testing.T) {
		rows := sqlmock.NewRows(ruleColumns).
			AddRow("client-1", "meteorological", true, `{"min_warning_level":"orange"}`, now, now)
		mock.ExpectQuery("SELECT client_id, category, active, params").
			WithArgs("client-1").
			WillReturnRows(rows)

		clientID := "client-1"
		rules, err := d.ListRules(ctx, &clientID)
		if err != nil {
			t.Fatalf("ListRules() error = %v", err)
		}
		if len(rules) != 1 {
			t.Fatalf("ListRules() returned %d rules, want 1", len(rules))
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Mock expectations were not met: %v", err)
		}
	})
}
