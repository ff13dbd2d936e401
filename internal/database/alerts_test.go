package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"riskmonitor/internal/alert"
)

var alertTestColumns = []string{
	"alert_id", "client_id", "client_name", "category", "description", "detail_text",
	"source", "severity", "occurred_at", "status", "notes", "created_at", "updated_at",
}

func addAlertRow(rows *sqlmock.Rows, now time.Time, id, status string, notes interface{}) *sqlmock.Rows {
	return rows.AddRow(
		id, "client-1", "Construcciones Vega SL", "meteorological",
		"Tormenta severa en Madrid", "Aviso naranja por tormentas", "AEMET",
		"high", now, status, notes, now, now,
	)
}

// TestDB_CreateAlert tests persisting a new alert record.
func TestDB_CreateAlert(t *testing.T) {
	d, mock := newMockDB(t)
	ctx := context.Background()
	now := time.Now()

	rec := alert.Record{
		ClientID:    "client-1",
		ClientName:  "Construcciones Vega SL",
		Category:    "meteorological",
		Description: "Tormenta severa en Madrid",
		DetailText:  "Aviso naranja por tormentas",
		Source:      "AEMET",
		Severity:    alert.SeverityHigh,
		OccurredAt:  now,
		Status:      alert.StatusNew,
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		notFound  bool
	}{
		{
			name: "successful create",
			setupMock: func() {
				rows := addAlertRow(sqlmock.NewRows(alertTestColumns), now, "alert-1", "new", nil)
				mock.ExpectQuery("INSERT INTO alerts").WillReturnRows(rows)
			},
		},
		{
			name: "unknown client maps to not found",
			setupMock: func() {
				mock.ExpectQuery("INSERT INTO alerts").
					WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr:  true,
			notFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()
			created, err := d.CreateAlert(ctx, rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateAlert() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.notFound && !errors.Is(err, ErrNotFound) {
				t.Errorf("CreateAlert() error = %v, want ErrNotFound", err)
			}
			if !tt.wantErr {
				if created.ID != "alert-1" {
					t.Errorf("CreateAlert() ID = %q, want alert-1", created.ID)
				}
				if created.Status != alert.StatusNew {
					t.Errorf("CreateAlert() Status = %q, want new", created.Status)
				}
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("Mock expectations were not met: %v", err)
			}
		})
	}
}

// TestDB_GetAlert tests retrieving an alert by ID.
func TestDB_GetAlert(t *testing.T) {
	d, mock := newMockDB(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("found with null notes", func(t *testing.T) {
		rows := addAlertRow(sqlmock.NewRows(alertTestColumns), now, "alert-1", "new", nil)
		mock.ExpectQuery("SELECT").WithArgs("alert-1").WillReturnRows(rows)

		rec, err := d.GetAlert(ctx, "alert-1")
		if err != nil {
			t.Fatalf("GetAlert() error = %v", err)
		}
		if rec.Notes != "" {
			t.Errorf("GetAlert() Notes = %q, want empty for NULL column", rec.Notes)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Mock expectations were not met: %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := d.GetAlert(ctx, "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("GetAlert() error = %v, want ErrNotFound", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Mock expectations were not met: %v", err)
		}
	})
}

// TestDB_ListAlerts tests listing alerts with and without a client filter.
func TestDB_ListAlerts(t *testing.T) {
	d, mock := newMockDB(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("all alerts", func(t *testing.T) {
		rows := sqlmock.NewRows(alertTestColumns)
		rows = addAlertRow(rows, now, "alert-2", "seen", "checked")
		rows = addAlertRow(rows, now, "alert-1", "new", nil)
		mock.ExpectQuery("SELECT").WillReturnRows(rows)

		alerts, err := d.ListAlerts(ctx, nil)
		if err != nil {
			t.Fatalf("ListAlerts() error = %v", err)
		}
		if len(alerts) != 2 {
			t.Fatalf("ListAlerts() returned %d alerts, want 2", len(alerts))
		}
		if alerts[0].Notes != "checked" {
			t.Errorf("alerts[0].Notes = %q, want checked", alerts[0].Notes)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Mock expectations were not met: %v", err)
		}
	})

	t.Run("filtered by client", func(t *testing.T) {
		rows := addAlertRow(sqlmock.NewRows(alertTestColumns), now, "alert-1", "new", nil)
		mock.ExpectQuery("SELECT").WithArgs("client-1").WillReturnRows(rows)

		clientID := "client-1"
		alerts, err := d.ListAlerts(ctx, &clientID)
		if err != nil {
			t.Fatalf("ListAlerts() error = %v", err)
		}
		if len(alerts) != 1 {
			t.Fatalf("ListAlerts() returned %d alerts, want 1", len(alerts))
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Mock expectations were not met: %v", err)
		}
	})
}

// TestDB_UpdateAlert tests persisting operator-mutable fields.
func TestDB_UpdateAlert(t *testing.T) {
	d, mock := newMockDB(t)
	ctx := context.Background()
	now := time.Now()

	rec := alert.Record{ID: "alert-1", Status: alert.StatusManaged, Notes: "resolved"}

	t.Run("successful update", func(t *testing.T) {
		rows := addAlertRow(sqlmock.NewRows(alertTestColumns), now, "alert-1", "managed", "resolved")
		mock.ExpectQuery("UPDATE alerts").
			WithArgs("alert-1", "managed", "resolved").
			WillReturnRows(rows)

		updated, err := d.UpdateAlert(ctx, rec)
		if err != nil {
			t.Fatalf("UpdateAlert() error = %v", err)
		}
		if updated.Status != alert.StatusManaged || updated.Notes != "resolved" {
			t.Errorf("UpdateAlert() = %+v", updated)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Mock expectations were not met: %v", err)
		}
	})

	t.Run("alert not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE alerts").
			WithArgs("alert-1", "managed", "resolved").
			WillReturnError(sql.ErrNoRows)

		_, err := d.UpdateAlert(ctx, rec)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("UpdateAlert() error = %v, want ErrNotFound", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Mock expectations were not met: %v", err)
		}
	})
}
