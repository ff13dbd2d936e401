package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"riskmonitor/internal/alert"
)

const alertColumns = `alert_id, client_id, client_name, category, description, detail_text,
		       source, severity, occurred_at, status, notes, created_at, updated_at`

// scanAlert scans one alerts row into a record.
func scanAlert(scan func(dest ...interface{}) error) (*alert.Record, error) {
	var rec alert.Record
	var notes sql.NullString
	if err := scan(
		&rec.ID,
		&rec.ClientID,
		&rec.ClientName,
		&rec.Category,
		&rec.Description,
		&rec.DetailText,
		&rec.Source,
		&rec.Severity,
		&rec.OccurredAt,
		&rec.Status,
		&notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	rec.Notes = notes.String
	return &rec, nil
}

// CreateAlert persists a new alert record. The alert_id is assigned by the
// database and never reused; the stored record is returned.
func (db *DB) CreateAlert(ctx context.Context, rec alert.Record) (*alert.Record, error) {
	query := `
		INSERT INTO alerts (client_id, client_name, category, description, detail_text,
		                    source, severity, occurred_at, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + alertColumns + `
	`
	row := db.conn.QueryRowContext(ctx, query,
		rec.ClientID,
		rec.ClientName,
		rec.Category,
		rec.Description,
		rec.DetailText,
		rec.Source,
		rec.Severity,
		rec.OccurredAt,
		rec.Status,
		rec.Notes,
	)
	created, err := scanAlert(row.Scan)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return nil, fmt.Errorf("client %s: %w", rec.ClientID, ErrNotFound)
			}
		}
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return created, nil
}

// GetAlert retrieves an alert by ID.
func (db *DB) GetAlert(ctx context.Context, alertID string) (*alert.Record, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE alert_id = $1
	`
	row := db.conn.QueryRowContext(ctx, query, alertID)
	rec, err := scanAlert(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("alert %s: %w", alertID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return rec, nil
}

// ListAlerts retrieves alerts, optionally narrowed to one client, newest
// first. Finer-grained selection (text, category, status, date range) is
// the filter engine's job, applied by callers to the returned records.
func (db *DB) ListAlerts(ctx context.Context, clientID *string) ([]alert.Record, error) {
	var query string
	var args []interface{}

	if clientID != nil {
		query = `
			SELECT ` + alertColumns + `
			FROM alerts
			WHERE client_id = $1
			ORDER BY occurred_at DESC
		`
		args = []interface{}{*clientID}
	} else {
		query = `
			SELECT ` + alertColumns + `
			FROM alerts
			ORDER BY occurred_at DESC
		`
		args = []interface{}{}
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []alert.Record
	for rows.Next() {
		rec, err := scanAlert(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, *rec)
	}
	return alerts, rows.Err()
}

// UpdateAlert persists the operator-mutable fields (status, notes) of an
// alert. The caller is responsible for having applied a legal lifecycle
// transition; this is a whole-value replace, all-or-nothing.
func (db *DB) UpdateAlert(ctx context.Context, rec alert.Record) (*alert.Record, error) {
	query := `
		UPDATE alerts
		SET status = $2,
		    notes = $3,
		    updated_at = NOW()
		WHERE alert_id = $1
		RETURNING ` + alertColumns + `
	`
	row := db.conn.QueryRowContext(ctx, query, rec.ID, rec.Status, rec.Notes)
	updated, err := scanAlert(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("alert %s: %w", rec.ID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}
	return updated, nil
}
