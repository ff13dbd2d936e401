package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"riskmonitor/internal/monitor"
)

// marshalRuleParams serializes the parameter variant matching the rule's
// category for storage in the params JSONB column.
func marshalRuleParams(r monitor.Rule) ([]byte, error) {
	var params interface{}
	switch r.Category {
	case monitor.CategoryMeteorological:
		params = r.Meteorological
	case monitor.CategoryTraffic:
		params = r.Traffic
	case monitor.CategoryCorporate:
		params = r.Corporate
	default:
		return nil, fmt.Errorf("unknown category: %s", r.Category)
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rule params: %w", err)
	}
	return data, nil
}

// unmarshalRuleParams decodes the params column into the parameter variant
// matching the rule's category. A missing or corrupt column falls back to
// defaults so a single bad row cannot take rule listing down.
func unmarshalRuleParams(r *monitor.Rule, paramsJSON sql.NullString) {
	if !paramsJSON.Valid || paramsJSON.String == "" {
		r.Meteorological, r.Traffic, r.Corporate = nil, nil, nil
	} else {
		var err error
		switch r.Category {
		case monitor.CategoryMeteorological:
			r.Meteorological = &monitor.MeteorologicalParams{}
			err = json.Unmarshal([]byte(paramsJSON.String), r.Meteorological)
		case monitor.CategoryTraffic:
			r.Traffic = &monitor.TrafficParams{}
			err = json.Unmarshal([]byte(paramsJSON.String), r.Traffic)
		case monitor.CategoryCorporate:
			r.Corporate = &monitor.CorporateParams{}
			err = json.Unmarshal([]byte(paramsJSON.String), r.Corporate)
		}
		if err == nil {
			return
		}
		slog.Warn("Failed to unmarshal rule params JSON",
			"error", err,
			"client_id", r.ClientID,
			"category", r.Category,
		)
		r.Meteorological, r.Traffic, r.Corporate = nil, nil, nil
	}
	defaulted := monitor.NewRule(r.ClientID, r.Category)
	r.Meteorological = defaulted.Meteorological
	r.Traffic = defaulted.Traffic
	r.Corporate = defaulted.Corporate
}

// scanRule scans one monitor_rules row into a rule.
func scanRule(scan func(dest ...interface{}) error) (*monitor.Rule, error) {
	var rule monitor.Rule
	var paramsJSON sql.NullString
	if err := scan(
		&rule.ClientID,
		&rule.Category,
		&rule.Active,
		&paramsJSON,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	unmarshalRuleParams(&rule, paramsJSON)
	return &rule, nil
}

// UpsertRule stores a monitor rule, replacing any previous rule for the
// same (client_id, category) pair. The primary key on that pair enforces
// the one-rule-per-pair invariant; updates replace, never append.
func (db *DB) UpsertRule(ctx context.Context, r monitor.Rule) (*monitor.Rule, error) {
	params, err := marshalRuleParams(r)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO monitor_rules (client_id, category, active, params, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (client_id, category) DO UPDATE
		SET active = EXCLUDED.active,
		    params = EXCLUDED.params,
		    updated_at = NOW()
		RETURNING client_id, category, active, params, created_at, updated_at
	`
	row := db.conn.QueryRowContext(ctx, query, r.ClientID, r.Category, r.Active, params)
	rule, err := scanRule(row.Scan)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return nil, fmt.Errorf("client %s: %w", r.ClientID, ErrNotFound)
			}
		}
		return nil, fmt.Errorf("failed to upsert monitor rule: %w", err)
	}
	return rule, nil
}

// GetRule retrieves the monitor rule for one (client, category) pair.
// Returns ErrNotFound when the client has never configured the category.
func (db *DB) GetRule(ctx context.Context, clientID string, category monitor.Category) (*monitor.Rule, error) {
	query := `
		SELECT client_id, category, active, params, created_at, updated_at
		FROM monitor_rules
		WHERE client_id = $1 AND category = $2
	`
	row := db.conn.QueryRowContext(ctx, query, clientID, category)
	rule, err := scanRule(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("monitor rule %s/%s: %w", clientID, category, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get monitor rule: %w", err)
	}
	return rule, nil
}

// ListRules retrieves all monitor rules, optionally filtered by client_id.
func (db *DB) ListRules(ctx context.Context, clientID *string) ([]*monitor.Rule, error) {
	var query string
	var args []interface{}

	if clientID != nil {
		query = `
			SELECT client_id, category, active, params, created_at, updated_at
			FROM monitor_rules
			WHERE client_id = $1
			ORDER BY category ASC
		`
		args = []interface{}{*clientID}
	} else {
		query = `
			SELECT client_id, category, active, params, created_at, updated_at
			FROM monitor_rules
			ORDER BY client_id ASC, category ASC
		`
		args = []interface{}{}
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list monitor rules: %w", err)
	}
	defer rows.Close()

	var rules []*monitor.Rule
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monitor rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
