// Package events defines the event structures exchanged over Kafka.
package events

import (
	"riskmonitor/internal/monitor"
)

// SchemaVersion is stamped on every published event so consumers can
// detect payload shape changes.
const SchemaVersion = 1

// Valid actions for MonitorChanged.
const (
	ActionUpdated   = "UPDATED"
	ActionActivated = "ACTIVATED"
	ActionDisabled  = "DISABLED"
)

// MonitorChanged announces that a client's monitor rule was written. It is
// published to the monitor.changed topic after every successful rule store,
// keyed by client and category, so feed adapters can refresh what they
// watch for that client.
type MonitorChanged struct {
	ClientID      string           `json:"client_id"`
	Category      monitor.Category `json:"category"`
	Action        string           `json:"action"` // UPDATED, ACTIVATED, DISABLED
	Active        bool             `json:"active"`
	UpdatedAt     int64            `json:"updated_at"` // Unix timestamp
	SchemaVersion int              `json:"schema_version"`
}

// Incident kinds for traffic scope matching.
const (
	IncidentSevere  = "severe"
	IncidentClosure = "closure"
	IncidentOther   = "other"
)

// Signal is a raw risk event published by an upstream feed adapter (AEMET,
// DGT, corporate registry) to the signals.incoming topic. Category-specific
// fields are only set for their category; ClientID is set when the feed
// already resolved the affected client (registry filings), and empty for
// broadcast signals matched against every client's rules.
type Signal struct {
	SignalID    string           `json:"signal_id"`
	Source      string           `json:"source"`
	Category    monitor.Category `json:"category"`
	ClientID    string           `json:"client_id,omitempty"`
	Description string           `json:"description"`
	DetailText  string           `json:"detail_text"`
	Severity    string           `json:"severity"`    // low, medium, high
	OccurredAt  int64            `json:"occurred_at"` // Unix timestamp

	// Meteorological signals
	WarningLevel monitor.WarningLevel `json:"warning_level,omitempty"`

	// Traffic signals
	IncidentKind string `json:"incident_kind,omitempty"` // severe, closure, other

	// Corporate signals
	ActType monitor.ActType `json:"act_type,omitempty"`

	SchemaVersion int `json:"schema_version"`
}
