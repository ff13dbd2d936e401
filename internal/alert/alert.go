// Package alert defines the alert record produced when an active monitor
// matches an incoming signal, the lifecycle an operator moves it through,
// and the composite filter used to query collections of alerts.
package alert

import (
	"time"

	"riskmonitor/internal/monitor"
)

// Status is the degree of operator handling applied to an alert.
// It only ever advances: new -> seen -> managed, with new -> managed
// permitted directly.
type Status string

const (
	StatusNew     Status = "new"
	StatusSeen    Status = "seen"
	StatusManaged Status = "managed"
)

// Valid reports whether the status belongs to the closed set.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusSeen, StatusManaged:
		return true
	}
	return false
}

// transitions is the allowed-transition table. Skip-ahead (new -> managed)
// is a first-class transition, not a bypass.
var transitions = map[Status]map[Status]struct{}{
	StatusNew:     {StatusSeen: {}, StatusManaged: {}},
	StatusSeen:    {StatusManaged: {}},
	StatusManaged: {},
}

// CanTransition reports whether an alert in status s may move to status to.
func (s Status) CanTransition(to Status) bool {
	_, ok := transitions[s][to]
	return ok
}

// Severity grades how serious the detected event is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether the severity belongs to the closed set.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Record is one detected event matching a client's active monitor.
// ID and OccurredAt are immutable after creation; Status and Notes are the
// only operator-mutable fields. Records are never deleted here — retention
// is an archival concern outside this package.
type Record struct {
	ID          string           `json:"alert_id"`
	ClientID    string           `json:"client_id"`
	ClientName  string           `json:"client_name"`
	Category    monitor.Category `json:"category"`
	Description string           `json:"description"`
	DetailText  string           `json:"detail_text"`
	Source      string           `json:"source"`
	Severity    Severity         `json:"severity"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Status      Status           `json:"status"`
	Notes       string           `json:"notes,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
