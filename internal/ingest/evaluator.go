// Package ingest consumes raw feed signals, evaluates them against the
// active-monitor snapshot, and persists an alert record for every client
// whose configuration matches.
package ingest

import (
	"sync"
	"time"

	"riskmonitor/internal/alert"
	"riskmonitor/internal/events"
	"riskmonitor/internal/monitor"
	"riskmonitor/internal/snapshot"
)

// Evaluator matches signals against the active-monitor snapshot. It
// supports atomic swapping of the snapshot when rules are updated.
type Evaluator struct {
	mu   sync.RWMutex
	snap *snapshot.Snapshot
}

// NewEvaluator creates a new evaluator with the given initial snapshot.
func NewEvaluator(snap *snapshot.Snapshot) *Evaluator {
	return &Evaluator{snap: snap}
}

// UpdateSnapshot atomically swaps the snapshot with a new one.
// Thread-safe: uses write lock to ensure atomic update.
func (e *Evaluator) UpdateSnapshot(snap *snapshot.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snap = snap
}

// RuleCount returns the number of active rules in the current snapshot.
func (e *Evaluator) RuleCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap.RuleCount()
}

// Evaluate returns one alert record per client whose active monitor matches
// the signal. A signal carrying a client_id is targeted: only that client's
// rule is considered. A signal without one is broadcast against every
// client's rule for its category. No match yields an empty slice.
func (e *Evaluator) Evaluate(sig *events.Signal) []alert.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var matched []alert.Record
	for _, entry := range e.snap.Monitors[sig.Category] {
		if sig.ClientID != "" && sig.ClientID != entry.ClientID {
			continue
		}
		if !entryMatches(entry, sig) {
			continue
		}
		matched = append(matched, buildRecord(entry, sig))
	}
	return matched
}

// entryMatches applies the category-specific parameters of one active rule.
func entryMatches(entry snapshot.Entry, sig *events.Signal) bool {
	switch sig.Category {
	case monitor.CategoryMeteorological:
		if entry.Meteorological == nil {
			return false
		}
		return sig.WarningLevel.AtLeast(entry.Meteorological.MinWarningLevel)

	case monitor.CategoryTraffic:
		if entry.Traffic == nil {
			return false
		}
		return scopeMatches(entry.Traffic.IncidentScope, sig.IncidentKind)

	case monitor.CategoryCorporate:
		if entry.Corporate == nil {
			return false
		}
		for _, act := range entry.Corporate.WatchedActs {
			if act == sig.ActType {
				return true
			}
		}
		return false
	}
	return false
}

// scopeMatches reports whether a traffic incident kind falls inside the
// configured incident scope.
func scopeMatches(scope monitor.IncidentScope, incidentKind string) bool {
	switch scope {
	case monitor.ScopeAll:
		return true
	case monitor.ScopeSevereOnly:
		return incidentKind == events.IncidentSevere
	case monitor.ScopeClosuresOnly:
		return incidentKind == events.IncidentClosure
	}
	return false
}

// buildRecord assembles the alert record for a matched (signal, client)
// pair. New alerts always start in status new with empty notes.
func buildRecord(entry snapshot.Entry, sig *events.Signal) alert.Record {
	severity := alert.Severity(sig.Severity)
	if !severity.Valid() {
		severity = alert.SeverityMedium
	}
	return alert.Record{
		ClientID:    entry.ClientID,
		ClientName:  entry.ClientName,
		Category:    sig.Category,
		Description: sig.Description,
		DetailText:  sig.DetailText,
		Source:      sig.Source,
		Severity:    severity,
		OccurredAt:  time.Unix(sig.OccurredAt, 0).UTC(),
		Status:      alert.StatusNew,
	}
}
