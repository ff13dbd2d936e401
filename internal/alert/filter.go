package alert

import (
	"sort"
	"strings"
	"time"

	"riskmonitor/internal/monitor"
)

// Filter is a composite selection over a collection of alerts. Every field
// is optional; a zero field imposes no constraint. Active predicates are
// ANDed together, with one exception that is part of the contract rather
// than an accident of evaluation order: Text matches Description OR
// ClientName (case-insensitive substring), and that disjunction is then
// ANDed with the other dimensions.
type Filter struct {
	Text     string
	ClientID string
	Category monitor.Category
	Status   Status

	// OccurredFrom is an inclusive lower bound on OccurredAt.
	OccurredFrom *time.Time

	// OccurredTo is an inclusive upper bound covering the entire calendar
	// day of the given instant. An operator picking "until 12 April" means
	// the whole of 12 April, so the bound is widened to that day's last
	// nanosecond.
	OccurredTo *time.Time
}

// Matches reports whether a single record satisfies the filter. It is the
// streaming form of Apply for callers that evaluate records one at a time.
func (f Filter) Matches(rec Record) bool {
	if f.Text != "" {
		needle := strings.ToLower(f.Text)
		inDescription := strings.Contains(strings.ToLower(rec.Description), needle)
		inClientName := strings.Contains(strings.ToLower(rec.ClientName), needle)
		if !inDescription && !inClientName {
			return false
		}
	}
	if f.ClientID != "" && rec.ClientID != f.ClientID {
		return false
	}
	if f.Category != "" && rec.Category != f.Category {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if f.OccurredFrom != nil && rec.OccurredAt.Before(*f.OccurredFrom) {
		return false
	}
	if f.OccurredTo != nil && rec.OccurredAt.After(endOfDay(*f.OccurredTo)) {
		return false
	}
	return true
}

// Apply returns the subset of alerts matching the filter, preserving input
// order. A filter matching nothing yields an empty slice, never an error.
// The input slice is not modified.
func Apply(alerts []Record, f Filter) []Record {
	matched := make([]Record, 0, len(alerts))
	for _, rec := range alerts {
		if f.Matches(rec) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// UniqueClients returns the deduplicated client IDs present in the given
// alerts, sorted for stable presentation in filter dropdowns.
func UniqueClients(alerts []Record) []string {
	seen := make(map[string]struct{}, len(alerts))
	clients := make([]string, 0, len(alerts))
	for _, rec := range alerts {
		if _, ok := seen[rec.ClientID]; ok {
			continue
		}
		seen[rec.ClientID] = struct{}{}
		clients = append(clients, rec.ClientID)
	}
	sort.Strings(clients)
	return clients
}

// endOfDay returns the last representable instant of t's calendar day in
// t's location.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
