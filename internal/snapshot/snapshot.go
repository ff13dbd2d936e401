// Package snapshot maintains the active-monitor snapshot in Redis. The
// HTTP service rewrites it after every rule change; the feed watcher polls
// the version key and reloads when it moves.
package snapshot

import (
	"time"

	"riskmonitor/internal/database"
	"riskmonitor/internal/monitor"
)

const (
	// SnapshotKey is the Redis key where the monitor snapshot is stored.
	SnapshotKey = "monitors:snapshot"
	// VersionKey is the Redis key where the snapshot version is stored.
	VersionKey = "monitors:version"
)

// SchemaVersion identifies the snapshot payload shape.
const SchemaVersion = 1

// Entry is one active monitor rule plus the client display name, which the
// evaluator stamps onto the alerts it creates.
type Entry struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`

	Meteorological *monitor.MeteorologicalParams `json:"meteorological,omitempty"`
	Traffic        *monitor.TrafficParams        `json:"traffic,omitempty"`
	Corporate      *monitor.CorporateParams      `json:"corporate,omitempty"`
}

// Snapshot is the serialized set of active monitor rules, grouped by
// category for direct lookup during signal evaluation. Inactive rules are
// omitted entirely: storage keeps their parameters, evaluation never sees
// them.
type Snapshot struct {
	SchemaVersion int                          `json:"schema_version"`
	GeneratedAt   time.Time                    `json:"generated_at"`
	Monitors      map[monitor.Category][]Entry `json:"monitors"`
}

// RuleCount returns the total number of entries across all categories.
func (s *Snapshot) RuleCount() int {
	n := 0
	for _, entries := range s.Monitors {
		n += len(entries)
	}
	return n
}

// Build assembles a snapshot from the full rule list, keeping only
// effective rules. Rules for unknown clients get an empty display name
// rather than being dropped.
func Build(rules []*monitor.Rule, clients []*database.Client) *Snapshot {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ClientID] = c.Name
	}

	snap := &Snapshot{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   time.Now().UTC(),
		Monitors:      make(map[monitor.Category][]Entry),
	}

	for _, rule := range rules {
		if !monitor.IsEffective(*rule) {
			continue
		}
		entry := Entry{
			ClientID:       rule.ClientID,
			ClientName:     names[rule.ClientID],
			Meteorological: rule.Meteorological,
			Traffic:        rule.Traffic,
			Corporate:      rule.Corporate,
		}
		snap.Monitors[rule.Category] = append(snap.Monitors[rule.Category], entry)
	}

	return snap
}
