package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Loader loads snapshots from Redis.
type Loader struct {
	client *redis.Client
}

// NewLoader creates a new snapshot loader with the given Redis client.
func NewLoader(client *redis.Client) *Loader {
	return &Loader{client: client}
}

// Load reads and deserializes the monitor snapshot. Before the first rule
// write no snapshot exists; that is returned as an empty snapshot, not an
// error, so the watcher can start ahead of any configuration.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	data, err := l.client.Get(ctx, SnapshotKey).Bytes()
	if err == redis.Nil {
		slog.Info("No monitor snapshot in Redis yet, starting empty")
		return &Snapshot{SchemaVersion: SchemaVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot from Redis: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	slog.Info("Loaded monitor snapshot from Redis",
		"schema_version", snap.SchemaVersion,
		"rules_count", snap.RuleCount(),
	)

	return &snap, nil
}

// GetVersion returns the current snapshot version from Redis.
// Returns 0 if the version doesn't exist (no rules written yet).
func (l *Loader) GetVersion(ctx context.Context) (int64, error) {
	version, err := l.client.Get(ctx, VersionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get version from Redis: %w", err)
	}
	return version, nil
}
