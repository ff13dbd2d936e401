package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Writer writes snapshots to Redis.
type Writer struct {
	client *redis.Client
}

// NewWriter creates a new snapshot writer with the given Redis client.
func NewWriter(client *redis.Client) *Writer {
	return &Writer{client: client}
}

// Write stores a snapshot in Redis and increments the version. Both keys
// are updated in one pipeline so pollers never observe a new version with
// a stale snapshot.
func (w *Writer) Write(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := w.client.Pipeline()
	pipe.Set(ctx, SnapshotKey, data, 0) // No expiration
	pipe.Incr(ctx, VersionKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write snapshot to Redis: %w", err)
	}

	slog.Info("Monitor snapshot written to Redis",
		"schema_version", snap.SchemaVersion,
		"rules_count", snap.RuleCount(),
	)

	return nil
}
