package ingest

import (
	"context"
	"log/slog"
	"time"

	"riskmonitor/internal/snapshot"
)

// Reloader polls Redis for snapshot version changes and hot-swaps the
// evaluator's snapshot when the version moves.
type Reloader struct {
	loader         *snapshot.Loader
	evaluator      *Evaluator
	pollInterval   time.Duration
	currentVersion int64
}

// NewReloader creates a new reloader with the given dependencies.
func NewReloader(loader *snapshot.Loader, evaluator *Evaluator, pollInterval time.Duration) *Reloader {
	return &Reloader{
		loader:       loader,
		evaluator:    evaluator,
		pollInterval: pollInterval,
	}
}

// Start begins polling Redis for version changes in a background goroutine.
// The goroutine will exit when ctx is cancelled.
func (r *Reloader) Start(ctx context.Context) error {
	// Get initial version
	version, err := r.loader.GetVersion(ctx)
	if err != nil {
		return err
	}
	r.currentVersion = version

	slog.Info("Starting snapshot version poller",
		"poll_interval", r.pollInterval,
		"initial_version", r.currentVersion,
	)

	go r.pollLoop(ctx)
	return nil
}

// pollLoop continuously polls Redis for version changes.
func (r *Reloader) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Snapshot version poller stopped")
			return
		case <-ticker.C:
			if err := r.checkAndReload(ctx); err != nil {
				slog.Error("Failed to check/reload snapshot", "error", err)
				// Continue polling even if reload fails
			}
		}
	}
}

// checkAndReload checks if the version has changed and reloads if needed.
func (r *Reloader) checkAndReload(ctx context.Context) error {
	version, err := r.loader.GetVersion(ctx)
	if err != nil {
		return err
	}

	if version == r.currentVersion {
		return nil // No change
	}

	slog.Info("Snapshot version changed, reloading",
		"old_version", r.currentVersion,
		"new_version", version,
	)

	snap, err := r.loader.Load(ctx)
	if err != nil {
		return err
	}

	// Atomically swap the snapshot
	r.evaluator.UpdateSnapshot(snap)
	r.currentVersion = version

	slog.Info("Snapshot reloaded successfully",
		"version", version,
		"rules_count", snap.RuleCount(),
	)

	return nil
}

// ReloadNow forces an immediate reload check against Redis.
func (r *Reloader) ReloadNow(ctx context.Context) error {
	return r.checkAndReload(ctx)
}
