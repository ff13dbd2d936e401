package ingest

import (
	"context"
	"log/slog"
	"time"

	"riskmonitor/internal/alert"
	"riskmonitor/internal/events"
)

// SignalReader defines the interface for reading feed signals.
// This interface allows for dependency injection and easier testing.
type SignalReader interface {
	ReadSignal(ctx context.Context) (*events.Signal, error)
}

// AlertStore defines the interface for persisting alert records.
type AlertStore interface {
	CreateAlert(ctx context.Context, rec alert.Record) (*alert.Record, error)
}

// Recorder defines the interface for recording processing metrics.
type Recorder interface {
	RecordReceived()
	RecordEvaluated(latency time.Duration)
	RecordAlertCreated()
	RecordError()
	IncrementCustom(name string)
}

// NoOpRecorder is a no-op implementation of Recorder.
type NoOpRecorder struct{}

var _ Recorder = (*NoOpRecorder)(nil)

func (NoOpRecorder) RecordReceived()                 {}
func (NoOpRecorder) RecordEvaluated(_ time.Duration) {}
func (NoOpRecorder) RecordAlertCreated()             {}
func (NoOpRecorder) RecordError()                    {}
func (NoOpRecorder) IncrementCustom(_ string)        {}

// Processor orchestrates signal evaluation: read, match, persist.
type Processor struct {
	consumer  SignalReader
	db        AlertStore
	evaluator *Evaluator
	metrics   Recorder
}

// NewProcessor creates a new signal processor. A nil metrics recorder is
// replaced with a no-op implementation.
func NewProcessor(consumer SignalReader, db AlertStore, evaluator *Evaluator, metrics Recorder) *Processor {
	if metrics == nil {
		metrics = NoOpRecorder{}
	}
	return &Processor{
		consumer:  consumer,
		db:        db,
		evaluator: evaluator,
		metrics:   metrics,
	}
}

// ProcessSignals continuously reads signals from Kafka, evaluates them
// against the snapshot, and persists one alert per matched client.
func (p *Processor) ProcessSignals(ctx context.Context) error {
	slog.Info("Starting signal processing loop")

	for {
		select {
		case <-ctx.Done():
			slog.Info("Signal processing loop stopped")
			return nil
		default:
			signal, err := p.consumer.ReadSignal(ctx)
			if err != nil {
				// Check if context was cancelled
				if ctx.Err() != nil {
					return nil
				}
				slog.Error("Failed to read signal", "error", err)
				p.metrics.RecordError()
				// Continue processing other messages
				continue
			}
			p.metrics.RecordReceived()

			slog.Debug("Received signal",
				"signal_id", signal.SignalID,
				"category", signal.Category,
				"source", signal.Source,
			)

			start := time.Now()
			matched := p.evaluator.Evaluate(signal)
			p.metrics.RecordEvaluated(time.Since(start))

			if len(matched) == 0 {
				slog.Info("No monitors matched signal",
					"signal_id", signal.SignalID,
					"category", signal.Category,
					"source", signal.Source,
				)
				continue
			}

			for _, rec := range matched {
				created, err := p.db.CreateAlert(ctx, rec)
				if err != nil {
					slog.Error("Failed to create alert",
						"signal_id", signal.SignalID,
						"client_id", rec.ClientID,
						"error", err,
					)
					p.metrics.RecordError()
					// Continue with the other matched clients
					continue
				}
				p.metrics.RecordAlertCreated()
				p.metrics.IncrementCustom("alerts_" + string(rec.Category))

				slog.Info("Created alert",
					"alert_id", created.ID,
					"signal_id", signal.SignalID,
					"client_id", created.ClientID,
					"category", created.Category,
				)
			}

			// Message is committed automatically by kafka-go after processing
			// (CommitInterval is set in consumer config)
		}
	}
}
