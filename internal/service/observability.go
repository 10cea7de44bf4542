package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/worktimer/internal/session"
	"github.com/google/uuid"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// ReplayObserver is an optional UseCaseObserver extension that receives each
// observation rebuilt from the log during rehydration.
type ReplayObserver interface {
	ObserveReplay(ctx context.Context, obs session.Observation)
}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes service use-case events to the provided writer.
// Every line carries a run id so several runs can share one log file.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &logUseCaseObserver{
		logger: slog.New(handler).With("run_id", uuid.New().String()),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_use_case", attrs...)
}

// ObserveReplay logs a replayed observation at debug level.
func (o *logUseCaseObserver) ObserveReplay(ctx context.Context, obs session.Observation) {
	attrs := []any{"kind", string(obs.Kind), "at", obs.At.String()}
	if obs.Kind == session.ObservationStopped {
		attrs = append(attrs,
			"elapsed_sec", int64(obs.Elapsed/time.Second),
			"total_sec", int64(obs.Total/time.Second),
		)
	}
	o.logger.DebugContext(ctx, "replayed_event", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

func observe(ctx context.Context, observer UseCaseObserver, name string, started time.Time, err error, fields map[string]any) {
	observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}
