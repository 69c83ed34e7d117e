package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/waypoint/pkg/domain"
)

// LoggingHooks logs every lifecycle event at info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTourStart: func(_ context.Context, e *domain.TourEvent) {
			logger.Info("tour_start", "session", e.SessionID, "tour", e.TourID, "steps", e.Steps)
		},
		OnStepShown: func(_ context.Context, e *domain.StepEvent) {
			args := []any{"session", e.SessionID, "index", e.Index, "selector", e.Selector}
			if e.Placement != nil {
				args = append(args, "position", e.Placement.Side, "top", e.Placement.Top, "left", e.Placement.Left)
			}
			logger.Info("step_shown", args...)
		},
		OnStepSkipped: func(_ context.Context, e *domain.StepEvent) {
			logger.Info("step_skipped", "session", e.SessionID, "index", e.Index, "selector", e.Selector)
		},
		OnTourFinish: func(_ context.Context, e *domain.TourEvent) {
			logger.Info("tour_finish", "session", e.SessionID, "tour", e.TourID, "index", e.Index)
		},
	}
}

// Combine fans each event out to every set of hooks, in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTourStart: func(ctx context.Context, e *domain.TourEvent) {
			for _, h := range all {
				if h.OnTourStart != nil {
					h.OnTourStart(ctx, e)
				}
			}
		},
		OnStepShown: func(ctx context.Context, e *domain.StepEvent) {
			for _, h := range all {
				if h.OnStepShown != nil {
					h.OnStepShown(ctx, e)
				}
			}
		},
		OnStepSkipped: func(ctx context.Context, e *domain.StepEvent) {
			for _, h := range all {
				if h.OnStepSkipped != nil {
					h.OnStepSkipped(ctx, e)
				}
			}
		},
		OnTourFinish: func(ctx context.Context, e *domain.TourEvent) {
			for _, h := range all {
				if h.OnTourFinish != nil {
					h.OnTourFinish(ctx, e)
				}
			}
		},
	}
}
