package observability

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// anonymous labels tours started without an ID.
const anonymous = "_anonymous"

// Metrics counts tour activity per tour ID.
type Metrics struct {
	ToursStarted  *prometheus.CounterVec
	ToursFinished *prometheus.CounterVec
	StepsShown    *prometheus.CounterVec
	StepsSkipped  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ToursStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waypoint_tours_started_total",
			Help: "Tours activated.",
		}, []string{"tour"}),
		ToursFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waypoint_tours_finished_total",
			Help: "Tours finished, by whether the last step was reached.",
		}, []string{"tour", "completed"}),
		StepsShown: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waypoint_steps_shown_total",
			Help: "Callouts shown, by placement side.",
		}, []string{"tour", "position"}),
		StepsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waypoint_steps_skipped_total",
			Help: "Steps skipped because their target was missing or hidden.",
		}, []string{"tour"}),
	}

	for _, c := range []prometheus.Collector{m.ToursStarted, m.ToursFinished, m.StepsShown, m.StepsSkipped} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTourStart: func(_ context.Context, e *domain.TourEvent) {
			m.ToursStarted.WithLabelValues(tourLabel(e.TourID)).Inc()
		},
		OnTourFinish: func(_ context.Context, e *domain.TourEvent) {
			m.ToursFinished.WithLabelValues(tourLabel(e.TourID), strconv.FormatBool(e.Completed)).Inc()
		},
		OnStepShown: func(_ context.Context, e *domain.StepEvent) {
			position := ""
			if e.Placement != nil {
				position = string(e.Placement.Side)
			}
			m.StepsShown.WithLabelValues(tourLabel(e.TourID), position).Inc()
		},
		OnStepSkipped: func(_ context.Context, e *domain.StepEvent) {
			m.StepsSkipped.WithLabelValues(tourLabel(e.TourID)).Inc()
		},
	}
}

func tourLabel(id string) string {
	if id == "" {
		return anonymous
	}
	return id
}
