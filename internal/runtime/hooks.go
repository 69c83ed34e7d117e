package runtime

import (
	"context"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
)

func (c *Controller) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		SessionID: c.session.ID,
		TourID:    c.session.TourID,
	}
}

func (c *Controller) emitTourStart(ctx context.Context) {
	if c.hooks.OnTourStart == nil {
		return
	}
	c.hooks.OnTourStart(ctx, &domain.TourEvent{
		EventBase: c.base(domain.EventTourStart),
		Steps:     len(c.session.Steps),
		Index:     c.session.CurrentIndex,
	})
}

func (c *Controller) emitTourFinish(ctx context.Context, index int, completed bool) {
	if c.hooks.OnTourFinish == nil {
		return
	}
	c.hooks.OnTourFinish(ctx, &domain.TourEvent{
		EventBase: c.base(domain.EventTourFinish),
		Steps:     len(c.session.Steps),
		Index:     index,
		Completed: completed,
	})
}

func (c *Controller) emitStepShown(ctx context.Context, index int, pl *domain.Placement) {
	if c.hooks.OnStepShown == nil {
		return
	}
	c.hooks.OnStepShown(ctx, &domain.StepEvent{
		EventBase: c.base(domain.EventStepShown),
		Index:     index,
		Selector:  c.session.Steps[index].Selector,
		Placement: pl,
	})
}

func (c *Controller) emitStepSkipped(ctx context.Context, index int) {
	if c.hooks.OnStepSkipped == nil {
		return
	}
	c.hooks.OnStepSkipped(ctx, &domain.StepEvent{
		EventBase: c.base(domain.EventStepSkip),
		Index:     index,
		Selector:  c.session.Steps[index].Selector,
	})
}
