package runtime

import (
	"context"
)

// scan walks from index in direction dir (+1 or -1) and returns the first
// index whose target is visible, or the first index outside the steps.
// When report is set, every step passed over is logged and emitted as skipped.
func (c *Controller) scan(ctx context.Context, from, dir int, report bool) int {
	i := from
	for ; c.session.InBounds(i); i += dir {
		step := c.session.Steps[i]
		if _, ok := c.visibleElement(ctx, step.Selector); ok {
			return i
		}
		if report {
			c.skipped(ctx, i)
		}
	}
	return i
}

func (c *Controller) scanForward(ctx context.Context, from int) int {
	return c.scan(ctx, from, 1, true)
}

func (c *Controller) scanBackward(ctx context.Context, from int) int {
	return c.scan(ctx, from, -1, true)
}

// hasPrevious looks behind the current step without moving.
func (c *Controller) hasPrevious(ctx context.Context) bool {
	return c.session.InBounds(c.scan(ctx, c.session.CurrentIndex-1, -1, false))
}

// hasNext looks ahead of the current step without moving.
func (c *Controller) hasNext(ctx context.Context) bool {
	return c.session.InBounds(c.scan(ctx, c.session.CurrentIndex+1, 1, false))
}

func (c *Controller) nextLocked(ctx context.Context) {
	if !c.session.Active {
		return
	}
	c.session.CurrentIndex = c.scanForward(ctx, c.session.CurrentIndex+1)
	if !c.session.InBounds(c.session.CurrentIndex) {
		c.finishLocked(ctx)
		return
	}
	c.showCurrentLocked(ctx)
}

func (c *Controller) prevLocked(ctx context.Context) {
	if !c.session.Active {
		return
	}
	c.session.CurrentIndex = c.scanBackward(ctx, c.session.CurrentIndex-1)
	if !c.session.InBounds(c.session.CurrentIndex) {
		c.finishLocked(ctx)
		return
	}
	c.showCurrentLocked(ctx)
}

func (c *Controller) skipped(ctx context.Context, index int) {
	step := c.session.Steps[index]
	c.log().Warn("Skipping step, target not visible", "index", index, "selector", step.Selector)
	c.emitStepSkipped(ctx, index)
}
