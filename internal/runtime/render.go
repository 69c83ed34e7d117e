package runtime

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/placement"
	"github.com/aretw0/waypoint/pkg/ports"
)

// showCurrentLocked replaces the callout with one for the current step,
// moving forward past steps whose target is not visible. It finishes the
// tour when it runs out of steps.
func (c *Controller) showCurrentLocked(ctx context.Context) {
	c.hideCurrentLocked(ctx)

	var el ports.Element
	for {
		if !c.session.Active || !c.session.InBounds(c.session.CurrentIndex) {
			c.finishLocked(ctx)
			return
		}
		step := c.session.Steps[c.session.CurrentIndex]
		found, ok := c.visibleElement(ctx, step.Selector)
		if ok {
			el = found
			break
		}
		c.skipped(ctx, c.session.CurrentIndex)
		c.session.CurrentIndex = c.scanForward(ctx, c.session.CurrentIndex+1)
	}

	c.gen++
	c.stopSettle()

	if !c.session.AutoScroll {
		c.renderLocked(ctx, el)
		return
	}

	if err := c.env.ScrollIntoView(ctx, el); err != nil {
		c.log().Debug("Scroll request failed", "index", c.session.CurrentIndex, "err", err)
	}
	gen := c.gen
	c.settleTimer = c.sched.AfterFunc(c.settle, func() {
		c.settled(gen)
	})
}

// settled renders the current step once scrolling had time to finish.
// The target is resolved again since the page may have changed meanwhile.
func (c *Controller) settled(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || !c.session.Active {
		return
	}
	c.settleTimer = nil

	ctx := c.ctx
	step, ok := c.session.Current()
	if !ok {
		return
	}
	el, visible := c.visibleElement(ctx, step.Selector)
	if !visible {
		c.showCurrentLocked(ctx)
		return
	}
	c.renderLocked(ctx, el)
}

func (c *Controller) renderLocked(ctx context.Context, el ports.Element) {
	index := c.session.CurrentIndex
	step := c.session.Steps[index]
	logger := c.log().With("index", index, "selector", step.Selector)

	content := composeContent(step.Text, c.hasPrevious(ctx), c.hasNext(ctx))
	callout, err := c.factory.Create(ctx, content, c.session.Theme)
	if err != nil {
		logger.Error("Failed to create callout", "err", err)
		return
	}
	c.current = callout

	pl, err := c.position(ctx, callout, el)
	if err != nil {
		logger.Warn("Failed to position callout", "err", err)
	}

	gen := c.gen
	for _, ctl := range content.Controls {
		if !callout.HasControl(ctl) {
			continue
		}
		if err := callout.OnControlActivated(ctl, c.controlHandler(gen, ctl)); err != nil {
			logger.Warn("Failed to wire control", "control", ctl, "err", err)
		}
	}

	c.sched.NextFrame(func() {
		c.reveal(callout)
	})

	logger.Debug("Step shown", "position", pl.Side, "top", pl.Top, "left", pl.Left)
	c.emitStepShown(ctx, index, &pl)
}

func (c *Controller) position(ctx context.Context, callout ports.Callout, el ports.Element) (domain.Placement, error) {
	size, err := callout.MeasureNaturalSize(ctx)
	if err != nil {
		return domain.Placement{}, fmt.Errorf("measure callout: %w", err)
	}
	target, err := el.BoundingBox(ctx)
	if err != nil {
		return domain.Placement{}, fmt.Errorf("measure target: %w", err)
	}
	vp, err := c.env.Viewport(ctx)
	if err != nil {
		return domain.Placement{}, fmt.Errorf("measure viewport: %w", err)
	}

	pl := placement.Compute(placement.Input{
		Target:   target,
		Callout:  size,
		Viewport: vp,
		Offset:   c.offset,
		Margin:   c.margin,
	})
	if err := callout.SetPosition(ctx, pl.Side, pl.Top, pl.Left); err != nil {
		return pl, err
	}
	if err := callout.SetArrowOffset(ctx, pl.ArrowOffset); err != nil {
		return pl, err
	}
	return pl, nil
}

func (c *Controller) reveal(callout ports.Callout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != callout {
		return
	}
	if err := callout.Show(c.ctx); err != nil {
		c.log().Debug("Failed to reveal callout", "err", err)
	}
}

// controlHandler binds a control to navigation. Activations that arrive after
// the callout was superseded are dropped.
func (c *Controller) controlHandler(gen uint64, ctl domain.ControlID) func() {
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.gen || !c.session.Active {
			return
		}
		ctx := c.ctx
		switch ctl {
		case domain.ControlPrevious:
			c.prevLocked(ctx)
		case domain.ControlNext:
			c.nextLocked(ctx)
		case domain.ControlClose:
			c.finishLocked(ctx)
		}
	}
}

// hideCurrentLocked fades out the current callout and schedules its removal.
// A callout still waiting for removal is destroyed right away.
func (c *Controller) hideCurrentLocked(ctx context.Context) {
	c.flushPendingDestroy(ctx)

	callout := c.current
	if callout == nil {
		return
	}
	c.current = nil

	if err := callout.Hide(ctx); err != nil {
		c.log().Debug("Failed to hide callout", "err", err)
	}
	c.pendingDestroy = callout
	c.destroyTimer = c.sched.AfterFunc(c.fadeOut, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.pendingDestroy != callout {
			return
		}
		c.pendingDestroy = nil
		c.destroyTimer = nil
		if err := callout.Destroy(c.ctx); err != nil {
			c.logger.Debug("Failed to destroy callout", "err", err)
		}
	})
}

func (c *Controller) flushPendingDestroy(ctx context.Context) {
	old := c.pendingDestroy
	if old == nil {
		return
	}
	if c.destroyTimer != nil {
		c.destroyTimer.Stop()
	}
	c.pendingDestroy = nil
	c.destroyTimer = nil
	if err := old.Destroy(ctx); err != nil {
		c.logger.Debug("Failed to destroy callout", "err", err)
	}
}

// composeContent builds the callout body. Previous and next appear only when
// there is a visible step in that direction; close is always present.
func composeContent(text string, hasPrev, hasNext bool) domain.CalloutContent {
	controls := make([]domain.ControlID, 0, 3)
	if hasPrev {
		controls = append(controls, domain.ControlPrevious)
	}
	if hasNext {
		controls = append(controls, domain.ControlNext)
	}
	controls = append(controls, domain.ControlClose)

	var b strings.Builder
	b.WriteString(`<div class="tooltip-content">`)
	b.WriteString(text)
	b.WriteString(`</div><div class="tooltip-buttons">`)
	for _, ctl := range controls {
		fmt.Fprintf(&b, `<button id="%s">%s</button>`, ctl, html.EscapeString(ctl.Label()))
	}
	b.WriteString(`</div>`)

	return domain.CalloutContent{
		Text:     text,
		Markup:   b.String(),
		Controls: controls,
	}
}
