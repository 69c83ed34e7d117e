package runtime

import (
	"context"

	"github.com/aretw0/waypoint/pkg/ports"
)

// visibleElement resolves selector and reports whether the element can anchor
// a callout: present, not display:none, not visibility:hidden, and with a
// non-empty box. Lookup or measurement failures count as not visible.
func (c *Controller) visibleElement(ctx context.Context, selector string) (ports.Element, bool) {
	el, err := c.env.Find(ctx, selector)
	if err != nil {
		c.logger.Debug("Element lookup failed", "selector", selector, "err", err)
		return nil, false
	}
	if el == nil {
		return nil, false
	}

	style, err := el.Style(ctx)
	if err != nil {
		c.logger.Debug("Element style unavailable", "selector", selector, "err", err)
		return nil, false
	}
	if style.Hidden() {
		return nil, false
	}

	box, err := el.BoundingBox(ctx)
	if err != nil {
		c.logger.Debug("Element box unavailable", "selector", selector, "err", err)
		return nil, false
	}
	if box.Empty() {
		return nil, false
	}
	return el, true
}
