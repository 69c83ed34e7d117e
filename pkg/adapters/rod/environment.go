// Package rod drives a real browser page over the DevTools protocol: it
// implements the guide's environment ports with live DOM measurements and
// renders callouts as shadow-DOM custom elements.
package rod

import (
	"context"
	"fmt"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/go-rod/rod"
)

// Environment implements ports.Environment over a rod page.
type Environment struct {
	page *rod.Page
}

var _ ports.Environment = (*Environment)(nil)

// NewEnvironment wraps page.
func NewEnvironment(page *rod.Page) *Environment {
	return &Environment{page: page}
}

// Find implements ports.ElementLocator. It does not wait for the element to
// appear; the first match in document order wins.
func (e *Environment) Find(ctx context.Context, selector string) (ports.Element, error) {
	els, err := e.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	if len(els) == 0 {
		return nil, nil
	}
	return &element{el: els[0], selector: selector}, nil
}

// Viewport implements ports.ViewportMeasurer.
func (e *Environment) Viewport(ctx context.Context) (domain.Viewport, error) {
	res, err := e.page.Context(ctx).Eval(`() => ({
		width: window.innerWidth,
		height: window.innerHeight,
		scrollX: window.scrollX,
		scrollY: window.scrollY
	})`)
	if err != nil {
		return domain.Viewport{}, fmt.Errorf("measure viewport: %w", err)
	}
	v := res.Value
	return domain.Viewport{
		Width:   v.Get("width").Num(),
		Height:  v.Get("height").Num(),
		ScrollX: v.Get("scrollX").Num(),
		ScrollY: v.Get("scrollY").Num(),
	}, nil
}

// ScrollIntoView implements ports.ScrollRequester with a smooth, centered
// scroll. It returns as soon as the scroll has been requested.
func (e *Environment) ScrollIntoView(ctx context.Context, el ports.Element) error {
	re, ok := el.(*element)
	if !ok {
		return fmt.Errorf("%w: element was not found by this environment", domain.ErrElementNotFound)
	}
	_, err := re.el.Context(ctx).Eval(`() => this.scrollIntoView({ behavior: 'smooth', block: 'center' })`)
	if err != nil {
		return fmt.Errorf("scroll %q: %w", re.selector, err)
	}
	return nil
}

type element struct {
	el       *rod.Element
	selector string
}

// BoundingBox returns the viewport-relative client rect.
func (e *element) BoundingBox(ctx context.Context) (domain.Rect, error) {
	res, err := e.el.Context(ctx).Eval(`() => {
		const r = this.getBoundingClientRect();
		return { top: r.top, left: r.left, width: r.width, height: r.height };
	}`)
	if err != nil {
		return domain.Rect{}, fmt.Errorf("%w: %s: %v", domain.ErrElementNotFound, e.selector, err)
	}
	v := res.Value
	return domain.Rect{
		Top:    v.Get("top").Num(),
		Left:   v.Get("left").Num(),
		Width:  v.Get("width").Num(),
		Height: v.Get("height").Num(),
	}, nil
}

// Style returns the computed display and visibility.
func (e *element) Style(ctx context.Context) (domain.Style, error) {
	res, err := e.el.Context(ctx).Eval(`() => {
		const s = window.getComputedStyle(this);
		return { display: s.display, visibility: s.visibility };
	}`)
	if err != nil {
		return domain.Style{}, fmt.Errorf("%w: %s: %v", domain.ErrElementNotFound, e.selector, err)
	}
	return domain.Style{
		Display:    res.Value.Get("display").String(),
		Visibility: res.Value.Get("visibility").String(),
	}, nil
}
