package rod

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/go-rod/rod"
	"github.com/google/uuid"
	"github.com/ysmood/gson"
)

//go:embed assets/callout.css
var calloutCSS string

//go:embed assets/runtime.js
var runtimeJS string

// bindingName is the window function buttons call back into.
const bindingName = "__waypointControl"

// CalloutFactory implements ports.CalloutFactory by injecting a small
// runtime into the page and rendering each callout as a custom element.
type CalloutFactory struct {
	page *rod.Page

	once    sync.Once
	bindErr error
	stop    func() error

	mu       sync.Mutex
	callouts map[string]*Callout
}

var _ ports.CalloutFactory = (*CalloutFactory)(nil)

// NewCalloutFactory creates a factory rendering into page.
func NewCalloutFactory(page *rod.Page) *CalloutFactory {
	return &CalloutFactory{
		page:     page,
		callouts: make(map[string]*Callout),
	}
}

// Close removes the control binding from the page.
func (f *CalloutFactory) Close() error {
	if f.stop == nil {
		return nil
	}
	return f.stop()
}

func (f *CalloutFactory) bind() error {
	f.once.Do(func() {
		f.stop, f.bindErr = f.page.Expose(bindingName, func(arg gson.JSON) (interface{}, error) {
			f.dispatch(arg.Get("id").String(), domain.ControlID(arg.Get("control").String()))
			return nil, nil
		})
	})
	return f.bindErr
}

func (f *CalloutFactory) dispatch(id string, ctl domain.ControlID) {
	f.mu.Lock()
	c, ok := f.callouts[id]
	f.mu.Unlock()
	if !ok {
		return
	}
	if fn := c.handler(ctl); fn != nil {
		// Off the binding goroutine; the handler takes the controller lock.
		go fn()
	}
}

// Create implements ports.CalloutFactory.
func (f *CalloutFactory) Create(ctx context.Context, content domain.CalloutContent, theme domain.Theme) (ports.Callout, error) {
	if err := f.bind(); err != nil {
		return nil, fmt.Errorf("expose control binding: %w", err)
	}

	page := f.page.Context(ctx)
	if _, err := page.Evaluate(&rod.EvalOptions{
		JS:      runtimeJS,
		JSArgs:  []interface{}{calloutCSS},
		ByValue: true,
	}); err != nil {
		return nil, fmt.Errorf("install callout runtime: %w", err)
	}

	c := &Callout{
		id:       uuid.NewString(),
		page:     f.page,
		content:  content,
		handlers: make(map[domain.ControlID]func()),
		release:  f.release,
	}
	if err := c.call(ctx, "create", c.id, content.Markup, string(theme.Normalize())); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.callouts[c.id] = c
	f.mu.Unlock()
	return c, nil
}

func (f *CalloutFactory) release(id string) {
	f.mu.Lock()
	delete(f.callouts, id)
	f.mu.Unlock()
}

// Callout is one rendered callout element.
type Callout struct {
	id      string
	page    *rod.Page
	content domain.CalloutContent
	release func(string)

	mu        sync.Mutex
	handlers  map[domain.ControlID]func()
	destroyed bool
}

func (c *Callout) call(ctx context.Context, method string, args ...interface{}) error {
	_, err := c.eval(ctx, method, args...)
	return err
}

func (c *Callout) eval(ctx context.Context, method string, args ...interface{}) (gson.JSON, error) {
	c.mu.Lock()
	gone := c.destroyed
	c.mu.Unlock()
	if gone {
		return gson.JSON{}, fmt.Errorf("%w: %s", domain.ErrCalloutDestroyed, c.id)
	}

	res, err := c.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:      fmt.Sprintf(`(...args) => window.__waypoint.%s(...args)`, method),
		JSArgs:  args,
		ByValue: true,
	})
	if err != nil {
		return gson.JSON{}, fmt.Errorf("callout %s: %w", method, err)
	}
	return res.Value, nil
}

// MeasureNaturalSize implements ports.Callout.
func (c *Callout) MeasureNaturalSize(ctx context.Context) (domain.Size, error) {
	v, err := c.eval(ctx, "measure", c.id)
	if err != nil {
		return domain.Size{}, err
	}
	return domain.Size{Width: v.Get("width").Num(), Height: v.Get("height").Num()}, nil
}

// SetPosition implements ports.Callout.
func (c *Callout) SetPosition(ctx context.Context, side domain.Side, top, left float64) error {
	return c.call(ctx, "position", c.id, string(side), top, left)
}

// SetArrowOffset implements ports.Callout.
func (c *Callout) SetArrowOffset(ctx context.Context, px float64) error {
	return c.call(ctx, "arrow", c.id, px)
}

// Show implements ports.Callout.
func (c *Callout) Show(ctx context.Context) error {
	return c.call(ctx, "show", c.id)
}

// Hide implements ports.Callout.
func (c *Callout) Hide(ctx context.Context) error {
	return c.call(ctx, "hide", c.id)
}

// Destroy implements ports.Callout.
func (c *Callout) Destroy(ctx context.Context) error {
	if err := c.call(ctx, "destroy", c.id); err != nil {
		return err
	}
	c.mu.Lock()
	c.destroyed = true
	c.handlers = make(map[domain.ControlID]func())
	c.mu.Unlock()
	c.release(c.id)
	return nil
}

// HasControl implements ports.Callout.
func (c *Callout) HasControl(id domain.ControlID) bool {
	return c.content.HasControl(id)
}

// OnControlActivated implements ports.Callout.
func (c *Callout) OnControlActivated(id domain.ControlID, fn func()) error {
	if !c.content.HasControl(id) {
		return fmt.Errorf("callout %s has no control %q", c.id, id)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return fmt.Errorf("%w: %s", domain.ErrCalloutDestroyed, c.id)
	}
	c.handlers[id] = fn
	return nil
}

func (c *Callout) handler(id domain.ControlID) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handlers[id]
}
