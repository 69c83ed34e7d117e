package memory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// SizeFunc estimates the natural size of a callout from its content.
type SizeFunc func(domain.CalloutContent) domain.Size

// DefaultSize approximates a 300px-wide callout body: 12px padding, 7px per
// character, 18px lines and a 32px button row.
func DefaultSize(c domain.CalloutContent) domain.Size {
	lines := strings.Split(c.Text, "\n")
	longest := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > longest {
			longest = n
		}
	}
	width := math.Min(300, 24+7*float64(longest))
	perLine := math.Max(1, math.Floor((width-24)/7))
	rows := 0.0
	for _, l := range lines {
		rows += math.Max(1, math.Ceil(float64(len([]rune(l)))/perLine))
	}
	return domain.Size{Width: width, Height: 24 + 18*rows + 32}
}

// CalloutFactory implements ports.CalloutFactory, recording every callout it creates.
type CalloutFactory struct {
	mu      sync.Mutex
	size    SizeFunc
	created []*Callout
}

var _ ports.CalloutFactory = (*CalloutFactory)(nil)

// FactoryOption configures a CalloutFactory.
type FactoryOption func(*CalloutFactory)

// WithSizeFunc overrides how callouts are measured.
func WithSizeFunc(fn SizeFunc) FactoryOption {
	return func(f *CalloutFactory) {
		f.size = fn
	}
}

// WithFixedSize makes every callout measure as size.
func WithFixedSize(size domain.Size) FactoryOption {
	return WithSizeFunc(func(domain.CalloutContent) domain.Size { return size })
}

// NewCalloutFactory creates an in-memory callout factory.
func NewCalloutFactory(opts ...FactoryOption) *CalloutFactory {
	f := &CalloutFactory{size: DefaultSize}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create implements ports.CalloutFactory.
func (f *CalloutFactory) Create(ctx context.Context, content domain.CalloutContent, theme domain.Theme) (ports.Callout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := &Callout{
		id:       len(f.created) + 1,
		content:  content,
		theme:    theme,
		size:     f.size(content),
		handlers: make(map[domain.ControlID]func()),
	}
	f.created = append(f.created, c)
	return c, nil
}

// Created returns every callout created so far, oldest first.
func (f *CalloutFactory) Created() []*Callout {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Callout(nil), f.created...)
}

// Visible returns the callouts currently shown (not fading out, not destroyed).
func (f *CalloutFactory) Visible() []*Callout {
	var out []*Callout
	for _, c := range f.Created() {
		if c.State().Visible {
			out = append(out, c)
		}
	}
	return out
}

// Last returns the most recently created callout, or nil.
func (f *CalloutFactory) Last() *Callout {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

// CalloutState is a point-in-time view of an in-memory callout.
type CalloutState struct {
	ID          int
	Content     domain.CalloutContent
	Theme       domain.Theme
	Size        domain.Size
	Side        domain.Side
	Top         float64
	Left        float64
	ArrowOffset float64
	Measured    bool
	Positioned  bool
	Visible     bool
	FadingOut   bool
	Destroyed   bool
}

// Callout implements ports.Callout in memory.
type Callout struct {
	mu       sync.Mutex
	id       int
	content  domain.CalloutContent
	theme    domain.Theme
	size     domain.Size
	handlers map[domain.ControlID]func()

	side       domain.Side
	top, left  float64
	arrow      float64
	measured   bool
	positioned bool
	visible    bool
	fading     bool
	destroyed  bool
}

// State returns a snapshot of the callout.
func (c *Callout) State() CalloutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CalloutState{
		ID:          c.id,
		Content:     c.content,
		Theme:       c.theme,
		Size:        c.size,
		Side:        c.side,
		Top:         c.top,
		Left:        c.left,
		ArrowOffset: c.arrow,
		Measured:    c.measured,
		Positioned:  c.positioned,
		Visible:     c.visible,
		FadingOut:   c.fading,
		Destroyed:   c.destroyed,
	}
}

func (c *Callout) alive() error {
	if c.destroyed {
		return fmt.Errorf("%w: callout %d", domain.ErrCalloutDestroyed, c.id)
	}
	return nil
}

// MeasureNaturalSize implements ports.Callout.
func (c *Callout) MeasureNaturalSize(ctx context.Context) (domain.Size, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.alive(); err != nil {
		return domain.Size{}, err
	}
	c.measured = true
	return c.size, nil
}

// SetPosition implements ports.Callout.
func (c *Callout) SetPosition(ctx context.Context, side domain.Side, top, left float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.alive(); err != nil {
		return err
	}
	c.side, c.top, c.left = side, top, left
	c.positioned = true
	return nil
}

// SetArrowOffset implements ports.Callout.
func (c *Callout) SetArrowOffset(ctx context.Context, px float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.alive(); err != nil {
		return err
	}
	c.arrow = px
	return nil
}

// Show implements ports.Callout.
func (c *Callout) Show(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.alive(); err != nil {
		return err
	}
	c.visible, c.fading = true, false
	return nil
}

// Hide implements ports.Callout.
func (c *Callout) Hide(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.alive(); err != nil {
		return err
	}
	c.visible, c.fading = false, true
	return nil
}

// Destroy implements ports.Callout.
func (c *Callout) Destroy(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.alive(); err != nil {
		return err
	}
	c.visible, c.fading, c.destroyed = false, false, true
	c.handlers = make(map[domain.ControlID]func())
	return nil
}

// HasControl implements ports.Callout.
func (c *Callout) HasControl(id domain.ControlID) bool {
	return c.content.HasControl(id)
}

// OnControlActivated implements ports.Callout.
func (c *Callout) OnControlActivated(id domain.ControlID, fn func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.alive(); err != nil {
		return err
	}
	if !c.content.HasControl(id) {
		return fmt.Errorf("callout %d has no control %q", c.id, id)
	}
	c.handlers[id] = fn
	return nil
}

// Activate simulates the user activating a control, e.g. clicking a button.
func (c *Callout) Activate(id domain.ControlID) error {
	c.mu.Lock()
	if err := c.alive(); err != nil {
		c.mu.Unlock()
		return err
	}
	fn, ok := c.handlers[id]
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("callout %d: control %q is not wired", c.id, id)
	}
	fn()
	return nil
}
