package ports

import (
	"context"

	"github.com/aretw0/waypoint/pkg/domain"
)

// CalloutFactory creates callouts. A new callout starts hidden so it can be
// measured before it is revealed.
type CalloutFactory interface {
	Create(ctx context.Context, content domain.CalloutContent, theme domain.Theme) (Callout, error)
}

// Callout is the render target of one step.
type Callout interface {
	// MeasureNaturalSize lays the callout out invisibly and returns its size.
	MeasureNaturalSize(ctx context.Context) (domain.Size, error)

	// SetPosition moves the callout and records which side of the target it is on.
	SetPosition(ctx context.Context, side domain.Side, top, left float64) error

	// SetArrowOffset places the arrow, in pixels from the callout's left edge.
	SetArrowOffset(ctx context.Context, px float64) error

	// Show starts the reveal transition.
	Show(ctx context.Context) error

	// Hide starts the fade-out transition. The callout stays attached.
	Hide(ctx context.Context) error

	// Destroy detaches the callout. Later calls return domain.ErrCalloutDestroyed.
	Destroy(ctx context.Context) error

	// HasControl reports whether the rendered body contains the control.
	HasControl(id domain.ControlID) bool

	// OnControlActivated registers fn to run when the control is activated.
	OnControlActivated(id domain.ControlID, fn func()) error
}
