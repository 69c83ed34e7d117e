package ports

import (
	"context"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Element is a handle to a node of the host's element tree.
// Measurements are taken fresh on every call; handles do not cache layout.
type Element interface {
	// BoundingBox returns the rendered box in viewport coordinates.
	BoundingBox(ctx context.Context) (domain.Rect, error)

	// Style returns the computed display and visibility.
	Style(ctx context.Context) (domain.Style, error)
}

// ElementLocator resolves selectors to elements.
type ElementLocator interface {
	// Find returns the first element matching selector in document order,
	// or nil with a nil error when nothing matches.
	Find(ctx context.Context, selector string) (Element, error)
}

// ViewportMeasurer reports the size and scroll offset of the visible area.
type ViewportMeasurer interface {
	Viewport(ctx context.Context) (domain.Viewport, error)
}

// ScrollRequester asks the host to bring an element to the center of the view.
// Completion is not signaled; callers wait a fixed settle delay.
type ScrollRequester interface {
	ScrollIntoView(ctx context.Context, el Element) error
}

// Environment bundles everything the controller needs from the host page.
type Environment interface {
	ElementLocator
	ViewportMeasurer
	ScrollRequester
}
