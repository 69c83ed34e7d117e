package domain

// Rect is an element's bounding box in viewport coordinates.
type Rect struct {
	Top    float64 `json:"top" yaml:"top"`
	Left   float64 `json:"left" yaml:"left"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// CenterX returns the horizontal midpoint.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// Empty reports whether the box has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Size is the natural (unconstrained) size of a rendered callout.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Viewport describes the visible area and how far the document is scrolled.
type Viewport struct {
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
	ScrollX float64 `json:"scroll_x" yaml:"scroll_x"`
	ScrollY float64 `json:"scroll_y" yaml:"scroll_y"`
}

// Style is the subset of an element's computed style the guide cares about.
type Style struct {
	Display    string `json:"display" yaml:"display"`
	Visibility string `json:"visibility" yaml:"visibility"`
}

// Hidden reports whether the computed style removes the element from view.
func (s Style) Hidden() bool {
	return s.Display == DisplayNone || s.Visibility == VisibilityHidden
}

// Side is the side of the target the callout is attached to.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// Placement is the computed position of a callout. It is derived every time
// a step is shown and never persisted.
type Placement struct {
	Side        Side    `json:"position"`
	Top         float64 `json:"top"`
	Left        float64 `json:"left"`
	ArrowOffset float64 `json:"arrow_offset"`
}
