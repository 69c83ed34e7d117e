package placement

import (
	"math"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Input gathers the geometry a placement depends on.
type Input struct {
	Target   domain.Rect
	Callout  domain.Size
	Viewport domain.Viewport

	// Offset is the gap between the target edge and the callout.
	Offset float64

	// Margin keeps the callout away from the viewport edges.
	Margin float64
}

// DefaultInput returns an Input using the default offset and margin.
func DefaultInput(target domain.Rect, callout domain.Size, vp domain.Viewport) Input {
	return Input{
		Target:   target,
		Callout:  callout,
		Viewport: vp,
		Offset:   domain.DefaultOffset,
		Margin:   domain.DefaultMargin,
	}
}

// Compute returns the placement of a callout next to its target.
func Compute(in Input) domain.Placement {
	t, c, vp := in.Target, in.Callout, in.Viewport

	side := PreferredSide(t, vp)
	top := edgeTop(side, t, c, vp, in.Offset)

	// Single corrective pass; the flipped side is kept even if it overflows too.
	switch side {
	case domain.SideTop:
		if top < 0 {
			side = domain.SideBottom
			top = edgeTop(side, t, c, vp, in.Offset)
		}
	case domain.SideBottom:
		if top+c.Height > vp.Height {
			side = domain.SideTop
			top = edgeTop(side, t, c, vp, in.Offset)
		}
	}

	left := t.Left + vp.ScrollX + (t.Width-c.Width)/2

	top = Clamp(top, in.Margin, vp.Height-c.Height-in.Margin)
	left = Clamp(left, in.Margin, vp.Width-c.Width-in.Margin)

	return domain.Placement{
		Side:        side,
		Top:         top,
		Left:        left,
		ArrowOffset: ArrowOffset(t, left, c.Width),
	}
}

// PreferredSide picks the side of the target with more room. Ties go to the bottom.
func PreferredSide(target domain.Rect, vp domain.Viewport) domain.Side {
	above := target.Top
	below := vp.Height - target.Bottom()
	if above > below {
		return domain.SideTop
	}
	return domain.SideBottom
}

// ArrowOffset aligns the arrow with the target's midpoint, kept within
// [ArrowInset, width-ArrowInset] of the callout. The lower bound wins for
// callouts narrower than twice the inset.
func ArrowOffset(target domain.Rect, calloutLeft, calloutWidth float64) float64 {
	return Clamp(target.CenterX()-calloutLeft, domain.ArrowInset, calloutWidth-domain.ArrowInset)
}

// Clamp bounds v into [lo, hi]. When the interval is empty it saturates at lo.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func edgeTop(side domain.Side, t domain.Rect, c domain.Size, vp domain.Viewport, offset float64) float64 {
	if side == domain.SideTop {
		return t.Top + vp.ScrollY - c.Height - offset
	}
	return t.Bottom() + vp.ScrollY + offset
}
