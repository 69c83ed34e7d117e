package placement_test

import (
	"math/rand"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/placement"
	"github.com/stretchr/testify/assert"
)

var desktop = domain.Viewport{Width: 1024, Height: 768}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		target   domain.Rect
		callout  domain.Size
		viewport domain.Viewport
		want     domain.Placement
	}{
		{
			name:     "more room below",
			target:   domain.Rect{Top: 100, Left: 100, Width: 200, Height: 40},
			callout:  domain.Size{Width: 300, Height: 120},
			viewport: desktop,
			want:     domain.Placement{Side: domain.SideBottom, Top: 148, Left: 50, ArrowOffset: 150},
		},
		{
			name:     "more room above",
			target:   domain.Rect{Top: 600, Left: 400, Width: 100, Height: 40},
			callout:  domain.Size{Width: 300, Height: 120},
			viewport: desktop,
			want:     domain.Placement{Side: domain.SideTop, Top: 472, Left: 300, ArrowOffset: 150},
		},
		{
			name:     "tie goes to bottom",
			target:   domain.Rect{Top: 80, Left: 50, Width: 100, Height: 40},
			callout:  domain.Size{Width: 100, Height: 50},
			viewport: domain.Viewport{Width: 200, Height: 200},
			want:     domain.Placement{Side: domain.SideBottom, Top: 128, Left: 50, ArrowOffset: 50},
		},
		{
			name:     "top overflow flips to bottom",
			target:   domain.Rect{Top: 50, Left: 100, Width: 200, Height: 340},
			callout:  domain.Size{Width: 300, Height: 120},
			viewport: domain.Viewport{Width: 1024, Height: 400},
			want:     domain.Placement{Side: domain.SideBottom, Top: 272, Left: 50, ArrowOffset: 150},
		},
		{
			name:     "bottom overflow flips to top and clamps",
			target:   domain.Rect{Top: 150, Left: 100, Width: 200, Height: 100},
			callout:  domain.Size{Width: 200, Height: 200},
			viewport: domain.Viewport{Width: 1024, Height: 400},
			want:     domain.Placement{Side: domain.SideTop, Top: 8, Left: 100, ArrowOffset: 100},
		},
		{
			name:     "clamped at left edge",
			target:   domain.Rect{Top: 100, Left: 0, Width: 20, Height: 20},
			callout:  domain.Size{Width: 300, Height: 100},
			viewport: desktop,
			want:     domain.Placement{Side: domain.SideBottom, Top: 128, Left: 8, ArrowOffset: 8},
		},
		{
			name:     "clamped at right edge",
			target:   domain.Rect{Top: 100, Left: 1000, Width: 20, Height: 20},
			callout:  domain.Size{Width: 300, Height: 100},
			viewport: desktop,
			want:     domain.Placement{Side: domain.SideBottom, Top: 128, Left: 716, ArrowOffset: 292},
		},
		{
			name:     "callout larger than viewport saturates at margin",
			target:   domain.Rect{Top: 50, Left: 50, Width: 50, Height: 50},
			callout:  domain.Size{Width: 300, Height: 300},
			viewport: domain.Viewport{Width: 200, Height: 200},
			want:     domain.Placement{Side: domain.SideTop, Top: 8, Left: 8, ArrowOffset: 67},
		},
		{
			name:     "horizontal scroll shifts the callout",
			target:   domain.Rect{Top: 100, Left: 100, Width: 200, Height: 40},
			callout:  domain.Size{Width: 300, Height: 120},
			viewport: domain.Viewport{Width: 1024, Height: 768, ScrollX: 30},
			want:     domain.Placement{Side: domain.SideBottom, Top: 148, Left: 80, ArrowOffset: 120},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := placement.Compute(placement.DefaultInput(tt.target, tt.callout, tt.viewport))
			assert.Equal(t, tt.want, got)
		})
	}
}

// Scenario: the raw comparison favors the top, but there is no room there.
func TestCompute_NearTopResolvesBelow(t *testing.T) {
	vp := domain.Viewport{Width: 800, Height: 600}
	target := domain.Rect{Top: 20, Left: 300, Width: 200, Height: 570}

	assert.Equal(t, domain.SideTop, placement.PreferredSide(target, vp))

	got := placement.Compute(placement.DefaultInput(target, domain.Size{Width: 240, Height: 90}, vp))
	assert.Equal(t, domain.SideBottom, got.Side)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, placement.Clamp(5, 0, 10))
	assert.Equal(t, 0.0, placement.Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, placement.Clamp(42, 0, 10))
	assert.Equal(t, 8.0, placement.Clamp(42, 8, -100), "empty interval saturates at the lower bound")
}

func randomInput(r *rand.Rand) placement.Input {
	vp := domain.Viewport{
		Width:   200 + r.Float64()*1800,
		Height:  200 + r.Float64()*1200,
		ScrollX: r.Float64() * 500,
		ScrollY: r.Float64() * 2000,
	}
	target := domain.Rect{
		Top:    -200 + r.Float64()*(vp.Height+400),
		Left:   -200 + r.Float64()*(vp.Width+400),
		Width:  1 + r.Float64()*600,
		Height: 1 + r.Float64()*400,
	}
	callout := domain.Size{
		Width:  16 + r.Float64()*600,
		Height: 16 + r.Float64()*500,
	}
	return placement.DefaultInput(target, callout, vp)
}

func TestCompute_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		in := randomInput(r)
		got := placement.Compute(in)

		// bounds
		maxTop := in.Viewport.Height - in.Callout.Height - in.Margin
		if maxTop >= in.Margin {
			assert.GreaterOrEqual(t, got.Top, in.Margin)
			assert.LessOrEqual(t, got.Top, maxTop)
		} else {
			assert.Equal(t, in.Margin, got.Top)
		}
		maxLeft := in.Viewport.Width - in.Callout.Width - in.Margin
		if maxLeft >= in.Margin {
			assert.GreaterOrEqual(t, got.Left, in.Margin)
			assert.LessOrEqual(t, got.Left, maxLeft)
		} else {
			assert.Equal(t, in.Margin, got.Left)
		}

		// arrow containment
		assert.GreaterOrEqual(t, got.ArrowOffset, domain.ArrowInset)
		assert.LessOrEqual(t, got.ArrowOffset, in.Callout.Width-domain.ArrowInset)

		// flip correctness
		above := in.Target.Top
		below := in.Viewport.Height - in.Target.Bottom()
		if above <= below {
			belowTop := in.Target.Bottom() + in.Viewport.ScrollY + in.Offset
			if belowTop+in.Callout.Height > in.Viewport.Height {
				assert.Equal(t, domain.SideTop, got.Side)
			} else {
				assert.Equal(t, domain.SideBottom, got.Side)
			}
		}

		if t.Failed() {
			t.Fatalf("property violated for input %+v -> %+v", in, got)
		}
	}
}
