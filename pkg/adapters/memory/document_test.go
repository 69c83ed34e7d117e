package memory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_FindReturnsFirstMatch(t *testing.T) {
	ctx := context.Background()
	doc := memory.NewDocument(domain.Viewport{Width: 800, Height: 600})
	doc.Add(".item", domain.Rect{Top: 10, Left: 10, Width: 50, Height: 20})
	doc.Add(".item", domain.Rect{Top: 90, Left: 10, Width: 50, Height: 20})

	el, err := doc.Find(ctx, ".item")
	require.NoError(t, err)
	require.NotNil(t, el)

	box, err := el.BoundingBox(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10.0, box.Top)

	missing, err := doc.Find(ctx, "#nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDocument_LiveMeasurements(t *testing.T) {
	ctx := context.Background()
	doc := memory.NewDocument(domain.Viewport{Width: 800, Height: 600})
	doc.Add("#a", domain.Rect{Top: 10, Left: 10, Width: 50, Height: 20})

	el, _ := doc.Find(ctx, "#a")
	require.NoError(t, doc.SetStyle("#a", domain.Style{Display: "none", Visibility: "visible"}))

	style, err := el.Style(ctx)
	require.NoError(t, err)
	assert.True(t, style.Hidden())

	doc.Remove("#a")
	_, err = el.BoundingBox(ctx)
	assert.ErrorIs(t, err, domain.ErrElementNotFound)
	assert.ErrorIs(t, doc.SetRect("#a", domain.Rect{}), domain.ErrElementNotFound)
}

func TestDocument_ScrollIntoViewCenters(t *testing.T) {
	ctx := context.Background()
	doc := memory.NewDocument(domain.Viewport{Width: 800, Height: 600})
	doc.Add("#header", domain.Rect{Top: 0, Left: 0, Width: 800, Height: 50})
	doc.Add("#footer", domain.Rect{Top: 1500, Left: 0, Width: 800, Height: 100})

	el, _ := doc.Find(ctx, "#footer")
	require.NoError(t, doc.ScrollIntoView(ctx, el))

	box, _ := el.BoundingBox(ctx)
	assert.Equal(t, 250.0, box.Top, "footer centered: 300 - 100/2")

	vp, _ := doc.Viewport(ctx)
	assert.Equal(t, 1250.0, vp.ScrollY)

	header, _ := doc.Find(ctx, "#header")
	hbox, _ := header.BoundingBox(ctx)
	assert.Equal(t, -1250.0, hbox.Top)

	// Scrolling back to the header stops at the document top.
	require.NoError(t, doc.ScrollIntoView(ctx, header))
	vp, _ = doc.Viewport(ctx)
	assert.Equal(t, 0.0, vp.ScrollY)
	hbox, _ = header.BoundingBox(ctx)
	assert.Equal(t, 0.0, hbox.Top)

	assert.Equal(t, []string{"#footer", "#header"}, doc.Scrolled())
}

func TestDecodeLayout(t *testing.T) {
	src := `
viewport:
  width: 1024
  height: 768
elements:
  - selector: "#a"
    top: 100
    left: 40
    width: 120
    height: 30
  - selector: "#hidden"
    top: 10
    left: 10
    width: 10
    height: 10
    display: none
`
	layout, err := memory.DecodeLayout(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, layout.Elements, 2)

	ctx := context.Background()
	doc := layout.Document()

	el, _ := doc.Find(ctx, "#hidden")
	require.NotNil(t, el)
	style, _ := el.Style(ctx)
	assert.Equal(t, "none", style.Display)
	assert.Equal(t, "visible", style.Visibility)

	_, err = memory.DecodeLayout(strings.NewReader("elements: []"))
	assert.Error(t, err, "viewport is required")
}
