package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallout_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := memory.NewCalloutFactory(memory.WithFixedSize(domain.Size{Width: 200, Height: 80}))

	content := domain.CalloutContent{
		Text:     "Hello",
		Controls: []domain.ControlID{domain.ControlNext, domain.ControlClose},
	}
	handle, err := f.Create(ctx, content, domain.ThemeLight)
	require.NoError(t, err)
	c := f.Last()
	require.NotNil(t, c)

	assert.False(t, c.State().Visible, "new callouts start hidden")

	size, err := handle.MeasureNaturalSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Size{Width: 200, Height: 80}, size)

	require.NoError(t, handle.SetPosition(ctx, domain.SideBottom, 10, 20))
	require.NoError(t, handle.SetArrowOffset(ctx, 42))
	require.NoError(t, handle.Show(ctx))

	st := c.State()
	assert.True(t, st.Visible)
	assert.Equal(t, domain.SideBottom, st.Side)
	assert.Equal(t, 42.0, st.ArrowOffset)
	assert.Len(t, f.Visible(), 1)

	assert.True(t, handle.HasControl(domain.ControlNext))
	assert.False(t, handle.HasControl(domain.ControlPrevious))
	assert.Error(t, handle.OnControlActivated(domain.ControlPrevious, func() {}))

	clicked := 0
	require.NoError(t, handle.OnControlActivated(domain.ControlNext, func() { clicked++ }))
	require.NoError(t, c.Activate(domain.ControlNext))
	assert.Equal(t, 1, clicked)
	assert.Error(t, c.Activate(domain.ControlClose), "close was never wired")

	require.NoError(t, handle.Hide(ctx))
	assert.True(t, c.State().FadingOut)
	require.NoError(t, handle.Destroy(ctx))

	assert.ErrorIs(t, handle.Show(ctx), domain.ErrCalloutDestroyed)
	assert.ErrorIs(t, c.Activate(domain.ControlNext), domain.ErrCalloutDestroyed)
	assert.Empty(t, f.Visible())
}

func TestDefaultSize(t *testing.T) {
	short := memory.DefaultSize(domain.CalloutContent{Text: "Hi"})
	assert.Equal(t, 38.0, short.Width)
	assert.Equal(t, 74.0, short.Height)

	long := memory.DefaultSize(domain.CalloutContent{Text: string(make([]rune, 100))})
	assert.Equal(t, 300.0, long.Width)
	assert.Greater(t, long.Height, short.Height)
}
