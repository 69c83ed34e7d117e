package waypoint_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/adapters/clock"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	doc     *memory.Document
	factory *memory.CalloutFactory
	store   *memory.Store
	sched   *clock.Manual
}

func newFixture() *fixture {
	doc := memory.NewDocument(domain.Viewport{Width: 1024, Height: 768})
	doc.Add("#a", domain.Rect{Top: 100, Left: 100, Width: 100, Height: 30})
	doc.Add("#b", domain.Rect{Top: 700, Left: 100, Width: 100, Height: 30})
	return &fixture{
		doc:     doc,
		factory: memory.NewCalloutFactory(memory.WithFixedSize(domain.Size{Width: 200, Height: 80})),
		store:   memory.NewStore(),
		sched:   clock.NewManual(),
	}
}

func (f *fixture) guide(t *testing.T, opts ...waypoint.Option) *waypoint.Guide {
	t.Helper()
	g, err := waypoint.New(f.doc, f.factory,
		append([]waypoint.Option{waypoint.WithStore(f.store), waypoint.WithScheduler(f.sched)}, opts...)...)
	require.NoError(t, err)
	return g
}

func (f *fixture) visible() []memory.CalloutState {
	var out []memory.CalloutState
	for _, c := range f.factory.Visible() {
		out = append(out, c.State())
	}
	return out
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := waypoint.New(nil, memory.NewCalloutFactory())
	assert.Error(t, err)

	_, err = waypoint.New(memory.NewDocument(domain.Viewport{Width: 1, Height: 1}), nil)
	assert.Error(t, err)
}

func TestGuide_EndToEnd(t *testing.T) {
	f := newFixture()
	g := f.guide(t)
	ctx := context.Background()

	steps := []domain.Step{{Selector: "#a", Text: "A"}, {Selector: "#b", Text: "B"}}
	require.True(t, g.Start(ctx, steps, waypoint.WithTourID("intro"), waypoint.WithTheme("light")))
	f.sched.Drain(100)

	vis := f.visible()
	require.Len(t, vis, 1)
	assert.Equal(t, domain.SideBottom, vis[0].Side)
	assert.Equal(t, 138.0, vis[0].Top)
	assert.Equal(t, domain.ThemeLight, vis[0].Theme)
	assert.Equal(t, []domain.ControlID{domain.ControlNext, domain.ControlClose}, vis[0].Content.Controls)

	g.Next(ctx)
	f.sched.Drain(100)
	vis = f.visible()
	require.Len(t, vis, 1)
	assert.Equal(t, domain.SideTop, vis[0].Side)
	assert.Equal(t, 612.0, vis[0].Top)
	assert.Equal(t, 1, g.Snapshot().CurrentIndex)

	g.Next(ctx)
	f.sched.Drain(100)
	assert.False(t, g.Snapshot().Active)
	assert.Empty(t, f.visible())

	done, err := g.IsCompleted(ctx, "intro")
	require.NoError(t, err)
	assert.True(t, done)

	assert.False(t, g.Start(ctx, steps, waypoint.WithTourID("intro")), "completed tour is not restarted")
	assert.True(t, g.Start(ctx, steps, waypoint.WithTourID("intro"), waypoint.WithForceStart(true)))
	g.Finish(ctx)

	require.NoError(t, g.Reset(ctx, "intro"))
	done, err = g.IsCompleted(ctx, "intro")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestGuide_StartByID(t *testing.T) {
	b := dsl.New()
	b.Add("intro").Light().AutoScroll().Step("#a", "A").Step("#missing", "gone").Step("#b", "B")
	loader, err := b.Build()
	require.NoError(t, err)

	f := newFixture()
	g := f.guide(t, waypoint.WithLoader(loader))
	ctx := context.Background()

	ok, err := g.StartByID(ctx, "intro", false)
	require.NoError(t, err)
	require.True(t, ok)
	f.sched.Drain(100)

	snap := g.Snapshot()
	assert.Equal(t, "intro", snap.TourID)
	assert.Equal(t, domain.ThemeLight, snap.Theme)
	assert.True(t, snap.AutoScroll)
	assert.Equal(t, []string{"#a"}, f.doc.Scrolled())

	g.Next(ctx)
	f.sched.Drain(100)
	assert.Equal(t, 2, g.Snapshot().CurrentIndex, "missing target is skipped")

	_, err = g.StartByID(ctx, "nope", false)
	assert.ErrorIs(t, err, domain.ErrTourNotFound)
}

func TestGuide_StartByIDWithoutLoader(t *testing.T) {
	g := newFixture().guide(t)
	_, err := g.StartByID(context.Background(), "intro", false)
	assert.Error(t, err)
	assert.Nil(t, g.Loader())
}

func TestGuide_TourDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.md"), []byte(`---
title: Intro
steps:
  - selector: "#a"
    text: Start here.
---
`), 0o644))

	f := newFixture()
	g := f.guide(t, waypoint.WithTourDir(dir))
	require.NotNil(t, g.Loader())

	ok, err := g.StartByID(context.Background(), "intro", false)
	require.NoError(t, err)
	assert.True(t, ok)
	f.sched.Drain(100)

	vis := f.visible()
	require.Len(t, vis, 1)
	assert.Equal(t, "Start here.", vis[0].Content.Text)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, waypoint.Version)
}
