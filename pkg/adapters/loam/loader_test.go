package loam

import (
	"errors"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/waypoint/internal/testutils"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, files)
	return New(loam.NewTypedRepository[TourMetadata](repo))
}

func TestLoader_GetTour(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"onboarding.md": `---
id: onboarding
title: Welcome
theme: light
auto_scroll: true
steps:
  - selector: "#search"
    text: Search everything from here.
  - selector: ".profile"
    text: Your profile lives here.
---
First visit walkthrough.`,
	})

	tour, err := loader.GetTour("onboarding")
	require.NoError(t, err)

	assert.Equal(t, "onboarding", tour.ID)
	assert.Equal(t, "Welcome", tour.Title)
	assert.Equal(t, domain.ThemeLight, tour.Theme)
	assert.True(t, tour.AutoScroll)
	assert.Equal(t, "First visit walkthrough.", tour.Description)
	assert.Equal(t, []domain.Step{
		{Selector: "#search", Text: "Search everything from here."},
		{Selector: ".profile", Text: "Your profile lives here."},
	}, tour.Steps)
}

func TestLoader_GetTour_ImplicitIDAndTheme(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"implicit.json": `{"theme": "neon", "steps": [{"selector": "#a", "text": "a"}]}`,
	})

	tour, err := loader.GetTour("implicit")
	require.NoError(t, err)
	assert.Equal(t, "implicit", tour.ID)
	assert.Equal(t, domain.ThemeDark, tour.Theme)
	assert.Len(t, tour.Steps, 1)
}

func TestLoader_GetTour_UnknownStepKey(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"typo.md": `---
steps:
  - selectr: "#a"
    text: a
---`,
	})

	_, err := loader.GetTour("typo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTour))
	assert.Contains(t, err.Error(), "selectr")
}

func TestLoader_GetTour_Missing(t *testing.T) {
	loader := newLoader(t, nil)

	_, err := loader.GetTour("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTourNotFound))
}

func TestLoader_ListTours_NormalizesIDs(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"b.md":   "---\nid: b.md\n---\n",
		"a.json": `{"id": "a"}`,
		"c.md":   "---\ntitle: implied id\n---\n",
	})

	ids, err := loader.ListTours()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestLoader_ListTours_DetectsCollisions(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"foo.md":   "---\nid: foo\n---\nExplicit ID",
		"foo.json": `{"id": "foo"}`,
	})

	_, err := loader.ListTours()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}
