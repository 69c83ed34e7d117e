package lookup

import (
	"errors"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	ids := []string{"onboarding", "billing", "settings", "dashboard"}

	assert.Equal(t, []string{"onboarding"}, Suggest("onbaording", ids))
	assert.Equal(t, []string{"settings"}, Suggest("Setings", ids))
	assert.Empty(t, Suggest("zzz", ids))
}

func TestTour(t *testing.T) {
	b := dsl.New()
	b.Add("onboarding").Step("#a", "A")
	loader, err := b.Build()
	require.NoError(t, err)

	tour, err := Tour(loader, "onboarding")
	require.NoError(t, err)
	assert.Equal(t, "onboarding", tour.ID)

	_, err = Tour(loader, "onbording")
	require.ErrorIs(t, err, domain.ErrTourNotFound)
	assert.Contains(t, err.Error(), "did you mean onboarding?")

	_, err = Tour(loader, "nothing-alike")
	require.ErrorIs(t, err, domain.ErrTourNotFound)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestNotFoundError(t *testing.T) {
	var err error = &NotFoundError{ID: "x", Suggestions: []string{"y"}}
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"y"}, nf.Suggestions)
	assert.ErrorIs(t, err, domain.ErrTourNotFound)
}
