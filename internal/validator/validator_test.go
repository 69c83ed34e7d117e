package validator

import (
	"errors"
	"testing"

	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTour(t *testing.T) {
	valid := domain.Tour{ID: "ok", Steps: []domain.Step{
		{Selector: "#a", Text: "a"},
		{Selector: `input[name="q"]`, Text: "q"},
		{Selector: "li:nth-child(2)", Text: "second"},
	}}
	assert.NoError(t, ValidateTour(valid))

	cases := map[string]struct {
		tour domain.Tour
		want string
	}{
		"no id":          {domain.Tour{Steps: []domain.Step{{Selector: "#a", Text: "a"}}}, "Tour has no ID"},
		"no steps":       {domain.Tour{ID: "t"}, "has no steps"},
		"empty selector": {domain.Tour{ID: "t", Steps: []domain.Step{{Text: "a"}}}, "empty selector"},
		"empty text":     {domain.Tour{ID: "t", Steps: []domain.Step{{Selector: "#a"}}}, "empty text"},
		"unbalanced":     {domain.Tour{ID: "t", Steps: []domain.Step{{Selector: "a[href", Text: "a"}}}, "missing"},
		"stray close":    {domain.Tour{ID: "t", Steps: []domain.Step{{Selector: "a)", Text: "a"}}}, "unbalanced"},
		"open quote":     {domain.Tour{ID: "t", Steps: []domain.Step{{Selector: `a[title="x]`, Text: "a"}}}, "unterminated"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateTour(tc.tour)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			assert.True(t, errors.Is(err, domain.ErrInvalidTour))
		})
	}
}

func TestValidateLoader_AggregatesAcrossTours(t *testing.T) {
	loader, err := memory.NewLoader(
		domain.Tour{ID: "good", Steps: []domain.Step{{Selector: "#a", Text: "a"}}},
		domain.Tour{ID: "bad", Steps: []domain.Step{{Selector: "", Text: ""}}},
		domain.Tour{ID: "empty"},
	)
	require.NoError(t, err)

	err = ValidateLoader(loader)
	require.Error(t, err)

	var agg *AggregateError
	require.True(t, errors.As(err, &agg))
	assert.Len(t, agg.Problems, 3)
	assert.Contains(t, err.Error(), "found 3 errors")
}
