package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/waypoint/internal/presentation/graph"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	tour := domain.Tour{
		ID:    "first-run",
		Title: "Welcome",
		Steps: []domain.Step{
			{Selector: "#a", Text: "a"},
			{Selector: `input[name="q"]`, Text: "q"},
		},
	}

	out := graph.GenerateMermaid(tour, nil)
	for _, want := range []string{
		"graph TD",
		`first_run_start(("Welcome"))`,
		`step_0["1: #a"]`,
		`step_1["2: input[name='q']"]`,
		"first_run_start --> step_0",
		"step_0 -- next --> step_1",
		"step_1 -. prev .-> step_0",
		"step_1 -- next --> first_run_end",
		`first_run_end(("end"))`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	tour := domain.Tour{ID: "t", Steps: []domain.Step{{Selector: "#a"}, {Selector: "#b"}, {Selector: "#c"}}}

	out := graph.GenerateMermaid(tour, &graph.Overlay{Skipped: []int{0, 0, 9}, Current: 1})
	assert.Equal(t, 1, strings.Count(out, "class step_0 skipped;"))
	assert.Contains(t, out, "class step_1 current;")
	assert.NotContains(t, out, "step_9")
}

func TestGenerateMermaid_EmptyTour(t *testing.T) {
	out := graph.GenerateMermaid(domain.Tour{ID: "t"}, nil)
	assert.Contains(t, out, "t_start --> t_end")
}
