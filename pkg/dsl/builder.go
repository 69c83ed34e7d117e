package dsl

import (
	"fmt"
	"sort"

	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
)

// Builder collects tour definitions.
type Builder struct {
	tours map[string]*TourBuilder
}

// New creates a new tour builder.
func New() *Builder {
	return &Builder{
		tours: make(map[string]*TourBuilder),
	}
}

// Add starts a tour definition. If the tour already exists, it returns the
// existing builder so steps can be appended.
func (b *Builder) Add(id string) *TourBuilder {
	if tb, ok := b.tours[id]; ok {
		return tb
	}
	tb := &TourBuilder{
		tour: domain.Tour{
			ID:    id,
			Theme: domain.ThemeDark,
		},
	}
	b.tours[id] = tb
	return tb
}

// Tours returns the built tours sorted by ID.
func (b *Builder) Tours() []domain.Tour {
	ids := make([]string, 0, len(b.tours))
	for id := range b.tours {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tours := make([]domain.Tour, 0, len(ids))
	for _, id := range ids {
		tours = append(tours, b.tours[id].Tour())
	}
	return tours
}

// Build compiles the tours into an in-memory TourLoader.
func (b *Builder) Build() (*memory.Loader, error) {
	loader, err := memory.NewLoader(b.Tours()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}

// TourBuilder provides a fluent API for configuring one tour.
type TourBuilder struct {
	tour domain.Tour
}

// Title sets the display title.
func (t *TourBuilder) Title(title string) *TourBuilder {
	t.tour.Title = title
	return t
}

// Describe sets the long description.
func (t *TourBuilder) Describe(text string) *TourBuilder {
	t.tour.Description = text
	return t
}

// Light switches the tour to the light theme.
func (t *TourBuilder) Light() *TourBuilder {
	t.tour.Theme = domain.ThemeLight
	return t
}

// Theme sets the theme by name; unknown names fall back to dark.
func (t *TourBuilder) Theme(name string) *TourBuilder {
	t.tour.Theme = domain.ParseTheme(name)
	return t
}

// AutoScroll scrolls each target into view before its callout is shown.
func (t *TourBuilder) AutoScroll() *TourBuilder {
	t.tour.AutoScroll = true
	return t
}

// Step appends a step anchored to selector.
func (t *TourBuilder) Step(selector, text string) *TourBuilder {
	t.tour.Steps = append(t.tour.Steps, domain.Step{Selector: selector, Text: text})
	return t
}

// Tour returns a copy of the definition.
func (t *TourBuilder) Tour() domain.Tour {
	out := t.tour
	out.Steps = domain.CopySteps(t.tour.Steps)
	return out
}
