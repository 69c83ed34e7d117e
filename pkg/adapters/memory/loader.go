package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Loader implements ports.TourLoader using an in-memory map.
type Loader struct {
	tours map[string]domain.Tour
}

// NewLoader creates a Loader from tour definitions.
func NewLoader(tours ...domain.Tour) (*Loader, error) {
	l := &Loader{tours: make(map[string]domain.Tour, len(tours))}
	for _, t := range tours {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: tour missing ID", domain.ErrInvalidTour)
		}
		if _, dup := l.tours[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate tour ID %q", domain.ErrInvalidTour, t.ID)
		}
		t.Steps = domain.CopySteps(t.Steps)
		l.tours[t.ID] = t
	}
	return l, nil
}

// GetTour retrieves a tour by ID.
func (l *Loader) GetTour(id string) (domain.Tour, error) {
	t, ok := l.tours[id]
	if !ok {
		return domain.Tour{}, fmt.Errorf("%w: %s", domain.ErrTourNotFound, id)
	}
	t.Steps = domain.CopySteps(t.Steps)
	return t, nil
}

// ListTours returns all available tour IDs.
func (l *Loader) ListTours() ([]string, error) {
	keys := make([]string, 0, len(l.tours))
	for k := range l.tours {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
