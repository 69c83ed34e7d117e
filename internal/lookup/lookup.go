// Package lookup resolves tour IDs and suggests close matches for typos.
package lookup

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// NotFoundError reports a missing tour along with similar known IDs.
type NotFoundError struct {
	ID          string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%v: %q", domain.ErrTourNotFound, e.ID)
	}
	return fmt.Sprintf("%v: %q (did you mean %s?)", domain.ErrTourNotFound, e.ID, strings.Join(e.Suggestions, ", "))
}

// Unwrap lets errors.Is match domain.ErrTourNotFound.
func (e *NotFoundError) Unwrap() error {
	return domain.ErrTourNotFound
}

// Suggest returns the candidates closest to id, nearest first. Only
// candidates within a third of the id's length (at least 2 edits) qualify.
func Suggest(id string, candidates []string) []string {
	limit := len(id) / 3
	if limit < 2 {
		limit = 2
	}

	type scored struct {
		id   string
		dist int
	}
	var hits []scored
	lower := strings.ToLower(id)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d <= limit {
			hits = append(hits, scored{c, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].id < hits[j].id
	})

	out := make([]string, 0, maxSuggestions)
	for i := 0; i < len(hits) && i < maxSuggestions; i++ {
		out = append(out, hits[i].id)
	}
	return out
}

// Tour fetches id from loader. A missing tour yields a *NotFoundError
// listing close matches; other load errors are returned as is.
func Tour(loader ports.TourLoader, id string) (domain.Tour, error) {
	tour, err := loader.GetTour(id)
	if err == nil || !errors.Is(err, domain.ErrTourNotFound) {
		return tour, err
	}

	nf := &NotFoundError{ID: id}
	if ids, lerr := loader.ListTours(); lerr == nil {
		nf.Suggestions = Suggest(id, ids)
	}
	return domain.Tour{}, nf
}
