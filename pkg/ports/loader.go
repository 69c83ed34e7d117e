package ports

import "github.com/aretw0/waypoint/pkg/domain"

// TourLoader defines how tour definitions are retrieved.
// This allows the source (Loam repository, memory, HTTP) to be decoupled.
type TourLoader interface {
	// GetTour returns the tour with the given ID, or domain.ErrTourNotFound.
	GetTour(id string) (domain.Tour, error)

	// ListTours returns the IDs of all available tours.
	ListTours() ([]string, error)
}
