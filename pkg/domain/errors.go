package domain

import "errors"

// ErrTourNotFound is returned when a tour ID cannot be found by a loader.
var ErrTourNotFound = errors.New("tour not found")

// ErrInvalidTour is returned when a tour definition cannot be used.
var ErrInvalidTour = errors.New("invalid tour")

// ErrElementNotFound is returned by adapters that must resolve an element by handle.
var ErrElementNotFound = errors.New("element not found")

// ErrCalloutDestroyed is returned when operating on a callout that was removed.
var ErrCalloutDestroyed = errors.New("callout destroyed")
