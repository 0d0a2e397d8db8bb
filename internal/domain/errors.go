package domain

import "errors"

// Planning failures. Callers match them with errors.Is; planners wrap them
// with the failing operation.
var (
	// Origin or destination missing or unresolvable before planning starts.
	ErrInvalidInput = errors.New("invalid input")
	// The stop catalog is empty.
	ErrNoDestinationStop = errors.New("no destination stop found")
	// Neither the bus nor the full-bike scenario produced a result.
	ErrNoItinerary = errors.New("no itinerary found")
	// Display geometry could not be fetched for one leg. Never fatal.
	ErrGeometryUnavailable = errors.New("geometry unavailable")
)
