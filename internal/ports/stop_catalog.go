package ports

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// Port: a boundary for reading the fixed-line transit snapshot.
type StopCatalog interface {
	// Return every stop with its per-line departures, in catalog order.
	ListStops(ctx context.Context) ([]domain.TransitStop, error)
	// Return display metadata for the known lines.
	ListLines(ctx context.Context) ([]domain.Line, error)
}
