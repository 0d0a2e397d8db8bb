package ports

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// Port: a boundary for reading the latest shared-bike availability snapshot.
type BikeStationSource interface {
	ListStations(ctx context.Context) ([]domain.BikeStation, error)
}

// Optional extension used by the GBFS poller to replace the stored snapshot.
type BikeStationStore interface {
	BikeStationSource
	// Atomically replace the whole snapshot.
	ReplaceStations(ctx context.Context, stations []domain.BikeStation) error
}
