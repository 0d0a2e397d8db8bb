package ports

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// Contract for retrieving a display polyline between two points.
// Used for map rendering only; planning never depends on it.
type GeometryProvider interface {
	// Return the ordered path from a to b for the given mode.
	GetGeometry(ctx context.Context, a, b domain.GeoPoint, mode domain.Mode) ([]domain.GeoPoint, error)
}

// Cache for fetched polylines keyed by mode and endpoints.
type GeometryCache interface {
	Get(ctx context.Context, key string) ([]domain.GeoPoint, bool, error)
	Put(ctx context.Context, key string, points []domain.GeoPoint) error
}
