package geometry

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// StraightLineProvider draws every leg as the direct segment between its
// endpoints. Used when no routing backend is configured.
type StraightLineProvider struct{}

func (StraightLineProvider) GetGeometry(ctx context.Context, a, b domain.GeoPoint, mode domain.Mode) ([]domain.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.GeoPoint{a, b}, nil
}
