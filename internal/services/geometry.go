package services

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	walkPolylineColor = "#94a3b8"
	bikePolylineColor = "#f97316"

	DefaultGeometryTimeout = 4 * time.Second
)

// EnrichGeometry fetches a display polyline for every leg of itin in
// parallel. A leg whose fetch fails or times out gets the straight segment
// [From, To] instead; one leg failing never affects the others.
func EnrichGeometry(
	ctx context.Context,
	itin *domain.Itinerary,
	provider ports.GeometryProvider,
	perLegTimeout time.Duration,
) domain.GeometryBundle {
	if perLegTimeout <= 0 {
		perLegTimeout = DefaultGeometryTimeout
	}

	bundle := domain.GeometryBundle{
		Legs:      make([]domain.LegGeometry, len(itin.Legs)),
		LineColor: bikePolylineColor,
	}

	// Tasks never return an error so a failing leg cannot cancel siblings.
	var g errgroup.Group
	for i, leg := range itin.Legs {
		i, leg := i, leg
		g.Go(func() error {
			bundle.Legs[i] = fetchLegGeometry(ctx, provider, leg, perLegTimeout)
			return nil
		})
	}
	_ = g.Wait()

	for i, leg := range itin.Legs {
		if bundle.Legs[i].Fallback {
			bundle.Fallbacks++
		}
		if leg.Mode == domain.ModeBus && leg.Line != nil {
			bundle.LineColor = leg.Line.Color
		}
	}
	return bundle
}

func fetchLegGeometry(
	ctx context.Context,
	provider ports.GeometryProvider,
	leg domain.Leg,
	timeout time.Duration,
) domain.LegGeometry {
	out := domain.LegGeometry{Mode: leg.Mode, Color: legColor(leg)}

	var (
		points []domain.GeoPoint
		err    error
	)
	if provider == nil {
		err = errors.New("no geometry provider configured")
	} else {
		legCtx, cancel := context.WithTimeout(ctx, timeout)
		points, err = provider.GetGeometry(legCtx, leg.From, leg.To, leg.Mode)
		cancel()
		if err == nil && len(points) < 2 {
			err = fmt.Errorf("got %d points", len(points))
		}
	}

	if err != nil {
		err = fmt.Errorf("%w: mode=%s: %v", domain.ErrGeometryUnavailable, leg.Mode, err)
		log.Printf("geometry fallback mode=%s from=%s to=%s err=%v", leg.Mode, leg.From, leg.To, err)
		out.Points = []domain.GeoPoint{leg.From, leg.To}
		out.Fallback = true
		return out
	}

	out.Points = points
	return out
}

func legColor(leg domain.Leg) string {
	switch leg.Mode {
	case domain.ModeBus:
		if leg.Line != nil && leg.Line.Color != "" {
			return leg.Line.Color
		}
		return domain.DefaultLineColor
	case domain.ModeBike:
		return bikePolylineColor
	default:
		return walkPolylineColor
	}
}
