package services

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"log"
	"strings"
	"time"
)

// PlanTripRequest accepts either coordinates or a free-form address for each
// end of the trip. Coordinates take precedence.
type PlanTripRequest struct {
	Origin             *domain.GeoPoint
	OriginAddress      string
	Destination        *domain.GeoPoint
	DestinationAddress string
	Rider              domain.RiderProfile
	DepartAt           time.Time
}

// PlanTrip loads the current snapshots and plans one itinerary.
// The bike snapshot is only read for riders who may use bikes; a failing
// bike source degrades to planning without bikes.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	catalog ports.StopCatalog,
	bikes ports.BikeStationSource,
	geocoder ports.Geocoder,
) (_ *domain.Itinerary, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	origin, err := resolvePoint(ctx, geocoder, "origin", req.Origin, req.OriginAddress)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	destination, err := resolvePoint(ctx, geocoder, "destination", req.Destination, req.DestinationAddress)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	stops, err := catalog.ListStops(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan trip: list stops: %w", err)
	}
	lines, err := catalog.ListLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan trip: list lines: %w", err)
	}

	var stations []domain.BikeStation
	if req.Rider.UsesBikes() && bikes != nil {
		stations, err = bikes.ListStations(ctx)
		if err != nil {
			log.Printf("plan trip: list bike stations failed, planning without bikes: %v", err)
			stations = nil
		}
	}

	depart := req.DepartAt
	if depart.IsZero() {
		depart = time.Now()
	}

	return PlanItinerary(
		PlanRequest{
			Origin:      origin,
			Destination: destination,
			Rider:       req.Rider,
			Now:         depart,
		},
		Snapshot{Stops: stops, Lines: lines, Stations: stations},
	)
}

// resolvePoint returns p when set, otherwise geocodes address. A point that
// cannot be resolved is an input error, not an upstream one.
func resolvePoint(
	ctx context.Context,
	geocoder ports.Geocoder,
	which string,
	p *domain.GeoPoint,
	address string,
) (*domain.GeoPoint, error) {
	if p != nil {
		return p, nil
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}
	if geocoder == nil {
		return nil, fmt.Errorf("%w: %s address given but geocoding is disabled", domain.ErrInvalidInput, which)
	}

	pt, err := geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%w: geocode %s %q: %v", domain.ErrInvalidInput, which, address, err)
	}
	return &pt, nil
}
