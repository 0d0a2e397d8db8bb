package services

import (
	"fmt"
	"itinerary-planner-service/internal/domain"
	"time"
)

// PlanRequest is the validated input of one planning call. Origin and
// Destination are nil when they could not be resolved upstream.
type PlanRequest struct {
	Origin      *domain.GeoPoint
	Destination *domain.GeoPoint
	Rider       domain.RiderProfile
	Now         time.Time
}

// Snapshot is the read-only data a planning call works on.
// Stop order and station order drive tie-breaks.
type Snapshot struct {
	Stops    []domain.TransitStop
	Lines    []domain.Line
	Stations []domain.BikeStation
}

func validatePlanRequest(req PlanRequest) error {
	if req.Origin == nil {
		return fmt.Errorf("%w: origin is unresolved", domain.ErrInvalidInput)
	}
	if req.Destination == nil {
		return fmt.Errorf("%w: destination is unresolved", domain.ErrInvalidInput)
	}
	if err := req.Origin.Validate(); err != nil {
		return fmt.Errorf("%w: origin: %v", domain.ErrInvalidInput, err)
	}
	if err := req.Destination.Validate(); err != nil {
		return fmt.Errorf("%w: destination: %v", domain.ErrInvalidInput, err)
	}
	if err := req.Rider.Validate(); err != nil {
		return fmt.Errorf("%w: rider: %v", domain.ErrInvalidInput, err)
	}
	if req.Now.IsZero() {
		return fmt.Errorf("%w: departure time is missing", domain.ErrInvalidInput)
	}
	return nil
}

// PlanItinerary computes the fastest trip for req over snap.
// It is deterministic and never mutates snap. Failures wrap
// domain.ErrInvalidInput, domain.ErrNoDestinationStop or domain.ErrNoItinerary.
func PlanItinerary(req PlanRequest, snap Snapshot) (*domain.Itinerary, error) {
	if err := validatePlanRequest(req); err != nil {
		return nil, fmt.Errorf("plan itinerary: %w", err)
	}
	if len(snap.Stops) == 0 {
		return nil, fmt.Errorf("plan itinerary: %w", domain.ErrNoDestinationStop)
	}

	origin, destination := *req.Origin, *req.Destination

	bus, busOK := scoreBusScenario(origin, destination, req.Rider, snap.Stops, snap.Stations, domain.ClockOf(req.Now))
	bike, bikeOK := scoreFullBikeScenario(origin, destination, req.Rider, snap.Stations)

	winner, err := compareScenarios(bus.Best.Score, busOK, bike.TotalMinutes(), bikeOK)
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: %w", err)
	}

	if winner == domain.ScenarioFullBike {
		return buildFullBikeItinerary(origin, destination, bike, req.Now), nil
	}
	return buildBusItinerary(origin, destination, bus, newLineIndex(snap.Lines), req.Now), nil
}
