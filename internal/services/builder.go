package services

import (
	"fmt"
	"itinerary-planner-service/internal/domain"
	"time"
)

// A walked access longer than this paired with a short wait marks the stop
// as the optimal one in the label.
const (
	optimalStopWalkMinutes = 10
	optimalStopWaitMinutes = 10
)

// lineIndex resolves line display metadata by short name.
type lineIndex map[string]domain.Line

func newLineIndex(lines []domain.Line) lineIndex {
	idx := make(lineIndex, len(lines))
	for _, l := range lines {
		if _, dup := idx[l.ShortName]; dup {
			continue
		}
		idx[l.ShortName] = l
	}
	return idx
}

// Lookup returns the catalog entry of name, or a default colored entry.
func (idx lineIndex) Lookup(name string) domain.Line {
	if l, ok := idx[name]; ok {
		if l.Color == "" {
			l.Color = domain.DefaultLineColor
		}
		return l
	}
	return domain.Line{ShortName: name, Color: domain.DefaultLineColor}
}

// WaitLabel renders a bus wait for display.
func WaitLabel(wait int) string {
	if wait <= 0 {
		return "Départ immédiat"
	}
	return fmt.Sprintf("%d min d'attente", wait)
}

func bikeHopLegs(hop bikeHop, from, to domain.GeoPoint, lastLabel string) []domain.Leg {
	bikes := hop.Pickup.BikesAvailable
	return []domain.Leg{
		{
			Mode:            domain.ModeWalk,
			Label:           fmt.Sprintf("Aller à la station %q", hop.Pickup.Name),
			DurationMinutes: hop.WalkToPickupMinutes,
			DistanceKm:      hop.WalkToPickupKm,
			From:            from,
			To:              hop.Pickup.Coord,
		},
		{
			Mode:                   domain.ModeBike,
			Label:                  fmt.Sprintf("Vélo vers %q", hop.Dropoff.Name),
			DurationMinutes:        hop.RideMinutes,
			DistanceKm:             hop.RideKm,
			From:                   hop.Pickup.Coord,
			To:                     hop.Dropoff.Coord,
			BikesAvailableAtPickup: &bikes,
		},
		{
			Mode:            domain.ModeWalk,
			Label:           lastLabel,
			DurationMinutes: hop.WalkFromDropoffMinutes,
			DistanceKm:      hop.WalkFromDropoffKm,
			From:            hop.Dropoff.Coord,
			To:              to,
		},
	}
}

// busRideMinutes prefers the timetable: the first departure of line at the
// destination stop at or after the boarding time. Without one it falls back
// to the distance estimate.
func busRideMinutes(scen busScenario) (int, bool) {
	c := scen.Best
	if at, ok := scen.DestStop.NextDeparture(c.Line, c.Departure); ok {
		return int(at - c.Departure), true
	}
	return c.BusEstimate, false
}

func buildBusItinerary(
	origin, destination domain.GeoPoint,
	scen busScenario,
	lines lineIndex,
	now time.Time,
) *domain.Itinerary {
	c := scen.Best
	legs := make([]domain.Leg, 0, 5)

	stopLabel := fmt.Sprintf("Marcher jusqu'à l'arrêt %q", c.Stop.Name)
	if c.Access.Bike != nil {
		legs = append(legs, bikeHopLegs(*c.Access.Bike, origin, c.Stop.Coord,
			fmt.Sprintf("Déposer le vélo et aller à l'arrêt %q", c.Stop.Name))...)
	} else {
		if c.Access.Minutes > optimalStopWalkMinutes && c.Wait < optimalStopWaitMinutes {
			stopLabel += " (Arrêt optimal)"
		}
		legs = append(legs, domain.Leg{
			Mode:            domain.ModeWalk,
			Label:           stopLabel,
			DurationMinutes: c.Access.Minutes,
			DistanceKm:      c.Access.DirectKm,
			From:            origin,
			To:              c.Stop.Coord,
		})
	}

	ride, derived := busRideMinutes(scen)
	line := lines.Lookup(c.Line)
	wait := c.Wait
	dep := c.Departure
	legs = append(legs, domain.Leg{
		Mode:            domain.ModeBus,
		Label:           fmt.Sprintf("Prendre le bus de %s vers %q", dep, scen.DestStop.Name),
		DurationMinutes: ride,
		DistanceKm:      domain.DistanceKm(c.Stop.Coord, scen.DestStop.Coord),
		From:            c.Stop.Coord,
		To:              scen.DestStop.Coord,
		Line:            &line,
		WaitMinutes:     &wait,
		WaitLabel:       WaitLabel(wait),
		DepartureClock:  &dep,
		ScheduleDerived: derived,
	})

	legs = append(legs, domain.Leg{
		Mode:            domain.ModeWalk,
		Label:           "Marcher jusqu'à votre destination",
		DurationMinutes: c.FinalWalk,
		DistanceKm:      scen.DestStopKm,
		From:            scen.DestStop.Coord,
		To:              destination,
	})

	total := c.Access.Minutes + c.Wait + ride + c.FinalWalk
	return newItinerary(domain.ScenarioBus, total, now, legs)
}

func buildFullBikeItinerary(origin, destination domain.GeoPoint, hop bikeHop, now time.Time) *domain.Itinerary {
	legs := bikeHopLegs(hop, origin, destination, "Déposer le vélo et marcher vers la destination")
	return newItinerary(domain.ScenarioFullBike, hop.TotalMinutes(), now, legs)
}

func newItinerary(scenario domain.Scenario, total int, now time.Time, legs []domain.Leg) *domain.Itinerary {
	arrive := now.Add(time.Duration(total) * time.Minute)
	return &domain.Itinerary{
		Scenario:             scenario,
		TotalDurationMinutes: total,
		DepartAt:             now,
		ArriveAt:             arrive,
		ArrivalClock:         domain.ClockOf(arrive),
		Legs:                 legs,
	}
}
