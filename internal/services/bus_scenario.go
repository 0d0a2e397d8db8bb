package services

import (
	"itinerary-planner-service/internal/domain"
)

// Stops strictly closer than this to the origin are candidate start stops.
const candidateStopRadiusKm = 2.5

// busCandidate is one scored way of boarding a shared line at a start stop.
type busCandidate struct {
	Stop      domain.TransitStop
	Access    access
	ArriveAt  domain.MinuteOfDay
	Line      string
	Departure domain.MinuteOfDay
	Wait      int

	BusEstimate int
	FinalWalk   int
	Score       int
}

// busScenario is the best bus plan together with its destination stop.
type busScenario struct {
	DestStop   domain.TransitStop
	DestStopKm float64
	Best       busCandidate
}

// bestCandidate is the running minimum of a fold over candidates.
// Values are never mutated; keep returns either the receiver or a new record.
type bestCandidate struct {
	c  busCandidate
	ok bool
}

func (b bestCandidate) keep(c busCandidate) bestCandidate {
	if !b.ok || c.Score < b.c.Score {
		return bestCandidate{c: c, ok: true}
	}
	return b
}

// nearestStop returns the stop closest to p; the first one wins ties.
func nearestStop(stops []domain.TransitStop, p domain.GeoPoint) (domain.TransitStop, float64, bool) {
	var (
		best     domain.TransitStop
		bestDist float64
		found    bool
	)
	for _, s := range stops {
		d := domain.DistanceKm(p, s.Coord)
		if !found || d < bestDist {
			best, bestDist, found = s, d, true
		}
	}
	return best, bestDist, found
}

// candidateStops lists the stops within candidateStopRadiusKm of origin, in
// catalog order. When none qualifies the single nearest stop is returned.
func candidateStops(stops []domain.TransitStop, origin domain.GeoPoint) []domain.TransitStop {
	var out []domain.TransitStop
	for _, s := range stops {
		if domain.DistanceKm(origin, s.Coord) < candidateStopRadiusKm {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		return out
	}
	if s, _, ok := nearestStop(stops, origin); ok {
		return []domain.TransitStop{s}
	}
	return nil
}

// sharedLines returns the lines of stop that also serve targets, in the
// stop's own order.
func sharedLines(stop domain.TransitStop, targets map[string]struct{}) []string {
	var out []string
	for _, line := range stop.Lines() {
		if _, ok := targets[line]; ok {
			out = append(out, line)
		}
	}
	return out
}

// soonestBoarding picks, among lines, the one with the smallest wait after
// arrival. Equal waits keep the earlier line.
func soonestBoarding(stop domain.TransitStop, lines []string, arrival domain.MinuteOfDay) (string, domain.MinuteOfDay, bool) {
	var (
		bestLine string
		bestDep  domain.MinuteOfDay
		found    bool
	)
	for _, line := range lines {
		dep, ok := stop.NextDeparture(line, arrival)
		if !ok {
			continue
		}
		if !found || dep-arrival < bestDep-arrival {
			bestLine, bestDep, found = line, dep, true
		}
	}
	return bestLine, bestDep, found
}

// scoreBusScenario evaluates every candidate start stop against the single
// destination stop and returns the cheapest one.
func scoreBusScenario(
	origin, destination domain.GeoPoint,
	rider domain.RiderProfile,
	stops []domain.TransitStop,
	stations []domain.BikeStation,
	now domain.MinuteOfDay,
) (busScenario, bool) {
	destStop, destKm, ok := nearestStop(stops, destination)
	if !ok {
		return busScenario{}, false
	}

	targets := make(map[string]struct{}, len(destStop.Schedules))
	for _, line := range destStop.Lines() {
		targets[line] = struct{}{}
	}
	finalWalk := walkMinutes(destKm)

	best := bestCandidate{}
	for _, stop := range candidateStops(stops, origin) {
		lines := sharedLines(stop, targets)
		if len(lines) == 0 {
			continue
		}

		acc := resolveAccess(origin, stop.Coord, rider, stations, stopAccessRadii)
		arrival := now + domain.MinuteOfDay(acc.Minutes)

		line, dep, ok := soonestBoarding(stop, lines, arrival)
		if !ok {
			continue
		}

		wait := int(dep - arrival)
		estimate := ceilMinutes(domain.DistanceKm(stop.Coord, destStop.Coord), domain.BusMinPerKm)

		best = best.keep(busCandidate{
			Stop:        stop,
			Access:      acc,
			ArriveAt:    arrival,
			Line:        line,
			Departure:   dep,
			Wait:        wait,
			BusEstimate: estimate,
			FinalWalk:   finalWalk,
			Score:       acc.Minutes + wait + estimate + finalWalk,
		})
	}

	if !best.ok {
		return busScenario{}, false
	}
	return busScenario{DestStop: destStop, DestStopKm: destKm, Best: best.c}, true
}
