package services

import (
	"fmt"
	"itinerary-planner-service/internal/domain"
	"math"
	"testing"
	"time"
)

// Kilometres per degree of latitude under the haversine model. Points placed
// along one meridian are exactly that many km apart.
const kmPerDegLat = domain.EarthRadiusKm * math.Pi / 180

var origin = domain.GeoPoint{Lat: 48.39, Lon: -4.49}

func north(p domain.GeoPoint, km float64) domain.GeoPoint {
	return domain.GeoPoint{Lat: p.Lat + km/kmPerDegLat, Lon: p.Lon}
}

func mustClock(s string) domain.MinuteOfDay {
	m, err := domain.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return m
}

func schedule(line string, times ...string) domain.LineSchedule {
	deps := make([]domain.MinuteOfDay, 0, len(times))
	for _, s := range times {
		deps = append(deps, mustClock(s))
	}
	return domain.LineSchedule{Line: line, Departures: deps}
}

func stop(id string, p domain.GeoPoint, schedules ...domain.LineSchedule) domain.TransitStop {
	return domain.TransitStop{ID: id, Name: "Stop " + id, Coord: p, Schedules: schedules}
}

func station(id string, p domain.GeoPoint, bikes, docks int) domain.BikeStation {
	return domain.BikeStation{ID: id, Name: "Station " + id, Coord: p, BikesAvailable: bikes, DocksAvailable: docks}
}

func at(clock string) time.Time {
	m := mustClock(clock)
	return time.Date(2026, 3, 2, int(m)/60, int(m)%60, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func modes(itin *domain.Itinerary) []domain.Mode {
	out := make([]domain.Mode, 0, len(itin.Legs))
	for _, l := range itin.Legs {
		out = append(out, l.Mode)
	}
	return out
}

// assertLegsAddUp checks that leg durations plus waits equal the total and
// that arrival follows from it.
func assertLegsAddUp(t *testing.T, itin *domain.Itinerary) {
	t.Helper()

	sum := 0
	for i, l := range itin.Legs {
		if l.DurationMinutes < 0 {
			t.Fatalf("leg %d has negative duration %d", i, l.DurationMinutes)
		}
		sum += l.ElapsedMinutes()
	}
	if sum != itin.TotalDurationMinutes {
		t.Fatalf("legs add up to %d, total is %d", sum, itin.TotalDurationMinutes)
	}

	want := itin.DepartAt.Add(time.Duration(itin.TotalDurationMinutes) * time.Minute)
	if !itin.ArriveAt.Equal(want) {
		t.Fatalf("arrive at %s, want %s", itin.ArriveAt, want)
	}
	if itin.ArrivalClock != domain.ClockOf(want) {
		t.Fatalf("arrival clock %s, want %s", itin.ArrivalClock, domain.ClockOf(want))
	}
}

func describe(itin *domain.Itinerary) string {
	s := fmt.Sprintf("%s total=%d:", itin.Scenario, itin.TotalDurationMinutes)
	for _, l := range itin.Legs {
		s += fmt.Sprintf(" %s/%d", l.Mode, l.ElapsedMinutes())
	}
	return s
}
