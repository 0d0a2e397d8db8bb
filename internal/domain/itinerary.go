package domain

import "time"

// Mode is the means of travel of one leg.
type Mode string

const (
	ModeWalk Mode = "walk"
	ModeBike Mode = "bike"
	ModeBus  Mode = "bus"
)

// Scenario identifies which complete trip plan won the comparison.
type Scenario string

const (
	ScenarioBus      Scenario = "bus"
	ScenarioFullBike Scenario = "full_bike"
)

// Represents one timed segment of an itinerary.
// WaitMinutes is only set on bus legs and is not part of DurationMinutes.
type Leg struct {
	Mode            Mode
	Label           string
	DurationMinutes int
	DistanceKm      float64
	From            GeoPoint
	To              GeoPoint

	Line            *Line
	WaitMinutes     *int
	WaitLabel       string
	DepartureClock  *MinuteOfDay
	ScheduleDerived bool

	BikesAvailableAtPickup *int
}

// ElapsedMinutes is the leg's contribution to the itinerary total.
func (l Leg) ElapsedMinutes() int {
	if l.WaitMinutes != nil {
		return l.DurationMinutes + *l.WaitMinutes
	}
	return l.DurationMinutes
}

// Represents the planned trip returned to callers.
// It is immutable planning output and contains no side effects.
type Itinerary struct {
	Scenario             Scenario
	TotalDurationMinutes int
	DepartAt             time.Time
	ArriveAt             time.Time
	ArrivalClock         MinuteOfDay
	Legs                 []Leg
}

// LegGeometry is the display polyline of one leg.
type LegGeometry struct {
	Mode     Mode
	Points   []GeoPoint
	Color    string
	Fallback bool
}

// GeometryBundle carries per-leg polylines for map rendering.
// Legs are index-aligned with Itinerary.Legs.
type GeometryBundle struct {
	Legs      []LegGeometry
	LineColor string
	Fallbacks int
}
