package domain

import "fmt"

const (
	// WalkMinPerKm is the fixed walking pace (5 km/h).
	WalkMinPerKm = 12.0
	// BusMinPerKm estimates a bus ride when no timetable entry is usable.
	BusMinPerKm = 2.5
	// DockOverheadMinutes covers undocking and docking a shared bike.
	DockOverheadMinutes = 2
	// MinBikeAge is the minimum age allowed to ride a shared bike.
	MinBikeAge = 10
	// AdultBikeMinPerKm is the default riding pace (about 18 km/h).
	AdultBikeMinPerKm = 3.3
)

type bikeSpeedTier struct {
	ageBelow int
	minPerKm float64
}

// Evaluated in order; the first tier whose bound exceeds the age applies.
var bikeSpeedTiers = []bikeSpeedTier{
	{ageBelow: 15, minPerKm: 5.0},
	{ageBelow: 19, minPerKm: 4.0},
}

// RiderProfile describes who is travelling.
type RiderProfile struct {
	AgeYears    int
	BikeOptedIn bool
}

func (r RiderProfile) Validate() error {
	if r.AgeYears < 0 || r.AgeYears > 130 {
		return fmt.Errorf("age %d out of range [0, 130]", r.AgeYears)
	}
	return nil
}

// BikeEligible reports whether the rider is old enough for a shared bike.
func (r RiderProfile) BikeEligible() bool { return r.AgeYears >= MinBikeAge }

// UsesBikes reports whether bike legs may be planned for this rider.
func (r RiderProfile) UsesBikes() bool { return r.BikeOptedIn && r.BikeEligible() }

// BikeSpeedMinPerKm returns the riding pace for the rider's age tier.
func (r RiderProfile) BikeSpeedMinPerKm() float64 {
	return BikeSpeedForAge(r.AgeYears)
}

func BikeSpeedForAge(age int) float64 {
	for _, tier := range bikeSpeedTiers {
		if age < tier.ageBelow {
			return tier.minPerKm
		}
	}
	return AdultBikeMinPerKm
}
