package services

import (
	"itinerary-planner-service/internal/domain"
	"math"
)

// accessRadii bounds the station search around both ends of a bike hop.
type accessRadii struct {
	pickupKm  float64
	dropoffKm float64
	// Below this direct distance the bike option is not considered.
	minDirectKm float64
}

var (
	// Reaching a transit stop from the origin.
	stopAccessRadii = accessRadii{pickupKm: 2.0, dropoffKm: 1.0, minDirectKm: 0.8}
	// Riding all the way from origin to destination.
	fullBikeRadii = accessRadii{pickupKm: 2.5, dropoffKm: 2.0}
)

// bikeHop is a walk, ride, walk chain through two bike stations.
// RideMinutes includes the dock/undock overhead.
type bikeHop struct {
	Pickup  domain.BikeStation
	Dropoff domain.BikeStation

	WalkToPickupKm    float64
	RideKm            float64
	WalkFromDropoffKm float64

	WalkToPickupMinutes    int
	RideMinutes            int
	WalkFromDropoffMinutes int
}

func (h bikeHop) TotalMinutes() int {
	return h.WalkToPickupMinutes + h.RideMinutes + h.WalkFromDropoffMinutes
}

// access is the chosen way of covering one origin-side stretch.
type access struct {
	Mode     domain.Mode
	Minutes  int
	DirectKm float64
	Bike     *bikeHop
}

func ceilMinutes(km, minPerKm float64) int {
	return int(math.Ceil(km * minPerKm))
}

func walkMinutes(km float64) int { return ceilMinutes(km, domain.WalkMinPerKm) }

// planBikeHop finds the nearest pickup station around p and the nearest
// dropoff station around q and costs the resulting chain. It reports false
// when either end has no eligible station inside its radius.
func planBikeHop(
	p, q domain.GeoPoint,
	rider domain.RiderProfile,
	stations []domain.BikeStation,
	radii accessRadii,
) (bikeHop, bool) {
	pickup, walkIn, ok := domain.NearestStation(stations, p, radii.pickupKm, domain.BikeStation.CanPickup)
	if !ok {
		return bikeHop{}, false
	}
	dropoff, walkOut, ok := domain.NearestStation(stations, q, radii.dropoffKm, domain.BikeStation.CanDropoff)
	if !ok {
		return bikeHop{}, false
	}

	ride := domain.DistanceKm(pickup.Coord, dropoff.Coord)

	return bikeHop{
		Pickup:                 pickup,
		Dropoff:                dropoff,
		WalkToPickupKm:         walkIn,
		RideKm:                 ride,
		WalkFromDropoffKm:      walkOut,
		WalkToPickupMinutes:    walkMinutes(walkIn),
		RideMinutes:            ceilMinutes(ride, rider.BikeSpeedMinPerKm()) + domain.DockOverheadMinutes,
		WalkFromDropoffMinutes: walkMinutes(walkOut),
	}, true
}

// resolveAccess picks the faster of walking and walk+bike from p to q.
// Walk+bike wins only when strictly cheaper.
func resolveAccess(
	p, q domain.GeoPoint,
	rider domain.RiderProfile,
	stations []domain.BikeStation,
	radii accessRadii,
) access {
	direct := domain.DistanceKm(p, q)
	out := access{
		Mode:     domain.ModeWalk,
		Minutes:  walkMinutes(direct),
		DirectKm: direct,
	}

	if !rider.UsesBikes() || len(stations) == 0 || direct <= radii.minDirectKm {
		return out
	}

	hop, ok := planBikeHop(p, q, rider, stations, radii)
	if !ok {
		return out
	}
	if total := hop.TotalMinutes(); total < out.Minutes {
		out.Mode = domain.ModeBike
		out.Minutes = total
		out.Bike = &hop
	}
	return out
}
