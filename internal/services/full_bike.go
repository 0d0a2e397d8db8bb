package services

import "itinerary-planner-service/internal/domain"

// scoreFullBikeScenario plans an origin to destination trip on a shared
// bike. It reports false when the rider may not ride, the snapshot is empty
// or either end lacks an eligible station.
func scoreFullBikeScenario(
	origin, destination domain.GeoPoint,
	rider domain.RiderProfile,
	stations []domain.BikeStation,
) (bikeHop, bool) {
	if !rider.UsesBikes() || len(stations) == 0 {
		return bikeHop{}, false
	}
	return planBikeHop(origin, destination, rider, stations, fullBikeRadii)
}
