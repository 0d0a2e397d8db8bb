package domain

// Represents one shared-bike station as seen in a GBFS snapshot.
type BikeStation struct {
	ID             string
	Name           string
	Coord          GeoPoint
	BikesAvailable int
	DocksAvailable int
}

// CanPickup reports whether a bike can be taken from the station.
func (b BikeStation) CanPickup() bool { return b.BikesAvailable > 0 }

// CanDropoff reports whether a bike can be returned to the station.
func (b BikeStation) CanDropoff() bool { return b.DocksAvailable > 0 }

// NearestStation returns the eligible station closest to p and strictly
// within radiusKm. Stations at equal distance resolve to the first one in
// snapshot order.
func NearestStation(stations []BikeStation, p GeoPoint, radiusKm float64, eligible func(BikeStation) bool) (BikeStation, float64, bool) {
	var (
		best     BikeStation
		bestDist float64
		found    bool
	)
	for _, st := range stations {
		if !eligible(st) {
			continue
		}
		d := DistanceKm(p, st.Coord)
		if d >= radiusKm {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = st, d, true
		}
	}
	return best, bestDist, found
}
