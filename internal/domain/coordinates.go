package domain

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by every distance estimate.
const EarthRadiusKm = 6371.0

// Immutable geographic point (WGS 84 latitude, longitude).
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Return the point as [lon, lat] for GeoJSON and external API compatibility.
func (p GeoPoint) LonLat() []float64 { return []float64{p.Lon, p.Lat} }

func (p GeoPoint) String() string { return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon) }

// Validate rejects NaN, infinite and out of range coordinates.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", p.Lat)
	}
	if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", p.Lon)
	}
	return nil
}

// DistanceKm returns the great-circle (haversine) distance between a and b.
// It is the only metric used for candidate filtering and cost estimates;
// road network distances never enter planning.
func DistanceKm(a, b GeoPoint) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
