package domain

import (
	"math"
	"testing"
)

// Kilometres per degree of latitude on the sphere used by DistanceKm.
const kmPerDegLat = EarthRadiusKm * math.Pi / 180

func TestDistanceKmAlongMeridian(t *testing.T) {
	a := GeoPoint{Lat: 48.45, Lon: -4.25}
	b := GeoPoint{Lat: 48.45 + 2.5/kmPerDegLat, Lon: -4.25}

	got := DistanceKm(a, b)
	if math.Abs(got-2.5) > 1e-9 {
		t.Fatalf("distance = %.12f, want 2.5", got)
	}
	if back := DistanceKm(b, a); math.Abs(back-got) > 1e-12 {
		t.Fatalf("distance not symmetric: %v vs %v", got, back)
	}
}

func TestDistanceKmSamePoint(t *testing.T) {
	p := GeoPoint{Lat: 48.4526, Lon: -4.2555}
	if d := DistanceKm(p, p); d != 0 {
		t.Fatalf("distance = %v, want 0", d)
	}
}

func TestDistanceKmKnownCities(t *testing.T) {
	paris := GeoPoint{Lat: 48.8566, Lon: 2.3522}
	brest := GeoPoint{Lat: 48.3904, Lon: -4.4861}

	got := DistanceKm(paris, brest)
	if got < 500 || got > 510 {
		t.Fatalf("paris-brest = %.1f km, want about 505 km", got)
	}
}

func TestGeoPointValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       GeoPoint
		wantErr bool
	}{
		{"valid", GeoPoint{Lat: 48.4, Lon: -4.2}, false},
		{"lat too high", GeoPoint{Lat: 91, Lon: 0}, true},
		{"lon too low", GeoPoint{Lat: 0, Lon: -181}, true},
		{"nan", GeoPoint{Lat: math.NaN(), Lon: 0}, true},
		{"inf", GeoPoint{Lat: 0, Lon: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
