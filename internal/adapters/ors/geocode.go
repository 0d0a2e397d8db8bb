package ors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"log"
	"net/url"
	"strings"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// normalize ensures consistent queries by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves address with the ORS search API (/geocode/search),
// consulting the persistent cache first when one is configured.
func (o *Client) Geocode(ctx context.Context, address string) (_ domain.GeoPoint, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.GeoPoint{}, errors.New("geocode: address must be non-empty")
	}

	if o.geocodeCache != nil {
		p, ok, err := o.geocodeCache.Get(ctx, norm)
		if err != nil {
			log.Printf("geocode cache lookup failed: address=%q err=%v", norm, err)
		}
		if ok {
			return p, nil
		}
	}

	q := url.Values{}
	q.Set("text", norm)
	q.Set("size", "1")
	if o.country != "" {
		q.Set("boundary.country", o.country)
	}

	resp, err := o.get(ctx, "/geocode/search", q)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return domain.GeoPoint{}, fmt.Errorf("no geocode results for %q", norm)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.GeoPoint{}, fmt.Errorf("invalid coordinate format for %q", norm)
	}

	p := domain.GeoPoint{Lon: coords[0], Lat: coords[1]}
	if err := p.Validate(); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if o.geocodeCache != nil {
		if err := o.geocodeCache.Put(ctx, norm, p); err != nil {
			log.Printf("geocode cache store failed: address=%q err=%v", norm, err)
		}
	}

	return p, nil
}
