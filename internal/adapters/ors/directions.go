package ors

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"net/url"
)

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

func lonLatParam(p domain.GeoPoint) string {
	return fmt.Sprintf("%.6f,%.6f", p.Lon, p.Lat)
}

// GetGeometry fetches the routed polyline from a to b using the ORS
// directions API (/v2/directions/{profile}, GeoJSON response).
func (o *Client) GetGeometry(
	ctx context.Context,
	a, b domain.GeoPoint,
	mode domain.Mode,
) (_ []domain.GeoPoint, err error) {
	defer obs.Time(ctx, "ors.GetGeometry")(&err)

	q := url.Values{}
	q.Set("start", lonLatParam(a))
	q.Set("end", lonLatParam(b))

	resp, err := o.get(ctx, "/v2/directions/"+profileFor(mode), q)
	if err != nil {
		return nil, fmt.Errorf("get directions %s: %w", mode, err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return nil, fmt.Errorf("get directions %s: no route returned", mode)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	points := make([]domain.GeoPoint, 0, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("get directions %s: invalid coordinate at index %d", mode, i)
		}
		points = append(points, domain.GeoPoint{Lon: c[0], Lat: c[1]})
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("get directions %s: route has %d points", mode, len(points))
	}

	return points, nil
}
