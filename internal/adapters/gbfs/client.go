package gbfs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"net/http"
	"strings"
	"time"
)

const maxFeedBytes = 8 << 20

type stationInformation struct {
	Data struct {
		Stations []struct {
			StationID string  `json:"station_id"`
			Name      string  `json:"name"`
			Lat       float64 `json:"lat"`
			Lon       float64 `json:"lon"`
		} `json:"stations"`
	} `json:"data"`
}

type stationStatus struct {
	Data struct {
		Stations []struct {
			StationID         string `json:"station_id"`
			NumBikesAvailable int    `json:"num_bikes_available"`
			NumDocksAvailable int    `json:"num_docks_available"`
		} `json:"stations"`
	} `json:"data"`
}

// Client reads the station_information and station_status feeds of a GBFS
// system published under one base URL.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(baseURL string, hc *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("gbfs: base URL is empty")
	}
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{http: hc, baseURL: baseURL}, nil
}

func (c *Client) getJSON(ctx context.Context, feed string, v any) error {
	url := c.baseURL + "/" + feed + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", feed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status: %d", feed, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedBytes)).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", feed, err)
	}
	return nil
}

// FetchStations returns the stations of station_information in feed order
// with availability merged from station_status by station id. A station
// missing from the status feed has no bikes and no docks.
func (c *Client) FetchStations(ctx context.Context) (_ []domain.BikeStation, err error) {
	defer obs.Time(ctx, "gbfs.FetchStations")(&err)

	var info stationInformation
	if err := c.getJSON(ctx, "station_information", &info); err != nil {
		return nil, fmt.Errorf("fetch stations: %w", err)
	}
	var status stationStatus
	if err := c.getJSON(ctx, "station_status", &status); err != nil {
		return nil, fmt.Errorf("fetch stations: %w", err)
	}

	type avail struct{ bikes, docks int }
	byID := make(map[string]avail, len(status.Data.Stations))
	for _, s := range status.Data.Stations {
		byID[s.StationID] = avail{bikes: max(s.NumBikesAvailable, 0), docks: max(s.NumDocksAvailable, 0)}
	}

	out := make([]domain.BikeStation, 0, len(info.Data.Stations))
	for _, s := range info.Data.Stations {
		st := domain.BikeStation{
			ID:    s.StationID,
			Name:  s.Name,
			Coord: domain.GeoPoint{Lat: s.Lat, Lon: s.Lon},
		}
		if err := st.Coord.Validate(); err != nil || st.ID == "" {
			continue
		}
		if a, ok := byID[s.StationID]; ok {
			st.BikesAvailable, st.DocksAvailable = a.bikes, a.docks
		}
		out = append(out, st)
	}

	return out, nil
}
