package dto

import "itinerary-planner-service/internal/domain"

type LineDeparturesResponse struct {
	Line       string   `json:"line"`
	Departures []string `json:"departures"`
}

type StopResponse struct {
	ID    string                   `json:"id"`
	Name  string                   `json:"name"`
	Lat   float64                  `json:"lat"`
	Lon   float64                  `json:"lon"`
	Lines []LineDeparturesResponse `json:"lines"`
}

type ListStopsResponse struct {
	Stops  []StopResponse `json:"stops"`
	Routes []LineResponse `json:"routes"`
}

type BikeStationResponse struct {
	ID             string  `json:"station_id"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	BikesAvailable int     `json:"num_bikes_available"`
	DocksAvailable int     `json:"num_docks_available"`
}

type ListBikeStationsResponse struct {
	Stations []BikeStationResponse `json:"stations"`
}

func NewStopResponse(s domain.TransitStop) StopResponse {
	lines := make([]LineDeparturesResponse, 0, len(s.Schedules))
	for _, ls := range s.Schedules {
		deps := make([]string, 0, len(ls.Departures))
		for _, d := range ls.Departures {
			deps = append(deps, d.String())
		}
		lines = append(lines, LineDeparturesResponse{Line: ls.Line, Departures: deps})
	}
	return StopResponse{ID: s.ID, Name: s.Name, Lat: s.Coord.Lat, Lon: s.Coord.Lon, Lines: lines}
}

func NewBikeStationResponse(b domain.BikeStation) BikeStationResponse {
	return BikeStationResponse{
		ID:             b.ID,
		Name:           b.Name,
		Lat:            b.Coord.Lat,
		Lon:            b.Coord.Lon,
		BikesAvailable: b.BikesAvailable,
		DocksAvailable: b.DocksAvailable,
	}
}
