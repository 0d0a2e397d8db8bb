package handlers

import (
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/ports"
	"log"
	"net/http"
)

type CatalogHandler struct {
	Catalog ports.StopCatalog
	Bikes   ports.BikeStationSource
}

// ListStops returns the stop catalog with its timetable and line colors.
func (h *CatalogHandler) ListStops(w http.ResponseWriter, r *http.Request) {
	stops, err := h.Catalog.ListStops(r.Context())
	if err != nil {
		log.Printf("list stops failed: err=%v", err)
		writeError(w, r, http.StatusInternalServerError, "failed to list stops")
		return
	}
	lines, err := h.Catalog.ListLines(r.Context())
	if err != nil {
		log.Printf("list lines failed: err=%v", err)
		writeError(w, r, http.StatusInternalServerError, "failed to list lines")
		return
	}

	res := dto.ListStopsResponse{
		Stops:  make([]dto.StopResponse, 0, len(stops)),
		Routes: make([]dto.LineResponse, 0, len(lines)),
	}
	for _, s := range stops {
		res.Stops = append(res.Stops, dto.NewStopResponse(s))
	}
	for _, l := range lines {
		res.Routes = append(res.Routes, dto.LineResponse{ShortName: l.ShortName, Color: l.Color})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ListBikeStations returns the latest bike availability snapshot.
func (h *CatalogHandler) ListBikeStations(w http.ResponseWriter, r *http.Request) {
	if h.Bikes == nil {
		writeJSON(w, r, http.StatusOK, dto.ListBikeStationsResponse{Stations: []dto.BikeStationResponse{}})
		return
	}

	stations, err := h.Bikes.ListStations(r.Context())
	if err != nil {
		log.Printf("list bike stations failed: err=%v", err)
		writeError(w, r, http.StatusInternalServerError, "failed to list bike stations")
		return
	}

	res := dto.ListBikeStationsResponse{Stations: make([]dto.BikeStationResponse, 0, len(stations))}
	for _, s := range stations {
		res.Stations = append(res.Stations, dto.NewBikeStationResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}
