package api

import (
	"itinerary-planner-service/internal/api/handlers"
	"itinerary-planner-service/internal/platform/metrics"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Deps are the adapters the HTTP layer needs. Geocoder, Publisher, Metrics
// and Pinger may be nil.
type Deps struct {
	Catalog         ports.StopCatalog
	Bikes           ports.BikeStationSource
	Geocoder        ports.Geocoder
	Geometry        ports.GeometryProvider
	GeometryTimeout time.Duration
	Publisher       ports.PlanEventPublisher
	Sessions        *services.DisplaySessions
	Metrics         *metrics.Collector
	Pinger          handlers.Pinger
	Location        *time.Location
	CORSOrigins     []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	sessions := d.Sessions
	if sessions == nil {
		sessions = services.NewDisplaySessions(0, 0)
	}
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	catalogHandler := &handlers.CatalogHandler{Catalog: d.Catalog, Bikes: d.Bikes}
	itinHandler := &handlers.ItineraryHandler{
		Catalog:         d.Catalog,
		Bikes:           d.Bikes,
		Geocoder:        d.Geocoder,
		Geometry:        d.Geometry,
		GeometryTimeout: d.GeometryTimeout,
		Sessions:        sessions,
		Metrics:         d.Metrics,
		Publisher:       d.Publisher,
		Location:        d.Location,
	}
	sessionHandler := &handlers.SessionHandler{Sessions: sessions}
	health := &handlers.HealthHandler{DB: d.Pinger}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", health.Health)
	r.Get("/stops", catalogHandler.ListStops)
	r.Get("/bikes/stations", catalogHandler.ListBikeStations)
	r.Post("/itineraries", itinHandler.Plan)
	r.Get("/sessions/{sessionID}/display", sessionHandler.Display)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	return r
}
