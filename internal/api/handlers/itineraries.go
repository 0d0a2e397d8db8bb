package handlers

import (
	"context"
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/metrics"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
	"log"
	"net/http"
	"strings"
	"time"
)

const maxSessionIDLen = 128

type ItineraryHandler struct {
	Catalog         ports.StopCatalog
	Bikes           ports.BikeStationSource
	Geocoder        ports.Geocoder
	Geometry        ports.GeometryProvider
	GeometryTimeout time.Duration
	Sessions        *services.DisplaySessions
	Metrics         *metrics.Collector
	Publisher       ports.PlanEventPublisher
	Location        *time.Location
	Now             func() time.Time
}

// Plan computes one itinerary. When a session id is given the result is
// also applied to that session's display, unless a newer request for the
// same session was submitted in the meantime.
func (h *ItineraryHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanItineraryRequest
	if msg, ok := decodeJSON(r, &req); !ok {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if len(sessionID) > maxSessionIDLen {
		writeError(w, r, http.StatusBadRequest, "session_id is too long")
		return
	}

	var ticket services.Ticket
	if sessionID != "" && h.Sessions != nil {
		ticket = h.Sessions.Submit(sessionID)
	}

	start := time.Now()
	itin, err := services.PlanTrip(r.Context(), services.PlanTripRequest{
		Origin:             req.Origin.GeoPoint(),
		OriginAddress:      req.OriginAddress,
		Destination:        req.Destination.GeoPoint(),
		DestinationAddress: req.DestinationAddress,
		Rider: domain.RiderProfile{
			AgeYears:    req.Rider.Age,
			BikeOptedIn: req.Rider.BikeOptIn,
		},
		DepartAt: h.departAt(req.DepartAt),
	}, h.Catalog, h.Bikes, h.Geocoder)

	status, outcome := http.StatusOK, "ok"
	if err != nil {
		status, outcome = planStatus(err)
	}
	h.record(r.Context(), outcome, itin, time.Since(start))

	if err != nil {
		log.Printf("plan itinerary failed: outcome=%s err=%v", outcome, err)
		if ticket.Session != "" {
			h.Sessions.Apply(ticket, services.Display{Error: err.Error()})
		}
		if status == http.StatusInternalServerError {
			writeError(w, r, status, "failed to plan itinerary")
			return
		}
		writeError(w, r, status, err.Error())
		return
	}

	res := dto.NewItineraryResponse(itin)

	if req.WithGeometry || ticket.Session != "" {
		bundle := services.EnrichGeometry(r.Context(), itin, h.Geometry, h.GeometryTimeout)
		h.Metrics.GeometryFallbacksAdd(bundle.Fallbacks)
		res.Geometry = dto.NewGeometryResponse(&bundle)

		if ticket.Session != "" {
			applied := h.Sessions.Apply(ticket, services.Display{Itinerary: itin, Geometry: &bundle})
			if !applied {
				h.Metrics.DisplayStaleInc()
				log.Printf("plan itinerary superseded: session=%s seq=%d", ticket.Session, ticket.Seq)
			}
			res.Session = &dto.SessionResponse{ID: ticket.Session, Seq: ticket.Seq, Applied: applied}
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

// departAt resolves the departure instant in the service's time zone, since
// timetable minutes are local wall-clock times.
func (h *ItineraryHandler) departAt(requested *time.Time) time.Time {
	var t time.Time
	switch {
	case requested != nil:
		t = *requested
	case h.Now != nil:
		t = h.Now()
	default:
		t = time.Now()
	}
	if h.Location != nil {
		t = t.In(h.Location)
	}
	return t
}

func (h *ItineraryHandler) record(ctx context.Context, outcome string, itin *domain.Itinerary, d time.Duration) {
	ev := ports.PlanEvent{
		RequestID: obs.RequestID(ctx),
		Outcome:   outcome,
		PlannedAt: time.Now().UTC(),
	}
	if itin != nil {
		ev.Scenario = string(itin.Scenario)
		ev.TotalDurationMinutes = itin.TotalDurationMinutes
		ev.LegCount = len(itin.Legs)
	}
	h.Metrics.ObservePlan(outcome, ev.Scenario, d)

	if h.Publisher == nil {
		return
	}
	if err := h.Publisher.PublishPlan(ctx, ev); err != nil {
		log.Printf("publish plan event failed: outcome=%s err=%v", outcome, err)
	}
}
