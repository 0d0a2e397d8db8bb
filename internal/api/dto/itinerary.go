package dto

import (
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/services"
	"time"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type RiderRequest struct {
	Age       int  `json:"age"`
	BikeOptIn bool `json:"bike_opt_in"`
}

type PlanItineraryRequest struct {
	Origin             *Point       `json:"origin,omitempty"`
	OriginAddress      string       `json:"origin_address,omitempty"`
	Destination        *Point       `json:"destination,omitempty"`
	DestinationAddress string       `json:"destination_address,omitempty"`
	Rider              RiderRequest `json:"rider"`
	DepartAt           *time.Time   `json:"depart_at,omitempty"`
	SessionID          string       `json:"session_id,omitempty"`
	WithGeometry       bool         `json:"with_geometry,omitempty"`
}

type LineResponse struct {
	ShortName string `json:"short_name"`
	Color     string `json:"color"`
}

type LegResponse struct {
	Mode            string        `json:"mode"`
	Label           string        `json:"label"`
	DurationMinutes int           `json:"duration_minutes"`
	Duration        string        `json:"duration"`
	DistanceKm      float64       `json:"distance_km"`
	Distance        string        `json:"distance"`
	From            Point         `json:"from"`
	To              Point         `json:"to"`
	Line            *LineResponse `json:"line,omitempty"`
	WaitMinutes     *int          `json:"wait_minutes,omitempty"`
	WaitLabel       string        `json:"wait_label,omitempty"`
	Departure       string        `json:"departure,omitempty"`
	ScheduleDerived bool          `json:"schedule_derived,omitempty"`
	BikesAvailable  *int          `json:"bikes_available,omitempty"`
}

type LegGeometryResponse struct {
	Mode        string      `json:"mode"`
	Color       string      `json:"color"`
	Fallback    bool        `json:"fallback"`
	Coordinates [][]float64 `json:"coordinates"`
}

type GeometryResponse struct {
	LineColor string                `json:"line_color"`
	Fallbacks int                   `json:"fallbacks"`
	Legs      []LegGeometryResponse `json:"legs"`
}

type SessionResponse struct {
	ID      string `json:"id"`
	Seq     uint64 `json:"seq"`
	Applied bool   `json:"applied"`
}

type ItineraryResponse struct {
	Scenario             string            `json:"scenario"`
	TotalDurationMinutes int               `json:"total_duration_minutes"`
	Duration             string            `json:"duration"`
	DepartAt             time.Time         `json:"depart_at"`
	ArriveAt             time.Time         `json:"arrive_at"`
	ArrivalTime          string            `json:"arrival_time"`
	Legs                 []LegResponse     `json:"legs"`
	Geometry             *GeometryResponse `json:"geometry,omitempty"`
	Session              *SessionResponse  `json:"session,omitempty"`
}

type DisplayResponse struct {
	SessionID string             `json:"session_id"`
	Seq       uint64             `json:"seq"`
	AppliedAt time.Time          `json:"applied_at"`
	Itinerary *ItineraryResponse `json:"itinerary,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// FormatDuration renders minutes as "25 min", or "1h05" beyond an hour.
func FormatDuration(minutes int) string {
	if minutes > 60 {
		return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%d min", minutes)
}

// FormatDistance renders kilometres with one decimal, or metres below 1 km.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(km*1000+0.5))
	}
	return fmt.Sprintf("%.1f km", km)
}

func PointFrom(p domain.GeoPoint) Point { return Point{Lat: p.Lat, Lon: p.Lon} }

func (p *Point) GeoPoint() *domain.GeoPoint {
	if p == nil {
		return nil
	}
	return &domain.GeoPoint{Lat: p.Lat, Lon: p.Lon}
}

func NewLegResponse(l domain.Leg) LegResponse {
	out := LegResponse{
		Mode:            string(l.Mode),
		Label:           l.Label,
		DurationMinutes: l.DurationMinutes,
		Duration:        FormatDuration(l.DurationMinutes),
		DistanceKm:      l.DistanceKm,
		Distance:        FormatDistance(l.DistanceKm),
		From:            PointFrom(l.From),
		To:              PointFrom(l.To),
		WaitMinutes:     l.WaitMinutes,
		WaitLabel:       l.WaitLabel,
		ScheduleDerived: l.ScheduleDerived,
		BikesAvailable:  l.BikesAvailableAtPickup,
	}
	if l.Line != nil {
		out.Line = &LineResponse{ShortName: l.Line.ShortName, Color: l.Line.Color}
	}
	if l.DepartureClock != nil {
		out.Departure = l.DepartureClock.String()
	}
	return out
}

func NewItineraryResponse(it *domain.Itinerary) *ItineraryResponse {
	if it == nil {
		return nil
	}
	legs := make([]LegResponse, 0, len(it.Legs))
	for _, l := range it.Legs {
		legs = append(legs, NewLegResponse(l))
	}
	return &ItineraryResponse{
		Scenario:             string(it.Scenario),
		TotalDurationMinutes: it.TotalDurationMinutes,
		Duration:             FormatDuration(it.TotalDurationMinutes),
		DepartAt:             it.DepartAt,
		ArriveAt:             it.ArriveAt,
		ArrivalTime:          it.ArrivalClock.String(),
		Legs:                 legs,
	}
}

func NewGeometryResponse(g *domain.GeometryBundle) *GeometryResponse {
	if g == nil {
		return nil
	}
	legs := make([]LegGeometryResponse, 0, len(g.Legs))
	for _, lg := range g.Legs {
		coords := make([][]float64, 0, len(lg.Points))
		for _, p := range lg.Points {
			coords = append(coords, p.LonLat())
		}
		legs = append(legs, LegGeometryResponse{
			Mode:        string(lg.Mode),
			Color:       lg.Color,
			Fallback:    lg.Fallback,
			Coordinates: coords,
		})
	}
	return &GeometryResponse{LineColor: g.LineColor, Fallbacks: g.Fallbacks, Legs: legs}
}

func NewDisplayResponse(d services.Display) DisplayResponse {
	out := DisplayResponse{
		SessionID: d.Ticket.Session,
		Seq:       d.Ticket.Seq,
		AppliedAt: d.AppliedAt,
		Itinerary: NewItineraryResponse(d.Itinerary),
		Error:     d.Error,
	}
	if out.Itinerary != nil {
		out.Itinerary.Geometry = NewGeometryResponse(d.Geometry)
	}
	return out
}
