package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"itinerary-planner-service/internal/domain"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(r *http.Request, v any) (string, bool) {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return "invalid json body", false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return "body must contain only one JSON object", false
	}
	return "", true
}

// planStatus maps a planning error to its HTTP status and outcome label.
func planStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrNoDestinationStop):
		return http.StatusNotFound, "no_destination_stop"
	case errors.Is(err, domain.ErrNoItinerary):
		return http.StatusNotFound, "no_itinerary"
	default:
		return http.StatusInternalServerError, "error"
	}
}
