package handlers

import (
	"errors"
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type SessionHandler struct {
	Sessions *services.DisplaySessions
}

// Display returns what a session currently shows.
func (h *SessionHandler) Display(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	d, err := h.Sessions.Current(id)
	if errors.Is(err, services.ErrNoDisplay) {
		writeError(w, r, http.StatusNotFound, "nothing displayed for session")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to read session")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewDisplayResponse(d))
}
