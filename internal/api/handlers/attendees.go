package handlers

import (
	"net/http"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/domain/attendees"
)

// AttendeesHandler exposes the read-only attendee roster across all of the
// organization's events.
type AttendeesHandler struct {
	attendees *attendees.Service
	env       string
}

func NewAttendeesHandler(attendeesService *attendees.Service, env string) *AttendeesHandler {
	return &AttendeesHandler{attendees: attendeesService, env: env}
}

func (h *AttendeesHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	items, err := h.attendees.List(r.Context(), principal.OrgULID)
	if err != nil {
		writeError(w, r, err, h.env, "Attendee not found.")
		return
	}

	writeJSON(w, http.StatusOK, toAttendeeResponses(items))
}
