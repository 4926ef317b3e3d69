package handlers

import (
	"net/http"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/domain/registration"
	"github.com/gatherly/server/internal/metrics"
)

// PublicEventsHandler is the unauthenticated tenant surface: upcoming
// events and attendee registration, both behind the {org} slug.
type PublicEventsHandler struct {
	registration *registration.Service
	env          string
}

func NewPublicEventsHandler(registrationService *registration.Service, env string) *PublicEventsHandler {
	return &PublicEventsHandler{registration: registrationService, env: env}
}

func (h *PublicEventsHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	org, ok := middleware.TenantFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusNotFound, "Organization not found.", problem.ErrNotFound, h.env)
		return
	}

	items, err := h.registration.ListUpcoming(r.Context(), org.ULID)
	if err != nil {
		writeError(w, r, err, h.env, "Event not found.")
		return
	}

	writeJSON(w, http.StatusOK, toEventResponses(items))
}

type RegisterResponse struct {
	Message  string           `json:"message"`
	Attendee AttendeeResponse `json:"attendee"`
}

func (h *PublicEventsHandler) Register(w http.ResponseWriter, r *http.Request) {
	org, ok := middleware.TenantFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusNotFound, "Organization not found.", problem.ErrNotFound, h.env)
		return
	}

	var input registration.RegisterInput
	if !decodeJSON(w, r, h.env, &input) {
		return
	}

	attendee, err := h.registration.Register(r.Context(), org.ULID, input)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		writeError(w, r, err, h.env, "Event not found.")
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, RegisterResponse{
		Message:  "Registered successfully.",
		Attendee: toAttendeeResponse(attendee),
	})
}
