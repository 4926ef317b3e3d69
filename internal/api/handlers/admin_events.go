package handlers

import (
	"net/http"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/domain/events"
)

// AdminEventsHandler is the authenticated CRUD surface for events. Every
// operation is scoped to the principal's organization; events of other
// tenants read as missing.
type AdminEventsHandler struct {
	events *events.Service
	env    string
}

func NewAdminEventsHandler(eventsService *events.Service, env string) *AdminEventsHandler {
	return &AdminEventsHandler{events: eventsService, env: env}
}

func (h *AdminEventsHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	items, err := h.events.List(r.Context(), principal.OrgULID)
	if err != nil {
		writeError(w, r, err, h.env, "Event not found.")
		return
	}

	writeJSON(w, http.StatusOK, toEventResponses(items))
}

func (h *AdminEventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	var input events.CreateInput
	if !decodeJSON(w, r, h.env, &input) {
		return
	}

	event, err := h.events.Create(r.Context(), principal.OrgULID, input)
	if err != nil {
		writeError(w, r, err, h.env, "Event not found.")
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

func (h *AdminEventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	event, err := h.events.Get(r.Context(), principal.OrgULID, pathParam(r, "id"))
	if err != nil {
		writeError(w, r, err, h.env, "Event not found.")
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(event))
}

func (h *AdminEventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	var input events.UpdateInput
	if !decodeJSON(w, r, h.env, &input) {
		return
	}

	event, err := h.events.Update(r.Context(), principal.OrgULID, pathParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err, h.env, "Event not found.")
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(event))
}

func (h *AdminEventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	if err := h.events.Delete(r.Context(), principal.OrgULID, pathParam(r, "id")); err != nil {
		writeError(w, r, err, h.env, "Event not found.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}
