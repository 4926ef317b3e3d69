package handlers

import (
	"net/http"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/domain/admins"
)

// AdminsHandler manages the admin accounts of the principal's own
// organization. Deleting an admin is a hard delete; the account and its
// credentials are gone immediately.
type AdminsHandler struct {
	admins *admins.Service
	env    string
}

func NewAdminsHandler(adminsService *admins.Service, env string) *AdminsHandler {
	return &AdminsHandler{admins: adminsService, env: env}
}

func (h *AdminsHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	items, err := h.admins.List(r.Context(), principal.OrgULID)
	if err != nil {
		writeError(w, r, err, h.env, "Admin not found.")
		return
	}

	writeJSON(w, http.StatusOK, toAdminResponses(items))
}

func (h *AdminsHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	var input admins.CreateInput
	if !decodeJSON(w, r, h.env, &input) {
		return
	}

	admin, err := h.admins.Create(r.Context(), principal.OrgULID, input)
	if err != nil {
		writeError(w, r, err, h.env, "Admin not found.")
		return
	}

	writeJSON(w, http.StatusCreated, toAdminResponse(admin))
}

func (h *AdminsHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	admin, err := h.admins.Get(r.Context(), principal.OrgULID, pathParam(r, "id"))
	if err != nil {
		writeError(w, r, err, h.env, "Admin not found.")
		return
	}

	writeJSON(w, http.StatusOK, toAdminResponse(admin))
}

func (h *AdminsHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	var input admins.UpdateInput
	if !decodeJSON(w, r, h.env, &input) {
		return
	}

	admin, err := h.admins.Update(r.Context(), principal.OrgULID, pathParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err, h.env, "Admin not found.")
		return
	}

	writeJSON(w, http.StatusOK, toAdminResponse(admin))
}

func (h *AdminsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	if err := h.admins.Delete(r.Context(), principal.OrgULID, pathParam(r, "id")); err != nil {
		writeError(w, r, err, h.env, "Admin not found.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Admin deleted"})
}
