package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/domain/admins"
	"github.com/gatherly/server/internal/domain/attendees"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/organizations"
	"github.com/gatherly/server/internal/domain/registration"
	"github.com/gatherly/server/internal/validation"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathParam(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return r.PathValue(key)
}

// decodeJSON reads the request body into dst. A syntactically broken body
// is a 400; field-level problems are handled later by validation.
func decodeJSON(w http.ResponseWriter, r *http.Request, env string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Malformed request body.", err, env)
		return false
	}
	return true
}

// NotFound is the fallback for paths outside the routing table, keeping
// unmatched requests on the JSON error contract instead of the mux's
// plain-text default.
func NotFound(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		problem.Write(w, r, http.StatusNotFound, "Not found.", problem.ErrNotFound, env)
	}
}

// writeError maps domain errors onto the API's error taxonomy. notFoundMsg
// names the entity so 404 bodies stay specific without leaking internals.
func writeError(w http.ResponseWriter, r *http.Request, err error, env, notFoundMsg string) {
	var fields validation.FieldErrors
	switch {
	case errors.As(err, &fields):
		problem.Write(w, r, http.StatusUnprocessableEntity, "The given data was invalid.", err, env,
			problem.WithFieldErrors(fields))
	case errors.Is(err, admins.ErrEmailTaken):
		problem.Write(w, r, http.StatusUnprocessableEntity, "The given data was invalid.", err, env,
			problem.WithFieldErrors(map[string]string{"email": "has already been taken"}))
	case errors.Is(err, admins.ErrInvalidCredentials):
		problem.Write(w, r, http.StatusUnauthorized, "Invalid credentials.", err, env)
	case errors.Is(err, registration.ErrEventFull):
		problem.Write(w, r, http.StatusConflict, "Event is full.", err, env)
	case errors.Is(err, events.ErrNotFound),
		errors.Is(err, admins.ErrNotFound),
		errors.Is(err, attendees.ErrNotFound),
		errors.Is(err, organizations.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, notFoundMsg, err, env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, "Internal Server Error", err, env)
	}
}
