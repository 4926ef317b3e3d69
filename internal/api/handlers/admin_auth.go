package handlers

import (
	"net/http"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/domain/admins"
	"github.com/gatherly/server/internal/metrics"
)

// AdminAuthHandler serves login, identity, and logout for organization
// admins. Tokens are stateless, so logout only confirms the client intent;
// the token stays valid until it expires.
type AdminAuthHandler struct {
	admins *admins.Service
	jwt    *auth.JWTManager
	env    string
}

func NewAdminAuthHandler(adminsService *admins.Service, jwtManager *auth.JWTManager, env string) *AdminAuthHandler {
	return &AdminAuthHandler{
		admins: adminsService,
		jwt:    jwtManager,
		env:    env,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	Admin AdminResponse `json:"admin"`
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, h.env, &req) {
		return
	}

	admin, err := h.admins.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		writeError(w, r, err, h.env, "Admin not found.")
		return
	}

	token, err := h.jwt.Generate(admin.ULID, admin.OrgULID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "Internal Server Error", err, h.env)
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		Admin: toAdminResponse(admin),
	})
}

func (h *AdminAuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	admin, err := h.admins.Get(r.Context(), principal.OrgULID, principal.AdminULID)
	if err != nil {
		writeError(w, r, err, h.env, "Admin not found.")
		return
	}

	writeJSON(w, http.StatusOK, toAdminResponse(admin))
}

func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.PrincipalFrom(r.Context()); !ok {
		problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", auth.ErrMissingToken, h.env)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out."})
}
