package middleware

import (
	"context"
	"net/http"

	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/auth"
)

// Principal is the authenticated admin identity. OrgULID drives every
// tenant-scoped query below the handler layer.
type Principal struct {
	AdminULID string
	OrgULID   string
}

const principalKey contextKey = "principal"

// AdminAuth requires a valid bearer token and stores the resulting
// Principal in the request context.
func AdminAuth(manager *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", err, env)
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, "Unauthenticated.", err, env)
				return
			}

			principal := Principal{
				AdminULID: claims.Subject,
				OrgULID:   claims.OrgULID,
			}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the authenticated principal, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey).(Principal)
	return principal, ok
}
