package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/domain/organizations"
	"github.com/rs/zerolog"
)

const tenantKey contextKey = "tenant"

// ResolveTenant resolves the {org} path segment to an organization and
// stores it in the request context. An unknown or malformed slug is a 404;
// nothing tenant-scoped runs without a resolved organization.
func ResolveTenant(svc *organizations.Service, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := r.PathValue("org")

			org, err := svc.ResolveSlug(r.Context(), slug)
			if err != nil {
				if errors.Is(err, organizations.ErrNotFound) {
					problem.Write(w, r, http.StatusNotFound, "Organization not found.", err, env)
					return
				}
				problem.Write(w, r, http.StatusInternalServerError, "Internal Server Error", err, env)
				return
			}

			// Tag the request-scoped logger so the access log line
			// carries the tenant. Skipped when no logger is attached,
			// since the shared disabled logger must not be mutated.
			if logger := zerolog.Ctx(r.Context()); logger.GetLevel() != zerolog.Disabled {
				logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
					return c.Str("org", org.Slug)
				})
			}

			ctx := context.WithValue(r.Context(), tenantKey, org)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFrom returns the resolved organization, if any.
func TenantFrom(ctx context.Context) (*organizations.Organization, bool) {
	org, ok := ctx.Value(tenantKey).(*organizations.Organization)
	return org, ok
}
