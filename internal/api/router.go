package api

import (
	"net/http"

	"github.com/gatherly/server/internal/api/handlers"
	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/config"
	"github.com/gatherly/server/internal/domain/admins"
	"github.com/gatherly/server/internal/domain/attendees"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/organizations"
	"github.com/gatherly/server/internal/domain/registration"
	"github.com/gatherly/server/internal/metrics"
	"github.com/gatherly/server/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter wires services, handlers, and middleware over the given pool.
// The public {org} wildcard routes live on a fallback mux mounted at "/";
// every literal route wins over it, so "admin", "admins", "healthz",
// "readyz" and "metrics" are reserved and no tenant slug can shadow them.
func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool, version string) (http.Handler, error) {
	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return nil, err
	}

	orgService := organizations.NewService(repo.Organizations())
	adminsService := admins.NewService(repo.Admins())
	eventsService := events.NewService(repo.Events())
	attendeesService := attendees.NewService(repo.Attendees())

	capacity := registration.Unlimited()
	if cfg.Registration.EnforceCapacity {
		capacity = registration.EnforceCapacity(repo.Attendees())
	}
	registrationService := registration.NewService(repo.Events(), repo.Attendees(), capacity)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)

	authHandler := handlers.NewAdminAuthHandler(adminsService, jwtManager, cfg.Environment)
	eventsHandler := handlers.NewAdminEventsHandler(eventsService, cfg.Environment)
	adminsHandler := handlers.NewAdminsHandler(adminsService, cfg.Environment)
	attendeesHandler := handlers.NewAttendeesHandler(attendeesService, cfg.Environment)
	publicHandler := handlers.NewPublicEventsHandler(registrationService, cfg.Environment)
	healthHandler := handlers.NewHealthHandler(pool, version)

	requireAuth := middleware.AdminAuth(jwtManager, cfg.Environment)
	withTenant := middleware.ResolveTenant(orgService, cfg.Environment)
	adminTier := middleware.WithRateLimitTier(middleware.TierAdmin)
	loginTier := middleware.WithRateLimitTier(middleware.TierLogin)

	// One shared limiter store; the tier middleware must run before it so
	// the request is counted against the right bucket.
	limit := middleware.RateLimit(cfg.RateLimit)

	admin := func(h http.HandlerFunc) http.Handler {
		return adminTier(limit(requireAuth(h)))
	}
	public := func(h http.HandlerFunc) http.Handler {
		return limit(withTenant(h))
	}

	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler.Healthz))
	mux.Handle("GET /readyz", http.HandlerFunc(healthHandler.Readyz))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("POST /admin/login", loginTier(limit(http.HandlerFunc(authHandler.Login))))
	mux.Handle("GET /admin/me", admin(authHandler.Me))
	mux.Handle("POST /admin/logout", admin(authHandler.Logout))

	mux.Handle("GET /admin/events", admin(eventsHandler.List))
	mux.Handle("POST /admin/events", admin(eventsHandler.Create))
	mux.Handle("GET /admin/events/{id}", admin(eventsHandler.Get))
	mux.Handle("PUT /admin/events/{id}", admin(eventsHandler.Update))
	mux.Handle("DELETE /admin/events/{id}", admin(eventsHandler.Delete))

	mux.Handle("GET /admins", admin(adminsHandler.List))
	mux.Handle("POST /admins", admin(adminsHandler.Create))
	mux.Handle("GET /admins/{id}", admin(adminsHandler.Get))
	mux.Handle("PUT /admins/{id}", admin(adminsHandler.Update))
	mux.Handle("DELETE /admins/{id}", admin(adminsHandler.Delete))

	mux.Handle("GET /admin/attendees", admin(attendeesHandler.List))

	// GET /{org}/events and GET /admins/{id} overlap on the same mux, so
	// the tenant surface hangs off the catch-all pattern instead.
	tenantMux := http.NewServeMux()
	tenantMux.Handle("GET /{org}/events", public(publicHandler.ListUpcoming))
	tenantMux.Handle("POST /{org}/register", public(publicHandler.Register))
	tenantMux.Handle("/", handlers.NotFound(cfg.Environment))
	mux.Handle("/", tenantMux)

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)

	return handler, nil
}
