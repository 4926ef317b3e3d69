package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatherly/server/internal/api"
	"github.com/gatherly/server/internal/config"
	"github.com/gatherly/server/internal/domain/admins"
	"github.com/gatherly/server/internal/domain/organizations"
	"github.com/gatherly/server/internal/metrics"
	"github.com/gatherly/server/internal/storage/postgres"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Gatherly HTTP server",
	Long: `Start the Gatherly HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (or --config file if provided)
- Bootstrap a first organization and admin if BOOTSTRAP_* env vars are set
- Serve the admin API and the public tenant-scoped event pages
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("version", Version).Msg("starting gatherly server")

	metrics.AppInfo.WithLabelValues(Version).Set(1)

	poolCtx, poolCancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := postgres.NewPool(poolCtx, cfg.Database.URL, int32(cfg.Database.MaxConnections))
	poolCancel()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return err
	}

	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := bootstrapTenant(bootstrapCtx, cfg.Bootstrap, repo, logger); err != nil {
		logger.Error().Err(err).Msg("tenant bootstrap failed")
	}
	bootstrapCancel()

	dbCollector := metrics.NewDBCollector(pool)
	collectorCtx, collectorCancel := context.WithCancel(context.Background())
	go dbCollector.Start(collectorCtx, 15*time.Second)
	defer collectorCancel()
	defer dbCollector.Stop()

	handler, err := api.NewRouter(cfg, logger, pool, Version)
	if err != nil {
		return fmt.Errorf("router init failed: %w", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	shutdown(server, logger)
	return nil
}

// bootstrapTenant seeds the first organization and admin so a fresh
// deployment has a way to log in. Reruns are no-ops once the slug or email
// exists.
func bootstrapTenant(ctx context.Context, bootstrap config.BootstrapConfig, repo *postgres.Repository, logger zerolog.Logger) error {
	if bootstrap.OrgSlug == "" || bootstrap.OrgName == "" || bootstrap.Email == "" || bootstrap.Password == "" {
		logger.Debug().Msg("bootstrap env vars not fully set; skipping")
		return nil
	}

	orgService := organizations.NewService(repo.Organizations())
	adminService := admins.NewService(repo.Admins())

	org, err := orgService.ResolveSlug(ctx, bootstrap.OrgSlug)
	if errors.Is(err, organizations.ErrNotFound) {
		org, err = orgService.Create(ctx, organizations.CreateParams{
			Slug: bootstrap.OrgSlug,
			Name: bootstrap.OrgName,
		})
	}
	if err != nil {
		return fmt.Errorf("bootstrap organization: %w", err)
	}

	name := bootstrap.AdminName
	if name == "" {
		name = "Admin"
	}
	_, err = adminService.Create(ctx, org.ULID, admins.CreateInput{
		Name:     name,
		Email:    bootstrap.Email,
		Password: bootstrap.Password,
	})
	if errors.Is(err, admins.ErrEmailTaken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	logger.Info().Str("slug", bootstrap.OrgSlug).Str("email", bootstrap.Email).Msg("bootstrapped organization and admin")
	return nil
}

func shutdown(server *http.Server, logger zerolog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
