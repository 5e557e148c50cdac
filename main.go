package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tapright/waitlist-api/pkg/api"
	"github.com/tapright/waitlist-api/pkg/clients/postgres"
	"github.com/tapright/waitlist-api/pkg/clients/resend"
	"github.com/tapright/waitlist-api/pkg/clients/supabase"
	"github.com/tapright/waitlist-api/pkg/config"
	"github.com/tapright/waitlist-api/pkg/logger"
	"github.com/tapright/waitlist-api/pkg/services"
)

func main() {
	if path, ok := config.LoadDotenv(); ok {
		log.Printf("Loaded environment from %s", path)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store and email clients
	store, closeStore, err := newStore(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("error initializing waitlist store", zap.Error(err))
	}
	defer closeStore()

	var sender services.EmailSender
	if cfg.EmailConfigured() {
		sender = resend.NewClient(cfg.ResendAPIKey, cfg.OutboundTimeout, zlog)
	} else {
		zlog.Warn("RESEND_API_KEY is not set, waitlist submissions will be rejected")
	}
	if !cfg.AlertConfigured() {
		zlog.Info("WAITLIST_ALERT_EMAIL is not set, internal signup alerts are disabled")
	}

	// Initialize services
	dispatcher := services.NewDispatcher(sender, services.DispatcherConfig{
		From:       cfg.FromEmail,
		AlertEmail: cfg.AlertEmail,
		Timeout:    cfg.OutboundTimeout,
	}, zlog)
	waitlistService := services.NewWaitlistService(services.WaitlistServiceOptions{
		Store:           store,
		Notifier:        dispatcher,
		EmailConfigured: cfg.EmailConfigured(),
		Timeout:         cfg.OutboundTimeout,
		Logger:          zlog,
	})
	statsService := services.NewStatsService(store, cfg.OutboundTimeout)

	gin.SetMode(cfg.GinMode)

	// Initialize handlers and routes
	handlers := api.NewHandlers(waitlistService, statsService, zlog)
	router := api.NewRouter(handlers, cfg.CORSAllowedOrigins, zlog)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("store_driver", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("error starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("error during server shutdown", zap.Error(err))
	}
}

// newStore selects the persistence backend. A missing credential yields an
// unconfigured store rather than an error so the service can still report it.
func newStore(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (services.SignupStore, func(), error) {
	noop := func() {}

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			zlog.Warn("DATABASE_URL is not set, signups will not be stored")
			return postgres.NewStore(nil, cfg.SupabaseTable), noop, nil
		}
		openCtx, cancel := context.WithTimeout(ctx, cfg.OutboundTimeout)
		defer cancel()
		db, err := postgres.Open(openCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return postgres.NewStore(db, cfg.SupabaseTable), func() { db.Close() }, nil
	default:
		client := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.SupabaseTable, cfg.OutboundTimeout)
		if !client.Configured() {
			zlog.Warn("SUPABASE_URL or SUPABASE_SERVICE_ROLE_KEY is not set, signups will not be stored")
		}
		return client, noop, nil
	}
}
