package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/venuebook/venuebook-api/internal/config"
	"github.com/venuebook/venuebook-api/internal/domain/auth"
	"github.com/venuebook/venuebook-api/internal/domain/availability"
	"github.com/venuebook/venuebook-api/internal/domain/booking"
	"github.com/venuebook/venuebook-api/internal/domain/dashboard"
	"github.com/venuebook/venuebook-api/internal/domain/venue"
	"github.com/venuebook/venuebook-api/internal/middleware"
	"github.com/venuebook/venuebook-api/internal/pkg/database"
	"github.com/venuebook/venuebook-api/internal/pkg/events"
	"github.com/venuebook/venuebook-api/internal/pkg/jwt"
	"github.com/venuebook/venuebook-api/internal/pkg/logger"
	"github.com/venuebook/venuebook-api/internal/pkg/metrics"
	pkgresponse "github.com/venuebook/venuebook-api/internal/pkg/response"
	"github.com/venuebook/venuebook-api/internal/pkg/slotlock"
	"github.com/venuebook/venuebook-api/internal/pkg/storage"
)

// handlers groups everything the router mounts
type handlers struct {
	venue        *venue.Handler
	availability *availability.Handler
	booking      *booking.Handler
	auth         *auth.Handler
	dashboard    *dashboard.Handler

	jwtService     *jwt.Service
	bookingLimiter *middleware.RateLimiter
	allowedOrigins []string
	uploadDir      string
	requestTimeout time.Duration
}

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting VenueBook API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		cancelMigrate()
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}
	cancelMigrate()

	redis, err := database.NewRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	// ---------- Infrastructure ----------
	imageStorage, err := storage.New(storage.Config{
		S3Endpoint:   cfg.S3Endpoint,
		S3Region:     cfg.S3Region,
		S3AccessKey:  cfg.S3AccessKey,
		S3SecretKey:  cfg.S3SecretKey,
		S3Bucket:     cfg.S3Bucket,
		LocalPath:    cfg.UploadDir,
		LocalBaseURL: cfg.BackendURL + "/uploads",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create image storage")
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Repositories ----------
	venueRepo := venue.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	// ---------- Services ----------
	engine := availability.NewEngine(venueRepo, bookingRepo)

	venueService := venue.NewService(venueRepo)
	venueService.SetStorage(imageStorage)

	bookingService := booking.NewService(bookingRepo, engine)
	bookingService.SetLocker(slotlock.New(redis, cfg.SlotLockTTL))
	bookingService.SetPublisher(publisher)

	authService := auth.NewService(jwtService, cfg.AdminEmail, cfg.AdminPasswordHash)
	dashboardService := dashboard.NewService(dashboard.NewSource(db))

	h := &handlers{
		venue:          venue.NewHandler(venueService),
		availability:   availability.NewHandler(engine),
		booking:        booking.NewHandler(bookingService),
		auth:           auth.NewHandler(authService),
		dashboard:      dashboard.NewHandler(dashboardService),
		jwtService:     jwtService,
		bookingLimiter: middleware.NewRateLimiter(redis, "rl:bookings", cfg.RateLimitBookings, cfg.RateLimitWindow),
		allowedOrigins: cfg.AllowedOrigins,
		requestTimeout: cfg.RequestTimeout,
	}
	if local, ok := imageStorage.(*storage.LocalStorage); ok {
		h.uploadDir = local.BasePath()
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newRouter(h *handlers) http.Handler {
	adminOnly := middleware.AdminOnly(h.jwtService)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(h.allowedOrigins))
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"message":   "Venue Booking API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.Handle("/metrics", metrics.Handler())

	if h.uploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))
		r.Use(middleware.Timeout(h.requestTimeout))

		r.Mount("/venues", h.venue.Routes(adminOnly, h.availability.ListVenues, h.availability.VenueAvailability))
		r.Mount("/bookings", h.booking.Routes(adminOnly, h.bookingLimiter.Handler))
		r.Mount("/auth", h.auth.Routes(middleware.Auth(h.jwtService)))
		r.Mount("/dashboard", dashboard.Routes(h.dashboard, adminOnly))
	})

	return r
}
