package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pet-market-backend/internal/config"
	"pet-market-backend/internal/handlers"
	"pet-market-backend/internal/middleware"
	"pet-market-backend/internal/repository"
	"pet-market-backend/internal/services"
	"pet-market-backend/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)

	// Initialize media storage
	media, localStore, err := newMediaStore(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create media store")
	}

	// Initialize services
	userService := services.NewUserService(
		userRepo,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.LifetimeDays)*24*time.Hour,
		0,
	)
	petService := services.NewPetService(petRepo, media)
	notifier, err := services.NewInterestNotifier(cfg.SMTP)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create interest notifier")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	petHandler := handlers.NewPetHandler(petService, notifier)

	// Setup router
	r := handlers.NewRouter(authHandler, userHandler, petHandler, middleware.AuthMiddleware(userService))

	// Serve uploaded media statically when the local driver is active
	if localStore != nil {
		prefix := strings.TrimSuffix(cfg.Storage.PublicPrefix, "/")
		fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(localStore.Dir())))
		r.Get(prefix+"/*", fs.ServeHTTP)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newMediaStore picks the configured media backend. The second return is
// non-nil only for the local driver, which needs a static file route.
func newMediaStore(cfg config.StorageConfig) (storage.MediaStore, *storage.LocalStore, error) {
	switch cfg.Driver {
	case "local":
		local, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicPrefix)
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil
	case "s3":
		s3store, err := storage.NewS3Store(
			context.Background(),
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKey,
			cfg.S3.SecretKey,
			cfg.S3.Endpoint,
		)
		if err != nil {
			return nil, nil, err
		}
		return s3store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
