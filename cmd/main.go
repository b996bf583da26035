package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hirohaya/racket-hero/config"
	"github.com/hirohaya/racket-hero/db"
	"github.com/hirohaya/racket-hero/handlers"
	"github.com/hirohaya/racket-hero/live"
	"github.com/hirohaya/racket-hero/middleware"
	"github.com/hirohaya/racket-hero/repositories"
	api "github.com/hirohaya/racket-hero/routes"
	"github.com/hirohaya/racket-hero/services"
	"github.com/hirohaya/racket-hero/storage"
	_ "github.com/lib/pq"
)

func main() {
	seed := flag.Bool("seed", false, "seed demo accounts, an event, players, and matches, then continue serving")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	// Off-site backup uploads are optional; without R2 credentials the
	// dumps stay on local disk only.
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Info("R2 credentials not configured, backups stay local")
	}

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live ranking hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	organizerRepo := repositories.NewPostgresOrganizerRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo, organizerRepo, userRepo)
	playerService := services.NewPlayerService(playerRepo, eventRepo)
	matchService := services.NewMatchService(dbConn, matchRepo, playerRepo, hub, logger)
	rankingService := services.NewRankingService(playerRepo, matchRepo)
	backupService := services.NewBackupService(cfg.DatabaseURL, cfg.BackupDir, uploader, logger)
	dashboardService := services.NewDashboardService(userRepo, eventRepo, playerRepo, matchRepo, backupService)
	logger.Info("services initialized")

	if *seed {
		seedService := services.NewSeedService(userRepo, eventService, playerService, matchService, logger)
		if err := seedService.Run(context.Background()); err != nil {
			logger.Error("seeding failed", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("demo data seeded")
	}

	// Scheduled database dumps. Failures are logged, never fatal.
	go func() {
		ticker := time.NewTicker(cfg.BackupInterval)
		defer ticker.Stop()
		logger.Info("backup scheduler started", slog.Duration("interval", cfg.BackupInterval))

		for range ticker.C {
			if _, err := backupService.Create(context.Background()); err != nil {
				logger.Error("scheduled backup failed", slog.Any("error", err))
			}
		}
	}()

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey, logger)
	userHandler := handlers.NewUserHandler(userService)
	eventHandler := handlers.NewEventHandler(eventService)
	playerHandler := handlers.NewPlayerHandler(playerService, eventHandler)
	matchHandler := handlers.NewMatchHandler(matchService, eventHandler)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	adminHandler := handlers.NewAdminHandler(backupService, dashboardService)
	healthHandler := handlers.NewHealthHandler(dbConn)
	wsHandler := handlers.NewWebSocketHandler(hub, eventService, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.CORSOrigins,
		authenticator,
		authHandler,
		userHandler,
		eventHandler,
		playerHandler,
		matchHandler,
		rankingHandler,
		adminHandler,
		healthHandler,
		wsHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shut down gracefully")
		}
	}
}
