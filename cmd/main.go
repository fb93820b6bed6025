package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/forgehq/hackforge/config"
	"github.com/forgehq/hackforge/handlers"
	"github.com/forgehq/hackforge/live"
	"github.com/forgehq/hackforge/metrics"
	"github.com/forgehq/hackforge/notify"
	"github.com/forgehq/hackforge/repositories"
	api "github.com/forgehq/hackforge/routes"
	"github.com/forgehq/hackforge/search"
	"github.com/forgehq/hackforge/services"
	"github.com/forgehq/hackforge/storage"
	"github.com/forgehq/hackforge/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	metrics.Register()

	storeClient := store.NewHTTPClient(cfg.StoreURL, cfg.StoreAPIKey, logger)
	logger.Info("store client initialized", slog.String("url", cfg.StoreURL))

	// Semantic search is optional. Without ELASTIC_URL the indexer stays
	// nil: writes skip the mirror and the search endpoint reports 501.
	var indexer *search.Indexer
	if cfg.ElasticURL != "" {
		indexer, err = search.NewIndexer(cfg.ElasticURL, logger)
		if err != nil {
			logger.Error("failed to initialize search indexer", slog.Any("error", err))
			os.Exit(1)
		}
		if err := indexer.EnsureIndexes(context.Background()); err != nil {
			logger.Error("failed to ensure search indexes", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("search indexer initialized", slog.String("url", cfg.ElasticURL))
	} else {
		logger.Warn("ELASTIC_URL not set, semantic search disabled")
	}

	// File uploads are optional in the same way.
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
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 settings incomplete, file uploads disabled")
	}

	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	notifier := notify.NewLogNotifier(logger)

	hackathonRepo := repositories.NewStoreHackathonRepository(storeClient)
	trackRepo := repositories.NewStoreTrackRepository(storeClient)
	participantRepo := repositories.NewStoreParticipantRepository(storeClient)
	roleRepo := repositories.NewStoreRoleRepository(storeClient)
	teamRepo := repositories.NewStoreTeamRepository(storeClient)
	projectRepo := repositories.NewStoreProjectRepository(storeClient)
	submissionRepo := repositories.NewStoreSubmissionRepository(storeClient)
	rubricRepo := repositories.NewStoreRubricRepository(storeClient)
	scoreRepo := repositories.NewStoreScoreRepository(storeClient)
	logger.Info("repositories initialized")

	lifecycleService := services.NewLifecycleService(hackathonRepo, trackRepo, rubricRepo, wsHub, notifier, logger)
	enrollmentService := services.NewEnrollmentService(participantRepo, roleRepo, hackathonRepo, logger)
	teamService := services.NewTeamService(teamRepo, roleRepo, trackRepo, logger)
	projectService := services.NewProjectService(projectRepo, teamRepo, indexer, logger)
	submissionService := services.NewSubmissionService(submissionRepo, projectRepo, teamRepo, indexer, logger)
	judgingService := services.NewJudgingService(rubricRepo, scoreRepo, submissionRepo, roleRepo, wsHub, logger)
	dashboardService := services.NewDashboardService(hackathonRepo, roleRepo, teamRepo, projectRepo, submissionRepo, scoreRepo)
	logger.Info("services initialized")

	hackathonHandler := handlers.NewHackathonHandler(lifecycleService, uploader)
	participantHandler := handlers.NewParticipantHandler(enrollmentService)
	teamHandler := handlers.NewTeamHandler(teamService)
	projectHandler := handlers.NewProjectHandler(projectService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, uploader)
	judgingHandler := handlers.NewJudgingHandler(judgingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	prizeHandler := handlers.NewPrizeHandler()
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		enrollmentService,
		hackathonHandler,
		participantHandler,
		teamHandler,
		projectHandler,
		submissionHandler,
		judgingHandler,
		dashboardHandler,
		prizeHandler,
		webSocketHandler,
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
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
