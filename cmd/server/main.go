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
	"github.com/quizdash/builder-service/internal/builder"
	"github.com/quizdash/builder-service/internal/cache"
	"github.com/quizdash/builder-service/internal/client"
	"github.com/quizdash/builder-service/internal/config"
	"github.com/quizdash/builder-service/internal/handlers"
	"github.com/quizdash/builder-service/internal/models"
	"github.com/quizdash/builder-service/internal/projector"
	"github.com/quizdash/builder-service/internal/repositories/postgres"
	"github.com/quizdash/builder-service/internal/services"
	"github.com/quizdash/builder-service/internal/utils"
	"github.com/quizdash/builder-service/internal/validator"
	"github.com/quizdash/builder-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	// Database. The service owns the question_structures table; in
	// remote persistence mode it still serves the local read API.
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.QuestionStructure{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	repo := postgres.NewRepository(db)

	// Redis read cache is optional; without it every read goes to the
	// database.
	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, running without read cache", "error", err)
		cacheService = cache.NewNoopCache()
	} else {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, logger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(utils.ToSlogLogger(logger))
	if err != nil {
		log.Fatalf("failed to create event publisher: %v", err)
	}
	defer publisher.Close()

	var writer services.StructureWriter
	switch cfg.PersistenceMode {
	case config.PersistenceRemote:
		writer = client.NewMetadataClient(cfg.MetadataAPIURL, logger)
		logger.Info("persisting structures to metadata API", "url", cfg.MetadataAPIURL)
	default:
		writer = services.NewRepositoryWriter(repo.Structure())
		logger.Info("persisting structures to local database")
	}

	v := validator.New()
	builderService := services.NewBuilderService(
		builder.NewMemoryStore(),
		v,
		projector.New(),
		writer,
		publisher,
		cacheService,
		logger,
	)
	catalogService := services.NewCatalogService(repo.Structure(), cacheService, publisher, logger)
	exportService := services.NewExportService(repo.Structure(), logger)

	health := handlers.NewHealthHandler(map[string]func() error{
		"database": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return repo.Ping(ctx)
		},
	})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))

	handlerManager := handlers.NewHandlerManager(
		builderService,
		catalogService,
		exportService,
		v,
		logger,
		health,
	)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("builder service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
