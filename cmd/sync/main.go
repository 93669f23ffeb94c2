package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"mls-sync/internal/cleanup"
	"mls-sync/internal/config"
	"mls-sync/internal/database"
	"mls-sync/internal/extraction"
	"mls-sync/internal/handlers"
	"mls-sync/internal/lock"
	"mls-sync/internal/mlsapi"
	"mls-sync/internal/scheduler"
	"mls-sync/internal/search"
	"mls-sync/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	gormDB       *database.GormDB
	searchClient *search.SearchClient
	appConfig    *config.Config
	appScheduler *scheduler.Scheduler
	logger       *logrus.Logger
)

func main() {
	// Load env from .env before reading configuration
	godotenv.Load()

	logger = config.GetLogger()

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/sync_config.yaml")
	var err error
	appConfig, err = config.LoadConfig(configPath)
	if err != nil {
		logger.Warnf("Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		logger.Infof("Loaded configuration from %s", configPath)
	}
	config.ConfigureLogger(appConfig.Logging)

	// Initialize database based on configuration
	if appConfig.Database.Type == "postgres" {
		logger.Info("Using PostgreSQL")
		pgCfg := appConfig.Database.Postgres
		gormDB, err = database.NewPostgresDB(
			pgCfg.Host, pgCfg.Port, pgCfg.User, pgCfg.Password, pgCfg.Database, pgCfg.SSLMode)
	} else {
		logger.Info("Using MySQL")
		mysqlCfg := appConfig.Database.MySQL
		gormDB, err = database.NewGormDB(
			mysqlCfg.Host, mysqlCfg.Port, mysqlCfg.User, mysqlCfg.Password, mysqlCfg.Database)
	}
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer gormDB.Close()

	// Initialize schema with GORM AutoMigrate
	if err := gormDB.InitSchema(); err != nil {
		logger.Fatalf("Failed to initialize schema: %v", err)
	}

	// Connect Redis for the distributed extraction lock
	rdb := redis.NewClient(&redis.Options{
		Addr:     appConfig.Redis.Address,
		Password: appConfig.Redis.Password,
		DB:       appConfig.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatalf("Failed to connect to redis at %s: %v", appConfig.Redis.Address, err)
	}
	extractionLock := lock.NewRedisLock(rdb)

	// Initialize Meilisearch when configured
	var indexer extraction.SearchIndexer
	if appConfig.Search.Meilisearch.Host != "" {
		searchClient = search.NewSearchClient(
			appConfig.Search.Meilisearch.Host,
			appConfig.Search.Meilisearch.APIKey,
		)
		if err := searchClient.InitIndex(); err != nil {
			logger.Warnf("Failed to initialize search index: %v", err)
		}
		indexer = searchClient
	} else {
		logger.Info("Search indexing disabled (no meilisearch host configured)")
	}

	// Wire the extraction engine
	db := gormDB.DB()
	apiClient := mlsapi.NewClient(appConfig.MLSApi, appConfig.Sync.RelatedChunkSize, logger)
	runStore := store.NewRunStore(db)
	orchestrator := extraction.NewOrchestrator(
		appConfig.MLSApi,
		appConfig.Sync,
		apiClient,
		extractionLock,
		runStore,
		store.NewPropertyStore(db),
		store.NewAgentStore(db),
		store.NewOfficeStore(db),
		store.NewMediaStore(db),
		store.NewOpenHouseStore(db),
		store.NewChangeLogStore(db),
		indexer,
		logger,
	)

	// Retention pass piggybacks on the nightly resync
	var searchRemover cleanup.SearchRemover
	if searchClient != nil {
		searchRemover = searchClient
	}
	retention := cleanup.NewService(db, searchRemover, logger)

	// Start the scheduler
	appScheduler = scheduler.NewScheduler(orchestrator, runStore, retention, appConfig, logger)
	if err := appScheduler.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer appScheduler.Stop()

	// Setup Gin router
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	// Routes
	r.GET("/health", healthCheck)

	adminHandler := handlers.NewAdminHandler(db, appScheduler, logger)
	r.POST("/api/sync/trigger", adminHandler.TriggerSync)
	r.GET("/api/sync/runs", adminHandler.GetRuns)
	r.GET("/api/sync/runs/:id", adminHandler.GetRun)
	r.GET("/api/sync/status", adminHandler.GetSyncStatus)
	r.GET("/api/properties/:key/changes", adminHandler.GetListingChanges)
	r.GET("/api/stats", adminHandler.GetStats)

	port := getEnv("PORT", "8080")
	logger.Infof("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
