package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"folklore-server/internal/config"
	"folklore-server/internal/handler"
	"folklore-server/internal/logger"
	"folklore-server/internal/middleware"
	"folklore-server/internal/repository"
	"folklore-server/internal/service"
	"folklore-server/internal/storage"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel))

	// --- External Connections ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, db, err := repository.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer disconnectCancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			zap.L().Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	zap.L().Info("Connected to MongoDB", zap.String("database", cfg.MongoDBName))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	zap.L().Info("Connected to Redis")

	mediaStore, err := storage.NewS3MediaStore(ctx, storage.S3Config{
		Endpoint:      cfg.MediaEndpoint,
		Region:        cfg.MediaRegion,
		Bucket:        cfg.MediaBucket,
		PublicBaseURL: cfg.MediaPublicBaseURL,
		AccessKey:     cfg.MediaAccessKey,
		SecretKey:     cfg.MediaSecretKey,
	}, log)
	if err != nil {
		zap.L().Fatal("Failed to initialize media store", zap.Error(err))
	}
	zap.L().Info("Media store initialized", zap.String("bucket", cfg.MediaBucket))

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		zap.L().Fatal("Failed to create upload directory", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	// --- Dependency Injection ---
	storyRepo := repository.NewMongoStoryRepository(db, log)
	contactRepo := repository.NewMongoContactRepository(db, log)
	statsCache := repository.NewRedisStatsCache(redisClient, cfg.StatsCacheTTL, log)
	prober := storage.NewProber()
	janitor := storage.NewJanitor(log)

	submissionSvc := service.NewSubmissionService(storyRepo, statsCache, mediaStore, prober, cfg.UploadFailurePolicy, log)
	storySvc := service.NewStoryService(storyRepo, statsCache, log)
	generatorSvc := service.NewGeneratorService(service.GeneratorConfig{
		BaseURL: cfg.AIBaseURL,
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
	}, log)

	apiHandler := handler.NewAPIHandler(submissionSvc, storySvc, generatorSvc, contactRepo, janitor, cfg.UploadDir, log)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	if allowedOrigins := cfg.GetAllowedOrigins(); len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	handler.RegisterHealth(router)
	apiHandler.RegisterRoutes(router)

	// Prometheus middleware goes on after the routes are known.
	p.Use(router)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}
