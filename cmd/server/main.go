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
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	ginprometheus "github.com/zsais/go-gin-prometheus"

	"investigator-server/internal/config"
	"investigator-server/internal/database"
	"investigator-server/internal/handler"
	"investigator-server/internal/logger"
	"investigator-server/internal/middleware"
	"investigator-server/internal/service"
	"investigator-server/internal/storage"
	"investigator-server/migrations"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	appLogger, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	zap.ReplaceGlobals(appLogger)
	zap.L().Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	// --- Database ---
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	pool, err := setupPostgres(ctx, cfg, appLogger)
	cancel()
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer database.Close(pool, appLogger)

	migrator := database.NewMigrator(pool, database.MigratorConfig{
		MigrationsFS:   migrations.FS,
		MigrationsPath: ".",
	})
	if err := migrator.Up(); err != nil {
		zap.L().Fatal("Failed to apply migrations", zap.Error(err))
	}

	// --- Dependency Injection ---
	txManager := database.NewTxManager(pool, appLogger)
	characterRepo := database.NewPgCharacterRepository(appLogger)
	scenarioRepo := database.NewPgScenarioRepository(appLogger)
	sessionRepo := database.NewPgSessionRepository(appLogger)
	historyRepo := database.NewPgHistoryRepository(appLogger)
	imageRepo := database.NewPgImageRepository(appLogger)
	blobStore := storage.NewLocalBlobStore(cfg.UploadDir, cfg.UploadURLPrefix, appLogger)

	characterSvc := service.NewCharacterService(pool, characterRepo, imageRepo, blobStore, appLogger)
	sessionSvc := service.NewSessionService(pool, txManager, characterRepo, scenarioRepo, sessionRepo, historyRepo, appLogger)
	backupSvc := service.NewBackupService(pool, txManager, characterRepo, scenarioRepo, sessionRepo, historyRepo, imageRepo, appLogger)
	imageSvc := service.NewImageService(pool, characterRepo, imageRepo, blobStore, appLogger)

	apiHandler := handler.NewHandler(characterSvc, sessionSvc, backupSvc, imageSvc, appLogger)

	// --- HTTP Server (Gin) ---
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.ZapLogger(appLogger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Uploaded portraits are served straight from disk.
	router.Static(cfg.UploadURLPrefix, cfg.UploadDir)

	apiHandler.RegisterRoutes(router)

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.Port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// setupPostgres builds the pool config and delegates to the retrying connect.
func setupPostgres(ctx context.Context, cfg *config.Config, log *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := database.Connect(ctx, cfg.GetDSN(), log)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
