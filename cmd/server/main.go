package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kampongconnect/backend/docs"
	"github.com/kampongconnect/backend/internal/audit"
	"github.com/kampongconnect/backend/internal/config"
	"github.com/kampongconnect/backend/internal/database"
	"github.com/kampongconnect/backend/internal/handlers"
	"github.com/kampongconnect/backend/internal/services"
	"github.com/kampongconnect/backend/internal/storage"
	"go.uber.org/zap"
)

// @title Kampong Connect API
// @version 1.0
// @description API connecting elders who need a hand with neighbourhood volunteers
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	if err := config.Init(".env"); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Environment)
	defer logger.Sync()

	docs.SwaggerInfo.Title = "Kampong Connect API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api/v1"
	if u, err := url.Parse(cfg.BaseURL); err == nil && u.Host != "" {
		docs.SwaggerInfo.Host = u.Host
	}

	ctx := context.Background()

	// Redis backs token revocation regardless of the snapshot driver
	redisClient := database.InitRedis(ctx, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	store, db, err := openStore(ctx, cfg, redisClient, logger)
	if err != nil {
		logger.Fatal("failed to open snapshot store", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	auditLogger := audit.NewLogger(logger)
	hasher := services.NewPasswordHasher(cfg.Argon2)

	directory := services.NewUserDirectory(store, cfg.Snapshot.AccountsKey, hasher, auditLogger, logger)
	ledger := services.NewRequestLedger(store, cfg.Snapshot.RequestsKey, directory, auditLogger, logger)
	reviews := services.NewReviewBook(store, cfg.Snapshot.ReviewsKey, ledger, auditLogger, logger)
	conversations := services.NewConversationBook(store, cfg.Snapshot.ConversationsKey, ledger, auditLogger, logger)
	ledger.OnTransition(conversations.HandleTransition)

	// A malformed snapshot stops startup so it is never overwritten
	if err := directory.Load(ctx); err != nil {
		logger.Fatal("failed to load accounts", zap.Error(err))
	}
	if err := ledger.Load(ctx); err != nil {
		logger.Fatal("failed to load requests", zap.Error(err))
	}
	if err := reviews.Load(ctx); err != nil {
		logger.Fatal("failed to load reviews", zap.Error(err))
	}
	if err := conversations.Load(ctx); err != nil {
		logger.Fatal("failed to load conversations", zap.Error(err))
	}

	if cfg.Snapshot.SeedDemo {
		accounts, requests, err := services.SeedDemoData(ctx, directory, ledger)
		if err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
		logger.Info("demo data checked", zap.Bool("accounts_seeded", accounts), zap.Bool("requests_seeded", requests))
	}

	dictation := services.NewDictationService(ctx, cfg.Speech.Enabled, logger)
	defer dictation.Close()

	router := handlers.NewRouter(handlers.Dependencies{
		Directory:     directory,
		Ledger:        ledger,
		Reviews:       reviews,
		Conversations: conversations,
		Tokens:        services.NewTokenService(cfg.JWT, redisClient, logger),
		QR:            services.NewQRService(cfg.BaseURL, ledger, logger),
		Dictation:     dictation,
		BaseURL:       cfg.BaseURL,
		AvatarDir:     "./static/avatars",
	}, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr), zap.String("storage", cfg.StorageDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}

func newLogger(environment string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// openStore picks the snapshot backend. The returned *sql.DB is non-nil only
// for the postgres driver and must be closed by the caller.
func openStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) (storage.Store, *sql.DB, error) {
	switch cfg.StorageDriver {
	case config.StorageRedis:
		if redisClient == nil {
			return nil, nil, errors.New("redis storage selected but redis is unreachable")
		}
		return storage.NewRedisStore(redisClient, cfg.Snapshot.KeyPrefix), nil, nil
	case config.StoragePostgres:
		db, err := database.InitDB(ctx, database.GetConfig(), logger)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewPostgresStore(db), db, nil
	default:
		return storage.NewMemoryStore(cfg.Snapshot.MemoryQuota), nil, nil
	}
}
