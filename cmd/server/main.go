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

	"catalog_api/internal/app"
	"catalog_api/internal/pkg/config"
	"catalog_api/internal/pkg/schema"
	"catalog_api/pkg/database"
	"catalog_api/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title Catalog API
// @version 1.0
// @description Found-object catalogue: posts, tags, comments, votes and interest.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if _, err := logger.Init(cfg.Log.Level, cfg.App.Env); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.Database.URL, cfg.Database.LogLevel)
	if err != nil {
		logger.Log.Fatal("failed to connect database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if cfg.Database.AutoMigrate {
		if err := schema.AutoMigrate(db); err != nil {
			logger.Log.Fatal("auto migrate failed", zap.Error(err))
		}
		logger.Log.Info("database schema migrated")
	}

	rdb, err := database.InitRedis(context.Background(), cfg.Redis)
	if err != nil {
		logger.Log.Fatal("failed to connect redis", zap.Error(err))
	}
	if rdb == nil {
		logger.Log.Warn("redis not configured, token revocation disabled")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	router, err := app.New(cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("failed to build application", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("server shutdown error", zap.Error(err))
	}
	logger.Log.Info("server gracefully stopped")
}
