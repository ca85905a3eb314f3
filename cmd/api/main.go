package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/cohort-tools-api/api/swagger"
	"github.com/noah-isme/cohort-tools-api/internal/repository/tokens"
	"github.com/noah-isme/cohort-tools-api/internal/server"
	"github.com/noah-isme/cohort-tools-api/internal/service"
	"github.com/noah-isme/cohort-tools-api/pkg/cache"
	"github.com/noah-isme/cohort-tools-api/pkg/config"
	"github.com/noah-isme/cohort-tools-api/pkg/logger"
)

// @title Cohort Tools API
// @version 1.0.0
// @description Cohort and student records for a training school.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	deps := server.Dependencies{Config: cfg, Logger: logr}

	store, err := server.OpenStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to configure record store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	deps.Cohorts = store.Cohorts
	deps.Students = store.Students
	deps.Users = store.Users
	deps.Store = store

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, token revocation disabled", zap.Error(err))
	}
	deps.Revocations = tokens.NewRevocationRepository(redisClient)

	if cfg.Metrics.Enabled {
		deps.Metrics = service.NewMetricsService()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("store", store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("http server shutdown error", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := store.Close(shutdownCtx); err != nil {
		logr.Error("record store close error", zap.Error(err))
	}
}
