package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"simwarga/internal/audit"
	"simwarga/internal/auth"
	"simwarga/internal/keluarga"
	"simwarga/internal/platform/config"
	"simwarga/internal/platform/httpserver"
	"simwarga/internal/platform/logger"
	"simwarga/internal/platform/metrics"
	"simwarga/internal/platform/middleware"
	"simwarga/internal/platform/postgres"
	platformredis "simwarga/internal/platform/redis"
	httptransport "simwarga/internal/transport/http"
	"simwarga/internal/warga"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.PostgresURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	redisClient, err := platformredis.New(ctx, cfg.RedisAddr)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	m := metrics.New()

	// Stores and services.
	auditor := audit.NewPublisher(audit.NewPostgresStore(db), log)

	tokens := auth.NewTokenService(cfg.JWTSigningKey, cfg.TokenTTL)
	trl := auth.NewRedisTRL(redisClient)
	authService := auth.NewService(auth.NewPostgresStore(db), tokens, trl)

	if err := authService.EnsureUser(ctx, cfg.AdminUsername, cfg.AdminPassword, auth.RoleAdminSistem); err != nil {
		log.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}

	wargaStore := warga.NewPostgresStore(db)
	wargaService := warga.NewService(wargaStore, auditor, m)
	keluargaService := keluarga.NewService(
		keluarga.NewPostgresStore(db), wargaStore, auditor, m, cfg.EnrichConcurrency)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Logger:      log,
		Metrics:     m,
		RateLimiter: limiter,
		Validator:   tokens,
		Revocations: trl,
		Auth:        httptransport.NewAuthHandler(authService, log),
		Warga:       httptransport.NewWargaHandler(wargaService, log),
		Keluarga:    httptransport.NewKeluargaHandler(keluargaService, log),
	})

	// Admin mux serves metrics away from the public API.
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminServer := httpserver.New(cfg.AdminAddr, adminMux)

	go func() {
		log.Info("starting admin & metrics server", "addr", cfg.AdminAddr)
		if err := adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("admin & metrics server failed", "error", err)
		}
	}()

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting simwarga", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	_ = adminServer.Shutdown(shutdownCtx)
}
