package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paypal-multiparty/config"
	httpHandler "paypal-multiparty/internal/adapter/http/handler"
	"paypal-multiparty/internal/adapter/paypal"
	pgStorage "paypal-multiparty/internal/adapter/storage/postgres"
	redisStorage "paypal-multiparty/internal/adapter/storage/redis"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/internal/service"
	"paypal-multiparty/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Bool("live", cfg.PayPal.Live).
		Msg("Starting PayPal Multiparty Platform")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	accountRepo := pgStorage.NewAccountRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	subRepo := pgStorage.NewSubscriptionRepo(pool)
	eventRepo := pgStorage.NewWebhookEventRepo(pool)

	// Initialize Redis stores
	tokenCache := redisStorage.NewTokenCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize PayPal REST gateway
	gateway := paypal.NewClient(cfg.PayPal, tokenCache, log)

	// Initialize services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	accountSvc := service.NewAccountService(accountRepo, gateway, log)
	orderSvc := service.NewOrderService(accountRepo, txRepo, gateway, cfg.PayPal.Currency, log)
	subSvc := service.NewSubscriptionService(accountRepo, subRepo, gateway, cfg.PayPal.AppBaseURL, cfg.PayPal.Currency, log)
	webhookSvc := service.NewWebhookService(eventRepo, txRepo, accountRepo, gateway, cfg.PayPal.WebhookID, log)
	historySvc := service.NewHistoryService(accountRepo, txRepo, subRepo, subSvc, gateway, log)
	planSvc := service.NewPlanService(gateway, cfg.PayPal.Currency, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		OrderSvc:        orderSvc,
		SubscriptionSvc: subSvc,
		WebhookSvc:      webhookSvc,
		HistorySvc:      historySvc,
		AccountSvc:      accountSvc,
		PlanSvc:         planSvc,
		TokenSvc:        tokenSvc,
		RateLimitStore:  rateLimitStore,
		HealthCheckers:  []ports.HealthChecker{pgHealth, redisHealth},
		Logger:          log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
