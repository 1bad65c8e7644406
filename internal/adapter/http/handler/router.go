package handler

import (
	"paypal-multiparty/internal/adapter/http/middleware"
	redisStore "paypal-multiparty/internal/adapter/storage/redis"
	"paypal-multiparty/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	OrderSvc        ports.OrderService
	SubscriptionSvc ports.SubscriptionService
	WebhookSvc      ports.WebhookService
	HistorySvc      ports.HistoryService
	AccountSvc      ports.AccountService
	PlanSvc         ports.PlanService
	TokenSvc        ports.TokenService
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers  []ports.HealthChecker
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Webhook ingestion (no bearer auth; signature-verified) ---
	webhookHandler := NewWebhookHandler(deps.WebhookSvc)
	v1.POST("/webhooks/paypal", rl("webhooks"), webhookHandler.Receive)

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	v1.POST("/webhooks/paypal/replay", jwtAuth, rl("webhooks"), webhookHandler.Replay)

	orderHandler := NewOrderHandler(deps.OrderSvc)
	orders := v1.Group("/orders", jwtAuth)
	{
		orders.POST("", rl("orders"), orderHandler.Create)
		orders.GET("/:id", rl("orders"), orderHandler.Verify)
		orders.POST("/:id/capture", rl("captures"), orderHandler.Capture)
	}

	subscriptionHandler := NewSubscriptionHandler(deps.SubscriptionSvc)
	subscriptions := v1.Group("/subscriptions", jwtAuth)
	{
		subscriptions.POST("", rl("subscriptions"), subscriptionHandler.Create)
		subscriptions.POST("/validate", rl("subscriptions"), subscriptionHandler.Validate)
		subscriptions.POST("/:id/cancel", rl("subscriptions"), subscriptionHandler.Cancel)
	}

	historyHandler := NewHistoryHandler(deps.HistorySvc)
	history := v1.Group("/history", jwtAuth)
	{
		history.GET("/transactions", rl("history"), historyHandler.Transactions)
		history.GET("/subscriptions", rl("history"), historyHandler.Subscriptions)
	}

	accountHandler := NewAccountHandler(deps.AccountSvc)
	accounts := v1.Group("/accounts", jwtAuth)
	{
		accounts.POST("/connect", rl("accounts"), accountHandler.Connect)
		accounts.GET("/me", rl("accounts"), accountHandler.Status)
		accounts.GET("/me/details", rl("accounts"), accountHandler.Details)
		accounts.DELETE("/me", rl("accounts"), accountHandler.Disconnect)
		accounts.POST("/me/webhook", rl("accounts"), accountHandler.RegisterWebhook)
	}

	planHandler := NewPlanHandler(deps.PlanSvc)
	plans := v1.Group("/plans", jwtAuth)
	{
		plans.POST("", rl("plans"), planHandler.Create)
		plans.GET("", rl("plans"), planHandler.List)
		plans.GET("/:id", rl("plans"), planHandler.Details)
	}

	return r
}
