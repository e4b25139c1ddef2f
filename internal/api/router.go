package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/craftkart/merchant-ops/docs"
	"github.com/craftkart/merchant-ops/internal/api/handler"
	"github.com/craftkart/merchant-ops/internal/api/middleware"
	"github.com/craftkart/merchant-ops/internal/core/domain"
	"github.com/craftkart/merchant-ops/internal/core/ports"
)

// RouterDeps carries the wired services the HTTP layer exposes.
type RouterDeps struct {
	ShipmentService ports.ShipmentService
	AuthService     ports.AuthService
	Dispatcher      handler.ScanDispatcher
	Mongo           *mongo.Database
	Redis           *redis.Client
	JWTSecret       string
	Log             zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("merchantops"))

	// --- Handlers ---
	shipmentHandler := handler.NewShipmentHandler(deps.ShipmentService)
	authHandler := handler.NewAuthHandler(deps.AuthService)
	webhookHandler := handler.NewWebhookHandler(deps.Dispatcher)
	authMiddleware := middleware.Auth(deps.JWTSecret)
	opsOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleOps)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Shipment pipeline (operator-only) ---
	shipments := e.Group("/shipments", authMiddleware, opsOnly)
	shipments.POST("", shipmentHandler.Create)
	shipments.GET("", shipmentHandler.Status)

	// --- Carrier webhooks (carrier pushes, no operator JWT) ---
	e.POST("/webhooks/carrier/events", webhookHandler.Receive)
	e.POST("/webhooks/carrier/events/batch", webhookHandler.ReceiveBatch)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
