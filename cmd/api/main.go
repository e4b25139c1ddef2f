package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/craftkart/merchant-ops/internal/api"
	"github.com/craftkart/merchant-ops/internal/core/normalize"
	"github.com/craftkart/merchant-ops/internal/core/service"
	"github.com/craftkart/merchant-ops/internal/infrastructure/carrier"
	"github.com/craftkart/merchant-ops/internal/infrastructure/config"
	mongodb "github.com/craftkart/merchant-ops/internal/infrastructure/db/mongo"
	redisdb "github.com/craftkart/merchant-ops/internal/infrastructure/db/redis"
	"github.com/craftkart/merchant-ops/internal/infrastructure/queue"
	"github.com/craftkart/merchant-ops/pkg/logger"
)

// @title        CraftKart Merchant Ops API
// @version      1.0
// @description  Shipment creation pipeline and carrier tracking ingestion for the merchant dashboard.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	orderRepo := mongodb.NewOrderRepository(db)
	warehouseRepo := mongodb.NewWarehouseRepository(db)
	authRepo := mongodb.NewAuthRepository(db)

	if err := orderRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("order index creation failed")
	}
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("user index creation failed")
	}

	// --- Carrier gateway ---
	gateway := carrier.NewGateway(carrier.Config{
		Token:             cfg.Carrier.Token,
		BaseURL:           cfg.Carrier.BaseURL,
		Timeout:           cfg.Carrier.Timeout,
		RegisteredPickups: cfg.Carrier.RegisteredPickups,
		DefaultPickup:     cfg.Carrier.DefaultPickup,
	}, redisdb.NewServiceabilityCache(rdb, log), log)

	// --- Core services ---
	builder := service.NewRequestBuilder(normalize.DefaultAddressNormalizer(), normalize.DefaultHSNResolver(), log)
	shipmentService := service.NewShipmentService(
		orderRepo,
		warehouseRepo,
		builder,
		normalize.DefaultPrevalidator(),
		gateway,
		service.NewReconciler(log),
		log,
	)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	trackingService := service.NewTrackingService(orderRepo, redisdb.NewDedupChecker(rdb), log)

	// --- Tracking worker pool ---
	dispatcher := queue.NewDispatcher(cfg.Workers.TrackingWorkers, trackingService, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.RouterDeps{
		ShipmentService: shipmentService,
		AuthService:     authService,
		Dispatcher:      dispatcher,
		Mongo:           db,
		Redis:           rdb,
		JWTSecret:       cfg.JWTSecret,
		Log:             log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
