package main

import (
	"context"
	"log"
	"time"

	"shipment-tracker/internal/core/config"
	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/core/server"
	shipmentadapter "shipment-tracker/internal/features/shipments/adapters"
	shipmenthandler "shipment-tracker/internal/features/shipments/handler"
	"shipment-tracker/internal/features/shipments/ports"
	shipmentservice "shipment-tracker/internal/features/shipments/service"
	subadapter "shipment-tracker/internal/features/subscriptions/adapters"
	subhandler "shipment-tracker/internal/features/subscriptions/handler"
	subservice "shipment-tracker/internal/features/subscriptions/service"

	"go.uber.org/zap"
)

// @title Shipment Tracker API
// @version 1.0
// @description Real-time shipment tracking simulator: update ingestion, shipment queries and live WebSocket subscriptions.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Notification hub: in-process fan-out to WebSocket subscribers.
	hub := subservice.NewHub(cfg.Hub.BufferSize)
	publishers := []ports.SnapshotPublisher{hub}

	// Optional Redis bridge mirrors snapshots for out-of-process observers.
	if cfg.Redis.URL != "" {
		bridge, err := subadapter.NewRedisPublisher(cfg.Redis.URL, cfg.Redis.PublishChannel, cfg.Redis.PublishQueueSize)
		if err != nil {
			l.Fatal("Failed to create Redis publisher", zap.Error(err))
		}
		defer bridge.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := bridge.Ping(pingCtx); err != nil {
			cancel()
			l.Fatal("Redis Health Check Failed", zap.Error(err))
		}
		cancel()
		l.Info("Redis connection verified", zap.String("channel", cfg.Redis.PublishChannel))

		publishers = append(publishers, bridge)
	}

	// Authoritative in-memory store and the update processor on top of it.
	store := shipmentadapter.NewMemoryStore()
	updateSvc := shipmentservice.NewUpdateService(store, publishers)
	shipmentHdl := shipmenthandler.NewShipmentHandler(updateSvc)
	subscriptionHdl := subhandler.NewSubscriptionHandler(hub)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/shipments", shipmentHdl.ListShipments)
	srv.App.Get("/shipments/:id", shipmentHdl.GetShipment)
	srv.App.Post("/updates", shipmentHdl.SubmitUpdate)
	srv.App.Post("/simulation/reset", shipmentHdl.ResetSimulation)
	srv.App.Get("/ws", subscriptionHdl.UpgradeRequired, subscriptionHdl.Handle())

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
