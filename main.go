// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"theater-booking/cmd"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/notify"
	"theater-booking/internal/usecase"
	"theater-booking/internal/wire"
	"theater-booking/pkg/database"
	"theater-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("store", config.Store.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	var repos *repository.Repository
	switch config.Store.Driver {
	case utils.StoreDriverMemory:
		repos = repository.NewMemoryRepository(logger)
		logger.Warn("Using in-memory store, tickets are lost on restart")
	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("Database connected successfully")

		if err := database.InitializeSchema(ctx, db); err != nil {
			logger.Fatal("Failed to initialize schema", zap.Error(err))
		}
		if err := repository.SeedDemoData(ctx, db); err != nil {
			logger.Fatal("Failed to seed demo data", zap.Error(err))
		}

		repos = repository.NewRepository(db, logger)
	}

	// Occupancy cache
	if client := repository.NewRedisClient(config.Redis.Addr, config.Redis.Password, config.Redis.DB, logger); client != nil {
		defer client.Close()
		repos.WithOccupancyCache(repository.NewRedisOccupancyCache(client, config.Redis.TTL, logger))
		logger.Info("Occupancy cache enabled", zap.String("addr", config.Redis.Addr))
	}

	// Ticket events
	var publisher notify.Publisher = notify.NopPublisher{}
	if config.RabbitMQ.URL != "" {
		amqpPublisher, err := notify.NewAMQPPublisher(config.RabbitMQ.URL, config.RabbitMQ.Queue, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, ticket events disabled", zap.Error(err))
		} else {
			publisher = amqpPublisher
			logger.Info("Ticket events enabled", zap.String("queue", config.RabbitMQ.Queue))
		}
	}
	defer publisher.Close()

	// Wire all dependencies
	app := wire.Wiring(repos, usecase.DefaultLayoutCatalog(), publisher, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
