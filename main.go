package main

import (
	"context"
	"log"

	"carwash-booking/cmd"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/events"
	"carwash-booking/internal/jobs"
	"carwash-booking/internal/wire"
	"carwash-booking/pkg/database"
	"carwash-booking/pkg/tracing"
	"carwash-booking/pkg/utils"

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
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Trace exporter, only when configured
	if config.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(context.Background(), config.App.Name, config.Tracing.Endpoint)
		if err != nil {
			logger.Warn("Failed to init tracer, continuing without tracing", zap.Error(err))
		} else {
			defer shutdown(context.Background())
			logger.Info("Tracing enabled", zap.String("endpoint", config.Tracing.Endpoint))
		}
	}

	// Event publisher falls back to a noop when AMQP is not configured
	publisher := events.NewPublisher(config.AMQP.URL, config.AMQP.Exchange, logger)
	defer publisher.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, publisher, logger)

	// Background jobs
	if config.Jobs.Enabled {
		scheduler := jobs.NewScheduler(repos, app.Service.Notification, logger)
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port, logger)
}
