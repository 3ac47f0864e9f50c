package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleettrack-api/config"
	"fleettrack-api/database"
	"fleettrack-api/middleware"
	"fleettrack-api/routes"
	"fleettrack-api/schema"
	"fleettrack-api/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	// The dynamic vehicle field list is read once at startup. Forms and
	// imports depend on it, so a missing or empty file is fatal.
	fields, err := schema.Load(cfg.VehicleSchemaFile)
	if err != nil {
		log.Fatal("Failed to load vehicle schema:", err)
	}

	// Attachment storage root
	files, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to prepare upload directory:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		logger.Warn("failed to seed database", zap.Error(err))
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(gin.Recovery())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, fields, files, logger)

	// Start server
	logger.Info("starting FleetTrack API server", zap.String("port", cfg.Port))

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
