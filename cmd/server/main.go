package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"crewshift/internal/adapters/http/middleware"
	"crewshift/internal/adapters/http/routes"
	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/config"

	"github.com/gofiber/fiber/v2"
)

// @title crewshift API
// @version 1.0
// @description Workforce shift scheduling API: role-requirement auto-assignment and leave reassignment.

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Info("✅ Database migration completed")

	// Seed role/location master data
	if err := config.SeedMasterData(db); err != nil {
		log.Warnf("⚠️ Failed to seed master data: %v", err)
	}
	if cfg.IsDev() {
		if err := config.SeedDemoData(db); err != nil {
			log.Warnf("⚠️ Failed to seed demo data: %v", err)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "crewshift API",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	cronService := routes.Setup(app, db, cfg)

	// Start shift reminder cron
	if err := cronService.Start(cfg.Scheduling.ReminderCron); err != nil {
		log.Fatalf("❌ Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Infof("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Errorf("❌ Server forced to shutdown: %v", err)
	}
}
