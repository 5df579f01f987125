package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blogem/record-engine/config"
	"github.com/blogem/record-engine/controllers"
	"github.com/blogem/record-engine/database"
	"github.com/blogem/record-engine/repositories"
	"github.com/blogem/record-engine/services"
)

func main() {
	// Load configuration from the environment and an optional .env file
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.Logging)
	logger.WithField("config", cfg.String()).Debug("Configuration loaded")

	// Load the record schema
	schema, err := config.LoadSchema(cfg.SchemaFile)
	if err != nil {
		logger.Fatalf("Failed to load schema: %v", err)
	}
	if schema.Title == "" {
		schema.Title = cfg.AppTitle
	}

	// Initialize database
	ctx := context.Background()
	db, dialect, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	migrations := database.Migrations(dialect, schema, cfg.Audit.Sink == "database")
	if err := database.RunMigrations(ctx, db, dialect, migrations, logger); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	repos := repositories.NewRepositories(db, dialect, schema, cfg.Audit)

	// Initialize services
	srvs, err := services.NewServices(schema, repos, services.ServiceConfig{
		Title:     cfg.AppTitle,
		ExportDir: cfg.ExportDir,
	}, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           controllers.NewRouter(ctrl, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":   cfg.Port,
			"driver": cfg.Database.Driver,
			"table":  schema.TableName,
			"audit":  cfg.Audit.Sink,
		}).Infof("%s starting", schema.Title)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
	logger.Info("Server stopped")
}
