package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "blueeyes-backoffice/internal/api/http"
	"blueeyes-backoffice/internal/config"
	"blueeyes-backoffice/internal/logger"
	"blueeyes-backoffice/internal/notify"
	"blueeyes-backoffice/internal/repository/postgres"
	"blueeyes-backoffice/internal/security"
	"blueeyes-backoffice/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Blue Eyes Backoffice...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Services
	rateSvc := service.NewRateService(store.RateRepository)
	inventorySvc := service.NewInventoryService(store.TransactionRepository, store.InventoryRepository, service.SyncPolicy{
		Debounce:        time.Duration(cfg.Inventory.DebounceMillis) * time.Millisecond,
		MinSyncInterval: time.Duration(cfg.Inventory.MinSyncIntervalSec) * time.Second,
	})
	clientSvc := service.NewClientService(store.ClientRepository)
	orderSvc := service.NewOrderService(store.TransactionRepository, store.ClientRepository, rateSvc, inventorySvc)
	archiveSvc := service.NewArchiveService(store.TransactionRepository, cfg.Archive.ExportDir, cfg.Archive.RetentionMonths)
	analysisSvc := service.NewAnalysisService(store.TransactionRepository)
	authSvc := service.NewAuthService(cfg.Auth.Users, tokenManager)

	// Invalidate in-process caches when another writer touches the tables.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener, err := notify.NewListener(cfg.GetDatabaseConnectionString(), map[string]func(){
		"transactions":   inventorySvc.MarkStale,
		"exchange_rates": rateSvc.MarkStale,
		"inventory":      inventorySvc.MarkStale,
		"clients":        clientSvc.MarkStale,
	})
	if err != nil {
		logger.Error("Failed to start database listener", "error", err)
		log.Fatalf("Failed to start database listener: %v", err)
	}
	go listener.Run(ctx)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:      authSvc,
		Clients:   clientSvc,
		Orders:    orderSvc,
		Rates:     rateSvc,
		Inventory: inventorySvc,
		Archive:   archiveSvc,
		Analysis:  analysisSvc,
		Employees: cfg.Employees(),
	}, tokenManager, cfg.Archive.ExportDir)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	// Persist any pending balance snapshot before the process exits.
	if err := inventorySvc.Flush(shutdownCtx); err != nil {
		logger.Error("Failed to flush inventory snapshot", "error", err)
	}
	cancel()
	logger.Info("Shutdown complete. Goodbye!")
}
