package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"

	"paygate/internal/app"
	"paygate/internal/config"
	"paygate/internal/service"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}

	// Load configuration.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize storage.
	var db *sql.DB
	if cfg.Storage.Driver == config.StorageDriverPostgres {
		db, err = app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Println("Connected to PostgreSQL, schema applied")
	} else {
		log.Println("Using in-memory storage; data is lost on exit")
	}

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Println("Connected to Redis")
	}

	gateway := app.NewGateway(app.GatewayDeps{
		DB:          db,
		RedisClient: redisClient,
		NewRelicApp: nrApp,
		Simulation:  simulationConfig(cfg.Payment),
		BcryptCost:  cfg.Seed.BcryptCost,
	})

	if cfg.Seed.TestMerchant {
		if _, err := gateway.Merchants.SeedTestMerchant(ctx); err != nil {
			log.Fatalf("failed to seed test merchant: %v", err)
		}
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      gateway.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s (test mode: %t)", cfg.Server.Port, cfg.Payment.TestMode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Finalize pending authorizations first so waiting requests can respond.
	if err := gateway.Authorizer.Shutdown(shutdownCtx); err != nil {
		log.Printf("pending authorizations not finalized: %v", err)
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Println("Server exited")
}

func simulationConfig(cfg config.PaymentConfig) service.SimulationConfig {
	sim := service.DefaultSimulationConfig()
	sim.TestMode = cfg.TestMode
	sim.FixedDelay = cfg.TestProcessingDelay
	sim.FixedSuccess = cfg.TestPaymentSuccess
	return sim
}
