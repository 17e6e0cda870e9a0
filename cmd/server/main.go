/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll ledger & billing engine server.
  Handles configuration, dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Initialize the SQLite store
  3. Wire deriver, aggregator, lifecycle manager and handler
  4. Start the derivation scheduler
  5. Start the server with graceful shutdown

CONFIGURATION:
  Flags, with environment fallbacks (flag wins):
  -port             PORT               HTTP server port (default: 8080)
  -db               DATABASE_PATH      SQLite path (default: payroll.db;
                                       ":memory:" for in-memory)
  -guard-rate       GUARD_DAILY_RATE   Flat daily rate for derivation
                                       (default: 500)
  -derive-interval  DERIVE_INTERVAL    Scheduler interval (default: 12h)
  -scheduler        -                  Enable the scheduler (default: true)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop the scheduler, stop accepting connections,
  wait up to 30s for active requests, close the database.

SEE ALSO:
  - api/server.go: Router configuration
  - api/scheduler.go: Periodic derivation
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/billing"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

func main() {
	// .env is optional; flags override anything it sets
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("DATABASE_PATH", "payroll.db"), "SQLite database path")
	guardRate := flag.String("guard-rate", envStr("GUARD_DAILY_RATE", "500"), "flat daily rate for ledger derivation")
	deriveInterval := flag.Duration("derive-interval", envDuration("DERIVE_INTERVAL", 12*time.Hour), "derivation scheduler interval")
	schedulerOn := flag.Bool("scheduler", true, "enable the derivation scheduler")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rate, err := decimal.NewFromString(*guardRate)
	if err != nil {
		log.Fatalf("invalid guard rate %q: %v", *guardRate, err)
	}

	// Store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer store.Close()

	// Domain wiring
	cfg := payroll.DefaultConfig()
	cfg.GuardDailyRate = rate
	deriver := payroll.NewDeriver(store, store, cfg, log)
	aggregator := billing.NewAggregator(store, store)
	lifecycle := billing.NewLifecycle(store)

	handler := api.NewHandler(deriver, store, aggregator, lifecycle, store, store, log)
	router := api.NewRouter(handler)

	// Scheduler
	scheduler := api.NewDerivationScheduler(deriver, log)
	scheduler.Interval = *deriveInterval
	scheduler.Enabled = *schedulerOn
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("server starting on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Info("server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
