package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simulak/simulak-backend/internal/adapter/httpapi"
	"github.com/simulak/simulak-backend/internal/adapter/repository/sqlite"
	"github.com/simulak/simulak-backend/internal/config"
	"github.com/simulak/simulak-backend/internal/logger"
	"github.com/simulak/simulak-backend/internal/usecase/marketdata"
	"github.com/simulak/simulak-backend/internal/usecase/report"
	"github.com/simulak/simulak-backend/internal/usecase/setup"
	"github.com/simulak/simulak-backend/internal/usecase/simulation"
)

func main() {
	// 1. Load configuration and logging
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	// 2. Open the database and run migrations
	db, err := sqlite.NewDB(cfg.DatabasePath)
	if err != nil {
		logger.L.Error("Failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3. Initialize repositories
	simRepo := sqlite.NewSimulationRepository(db)
	setupRepo := sqlite.NewSetupRepository(db)

	// 4. Initialize services (use cases)
	simulationService := simulation.NewService(simRepo)
	setupService := setup.NewService(setupRepo)
	reportService := report.NewService(nil)

	var provider marketdata.Provider = marketdata.DefaultStaticProvider()
	if cfg.QuoteProvider == "yahoo" {
		provider = marketdata.NewYahooProvider()
	}
	quoteService := marketdata.NewService(provider, marketdata.NewQuoteCache(cfg.QuoteTTL, nil))

	// 5. Build the HTTP server
	api := httpapi.NewServer(
		simulationService,
		setupService,
		reportService,
		quoteService,
		httpapi.WithCORS(cfg.AllowedOrigins),
		httpapi.WithRateLimit(cfg.RateLimitInterval, cfg.RateLimitBurst),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.L.Info("HTTP server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	waitForShutdown(server)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.L.Info("Received signal, shutting down gracefully", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.L.Error("Forced shutdown", "error", err)
	}
	logger.L.Info("HTTP server stopped")
}
