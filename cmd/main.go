package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"charity-ledger/internal/adapter/amqp"
	"charity-ledger/internal/adapter/http"
	"charity-ledger/internal/adapter/memory"
	"charity-ledger/internal/adapter/postgres"
	"charity-ledger/internal/adapter/usecase"
	"charity-ledger/internal/config"
	"charity-ledger/internal/core/port"
	"charity-ledger/internal/db"
)

// main is the entry point of the charity ledger service. It loads
// configuration, optionally runs database migrations and seeding,
// initializes the repository and event bus, then starts the HTTP
// server. On receiving a termination signal it gracefully shuts down
// the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load .env if present, then configuration from the environment.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, relying on OS environment variables")
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Pick the repository implementation. The memory store carries no
	// persistence and is meant for demos and local development.
	var repo port.CampaignRepository
	switch cfg.Ledger.Storage {
	case "memory":
		repo = memory.NewCampaignRepository()
		logger.Info("using in-memory ledger store")
	default:
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
				os.Exit(1)
			}
			logger.Info("migrations applied successfully")
		}

		pool, poolErr := db.NewPostgresPool(ctx, cfg.Psql)
		if poolErr != nil {
			logger.Error("database connection error", slog.Any("error", poolErr))
			os.Exit(1)
		}
		defer pool.Close()

		if cfg.Psql.RunSeed {
			if err = db.Seed(ctx, pool); err != nil {
				logger.Error("seed error", slog.Any("error", err))
			} else {
				logger.Info("demo data seeded")
			}
		}
		repo = postgres.NewCampaignRepository(pool)
	}

	// Event bus: RabbitMQ when configured, in-process fan-out otherwise.
	var bus port.EventBus
	if cfg.AMQP.Enabled {
		amqpBus, dialErr := amqpbus.Dial(cfg.AMQP.Addr)
		if dialErr != nil {
			logger.Error("amqp connection error", slog.Any("error", dialErr))
			os.Exit(1)
		}
		defer amqpBus.Close()
		bus = amqpBus
	} else {
		bus = memory.NewBus()
	}

	treasury := memory.NewTreasury()
	svc := usecase.NewLedgerService(repo, treasury, bus, logger, cfg.Ledger.MinDonation)

	handler := httpadapter.NewHandler(svc, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
