package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alextreichler/carrental/internal/config"
	"github.com/alextreichler/carrental/internal/database"
	"github.com/alextreichler/carrental/internal/events"
	"github.com/alextreichler/carrental/internal/handlers"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// 2. Init store
	db, err := database.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to initialize store", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Store ready", "driver", cfg.DBDriver)

	// 3. Events
	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		rmq, err := events.DialRabbitMQ(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			slog.Error("Failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer rmq.Close()
		publisher = rmq
	} else {
		slog.Info("AMQP_URL not set, domain events disabled")
	}

	// 4. Routes and middleware
	// Chain: Logger -> Security Headers -> CORS -> Router
	router := handlers.NewRouter(db, publisher, handlers.Options{})
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			handlers.CORSMiddleware(cfg.CORSOrigin)(router),
		),
	)

	// 5. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "api", "http://localhost:"+cfg.Port+"/api")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
