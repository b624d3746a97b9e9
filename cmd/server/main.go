package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"blog_server/internal/config"
	"blog_server/internal/mailer"
	"blog_server/internal/publisher"
	"blog_server/internal/server"
	"blog_server/internal/service"
	"blog_server/internal/source/hygraph"
	"blog_server/internal/storage/memory"
	"blog_server/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	// Content API client (degraded construction when unconfigured)
	content := hygraph.New(hygraph.Config{
		Endpoint:     cfg.ContentAPI.Endpoint,
		Token:        cfg.ContentAPI.Token,
		Timeout:      cfg.ContentAPI.Timeout,
		InstantLimit: cfg.ContentAPI.InstantLimit,
		SearchLimit:  cfg.ContentAPI.SearchLimit,
		RelatedLimit: cfg.ContentAPI.RelatedLimit,
	}, logger)

	// Subscriber storage: postgres when configured, in-memory otherwise
	var subscribers service.SubscriberStore
	if cfg.Database.Enabled() {
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		subscribers = postgres.NewSubscriberStore(db)
		logger.Info("connected to database")
	} else {
		subscribers = memory.NewSubscriberStore()
		logger.Warn("no database configured, subscriber intake is in-memory only")
	}

	// Optional publish-event fanout
	var events service.EventPublisher
	if cfg.RabbitMQ.Enabled() {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	mail := mailer.New(mailer.Config{
		APIKey:  cfg.Email.APIKey,
		Timeout: cfg.ContentAPI.Timeout,
	}, logger)

	pages := service.NewPageService(content, logger)
	subscribe := service.NewSubscribeService(subscribers, logger)
	notify := service.NewNotifyService(mail, subscribers, events, cfg.Email, logger)

	e, err := server.NewRouter(server.RouterConfig{
		Logger:    logger,
		Pages:     pages,
		Subscribe: subscribe,
		Notify:    notify,
	})
	if err != nil {
		logger.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("starting blog server", "addr", cfg.Server.Addr)

	if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
