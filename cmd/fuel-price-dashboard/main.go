package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/canaryfuel/fuel-price-dashboard/internal/api/http"
	"github.com/canaryfuel/fuel-price-dashboard/internal/config"
	"github.com/canaryfuel/fuel-price-dashboard/internal/fuel"
	"github.com/canaryfuel/fuel-price-dashboard/internal/fuel/upstream"
	"github.com/canaryfuel/fuel-price-dashboard/internal/scheduler"
	"github.com/canaryfuel/fuel-price-dashboard/internal/warehouse"
)

func main() {
	log := config.NewLogger()

	if err := godotenv.Load(); err != nil {
		log.WithError(err).Info("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	db, err := warehouse.Open(cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("failed to open warehouse")
	}
	store := warehouse.NewStore(db)

	// Shared HTTP client for the outbound snapshot fetch.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	client := upstream.NewClient(httpClient, cfg.APIEndpoint)

	service := fuel.NewService(store, client, log)

	// Scheduler that periodically runs an ingestion.
	sched := scheduler.New(service, cfg.FetchInterval, log)
	if err := sched.Start(); err != nil {
		log.WithError(err).Fatal("failed to start scheduler")
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "fuel-price-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "fuel-price-dashboard",
		})
	})

	httpapi.RegisterRoutes(app, service, cfg.TopN)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("fiber server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
}
