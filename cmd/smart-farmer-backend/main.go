package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/KhoTheProgrammer/smart-farmer-backend/internal/api/http"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/cache"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/catalog"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/config"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/envdata"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/envdata/providers"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/scheduler"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/season"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/suitability"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Upstream clients with resilience (backoff + circuit breaker).
	nasaPower := providers.NewNASAPowerClient(httpClient, cfg.NASAPowerURL)
	soilGrids := providers.NewSoilGridsClient(httpClient, cfg.SoilGridsURL)

	// Cached fetch services, one store per upstream.
	weatherService := envdata.NewWeatherService(nasaPower, cache.NewMemoryStore(), cfg.CacheTTL)
	soilService := envdata.NewSoilService(soilGrids, cache.NewMemoryStore(), cfg.CacheTTL)

	// Reference data.
	crops := catalog.NewCropRepository()
	catalog.SeedCrops(crops)
	locations := catalog.NewLocationRepository()
	catalog.SeedLocations(locations)

	// Domain services.
	calendar := season.NewCalendarService(locations, weatherService)
	ranker := suitability.NewRanker(crops, soilService)

	// Scheduler that periodically recalculates planting windows.
	sched := scheduler.New(locations, calendar, cfg.RecalcInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "smart-farmer-backend",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
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

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "smart-farmer-backend",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Weather:            weatherService,
		Soil:               soilService,
		Calendar:           calendar,
		Ranker:             ranker,
		Crops:              crops,
		Locations:          locations,
		GridMaxConcurrency: cfg.GridMaxConcurrency,
	})

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
