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

	httpapi "github.com/floatchat/floatchat/internal/api/http"
	"github.com/floatchat/floatchat/internal/argo"
	"github.com/floatchat/floatchat/internal/chat"
	"github.com/floatchat/floatchat/internal/chat/generator"
	"github.com/floatchat/floatchat/internal/config"
	"github.com/floatchat/floatchat/internal/scheduler"
	"github.com/floatchat/floatchat/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Dataset loader with its process-lifetime cache; warm the default
	// source up front so first queries never pay for construction.
	loader := argo.NewLoader(cfg.DataPath)
	loader.Load("")

	// Optional remote text generator; absent key means template-only.
	var gen chat.TextGenerator
	if cfg.HuggingFaceAPIKey != "" {
		httpClient := &http.Client{Timeout: cfg.GenerateTimeout}
		gen = generator.NewHuggingFace(httpClient, cfg.HuggingFaceAPIKey, cfg.HuggingFaceModel)
		log.Printf("INFO: remote text generation enabled (model %s)", cfg.HuggingFaceModel)
	} else {
		log.Printf("INFO: HUGGINGFACE_API_KEY not set; using template responses")
	}

	// History store: Postgres when configured and reachable, in-memory
	// otherwise.
	var historyStore chat.HistoryStore
	if cfg.DatabaseURL != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pg, err := store.NewPostgresStore(connectCtx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			log.Printf("WARN: could not connect to postgres (%v); falling back to in-memory history", err)
		} else {
			defer pg.Close()
			historyStore = pg
		}
	}
	if historyStore == nil {
		mem := store.NewMemoryStore(cfg.HistoryMaxAge)
		defer mem.Close()
		historyStore = mem
	}

	composer := chat.NewComposer(gen, cfg.GenerateTimeout)
	service := chat.NewService(loader, composer, historyStore, cfg.HistoryLimit)

	// Scheduler that periodically expires old history.
	sched := scheduler.New(historyStore, cfg.CleanupInterval, cfg.HistoryMaxAge)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "floatchat",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
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
			"status":  "healthy",
			"service": "floatchat",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
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
