package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/pavans5097/EVS-pro/internal/delivery/http"
	"github.com/pavans5097/EVS-pro/internal/domain"
	"github.com/pavans5097/EVS-pro/internal/estimator"
	"github.com/pavans5097/EVS-pro/internal/repository/jsonfile"
	"github.com/pavans5097/EVS-pro/internal/repository/postgres"
	"github.com/pavans5097/EVS-pro/internal/service"
)

// estimateDelay is the quiet period before a live harvest-date estimate
// fires; estimateTTL sweeps abandoned form sessions.
const (
	estimateDelay = 500 * time.Millisecond
	estimateTTL   = 10 * time.Minute
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	// Repository: PostgreSQL when configured, the JSON file store otherwise
	var repo domain.CropRepository
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Could not connect to database: %v", err)
		}
		defer pool.Close()

		pg := postgres.NewPostgresRepository(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("Could not prepare database schema: %v", err)
		}
		log.Println("Connected to PostgreSQL")
		repo = pg
	} else {
		log.Printf("No DATABASE_URL set, storing crops in %s", cfg.CropsFile)
		repo = jsonfile.NewStore(cfg.CropsFile)
	}

	// Dependency Injection: Services
	weatherSvc := service.NewWeatherService()
	advisorySvc, err := service.NewAdvisoryService(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Could not create advisory service: %v", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("No GEMINI_API_KEY set, advisory features run in fallback mode")
	}
	resolver := estimator.NewResolver(advisorySvc)
	sessions := estimator.NewSessions(resolver, estimateDelay, estimateTTL)
	dashboardSvc := service.NewDashboardService(repo, weatherSvc, advisorySvc)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "EVS-Pro Farm API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	handler := http.NewHandler(repo, weatherSvc, advisorySvc, resolver, sessions, dashboardSvc)
	http.SetupRoutes(app, handler)

	// Graceful shutdown
	go func() {
		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Printf("Server starting on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

type Config struct {
	DatabaseURL  string
	GeminiAPIKey string
	GeminiModel  string
	CropsFile    string
	Port         string
	Env          string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", ""),
		CropsFile:    getEnv("CROPS_FILE", "data/crops.json"),
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
