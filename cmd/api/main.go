package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"alfredoptarigan/flwts-grader/internal/config"
	"alfredoptarigan/flwts-grader/internal/handlers"
	"alfredoptarigan/flwts-grader/internal/repositories"
	"alfredoptarigan/flwts-grader/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize rubric source
	source, err := buildRubricSource(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize rubric source: %v", err)
	}

	rubricCache := services.NewRubricCache(source, cfg.Rubric.RefreshInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rubricCache.Load(ctx); err != nil {
		log.Fatalf("❌ Failed to load rubric: %v", err)
	}
	log.Printf("✅ Rubric %q loaded from %s source\n", rubricCache.Name(), cfg.Rubric.Source)

	rubricCache.Start(ctx)

	// Initialize services
	validatorService := services.NewValidatorService()
	graderService := services.NewGraderService()
	log.Println("✅ Services initialized successfully")

	// Initialize Handlers
	scoreHandler := handlers.NewScoreHandler(validatorService, graderService, rubricCache)
	rubricHandler := handlers.NewRubricHandler(rubricCache)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FLWTS Grader API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return uuid.New().String()
		},
	}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	handlers.SetupRoutes(app, scoreHandler, rubricHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		rubricCache.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func buildRubricSource(cfg *config.Config) (services.RubricSource, error) {
	switch cfg.Rubric.Source {
	case config.RubricSourceFile:
		return services.NewFileRubricSource(cfg.Rubric.Path), nil
	case config.RubricSourceDatabase:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return services.NewRepositoryRubricSource(cfg.Rubric.Name, repositories.NewRubricRepository(db)), nil
	default:
		return services.NewStaticRubricSource(services.DefaultRubricName, services.DefaultRubric()), nil
	}
}
