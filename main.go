package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"webgestor/config"
	"webgestor/middleware"
	"webgestor/routes"
	"webgestor/store"
	"webgestor/utils"
	"webgestor/worker"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "SERVER: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Pick the collection storage backend
	var storage store.Storage
	switch config.AppConfig.StorageDriver {
	case "file":
		fs, err := store.NewFileStorage(config.AppConfig.DataDir)
		if err != nil {
			logger.Fatalf("Failed to initialize file storage: %v", err)
		}
		storage = fs
	default:
		storage = store.NewGormStorage(config.DB)
	}

	// Hydrate the store from persisted collections
	s, err := store.New(storage, log.New(os.Stdout, "STORE: ", log.LstdFlags))
	if err != nil {
		logger.Fatalf("Failed to initialize store: %v", err)
	}

	// Wire the user directory and seed the mirror
	directory := store.NewGormDirectory(config.DB)
	s.SetDirectory(directory)
	if profiles, err := directory.ListProfiles(); err != nil {
		logger.Printf("Initial user refresh failed: %v", err)
	} else {
		s.RefreshUsers(profiles)
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   config.AppConfig.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		MaxAge:           3600,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize and start the deadline scanner
	lookahead := time.Duration(config.AppConfig.DeadlineLookaheadHours) * time.Hour
	deadlineWorker := worker.NewDeadlineWorker(s, lookahead, log.New(os.Stdout, "DEADLINE: ", log.LstdFlags))
	go deadlineWorker.Start(ctx)

	// Forward notifications to email when SMTP is configured
	mailer := utils.NewMailer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUsername,
		config.AppConfig.SMTPPassword,
		config.AppConfig.FromEmail,
	)
	mailWorker := worker.NewNotificationMailWorker(s, mailer, log.New(os.Stdout, "MAIL: ", log.LstdFlags))
	go mailWorker.Start(ctx)

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Setup routes
	routes.SetupRoutes(app, s, directory)

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
