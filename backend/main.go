package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"mathlearn/backend/config"
	"mathlearn/backend/db"
	"mathlearn/backend/middleware"
	"mathlearn/backend/quiz"
	"mathlearn/backend/routes"
	"mathlearn/backend/store"
	"mathlearn/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	gdb, err := db.Init(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	users := db.NewGormUserRepository(gdb)

	// Initialize logger
	logger := utils.InitLogger()

	// In-memory stores
	content := store.NewContentStore(cfg.ContentStrict)
	quizzes := store.NewQuizStore()
	progress := store.NewProgressStore()
	sessions := quiz.NewManager()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, users, content, quizzes, progress, sessions, cfg)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
