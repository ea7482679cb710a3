package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/pastelhq/landing-api/internal/config"
	"github.com/pastelhq/landing-api/internal/db"
	"github.com/pastelhq/landing-api/internal/handlers"
	"github.com/pastelhq/landing-api/internal/services"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	store := db.Connect(cfg.DatabaseURL, cfg.DatabaseName)
	defer func() {
		if err := store.Disconnect(context.Background()); err != nil {
			log.Printf("MongoDB disconnect failed: %v", err)
		}
	}()

	authService := services.NewAuthService(store)
	blogService := services.NewBlogService(store)
	contactService := services.NewContactService(store)

	// Seed sample posts up front so the first blog request doesn't have to.
	if store.Available() {
		if err := blogService.EnsureSamplePosts(context.Background()); err != nil {
			log.Printf("Warning: blog seeding failed: %v", err)
		}
	}

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	system := handlers.NewSystemHandler(store, cfg.DatabaseURL)
	auth := handlers.NewAuthHandler(authService)
	blog := handlers.NewBlogHandler(blogService)
	contact := handlers.NewContactHandler(contactService)

	app.Get("/", system.Root)
	app.Get("/test", system.Test)

	api := app.Group("/api")
	api.Get("/pricing", handlers.PricingHandler)
	api.Get("/blog", blog.List)
	api.Get("/blog/:slug", blog.GetBySlug)
	api.Post("/contact", contact.Submit)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", auth.Register)
	authRoutes.Post("/login", auth.Login)

	// Not log.Fatal: the deferred disconnect must still run on shutdown.
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
