package main

import (
	"feedbackapi/config"
	"feedbackapi/database"
	adminRoutes "feedbackapi/routers/adminRoutes"
	exportRoutes "feedbackapi/routers/exportRoutes"
	feedbackRoutes "feedbackapi/routers/feedbackRoutes"
	imageRoutes "feedbackapi/routers/imageRoutes"
	"feedbackapi/storage"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb(config.AppConfig)

	if err := storage.InitializeS3(config.AppConfig); err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.CORSOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "message": "Feedback API is running"})
	})

	adminRoutes.SetupAdminRoutes(app)
	feedbackRoutes.SetupFeedbackRoutes(app)
	exportRoutes.SetupExportRoutes(app)
	imageRoutes.SetupImageRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
