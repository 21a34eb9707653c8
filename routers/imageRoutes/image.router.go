package imageRoutes

import (
	imageControllers "feedbackapi/controllers/image"
	"feedbackapi/middleware"
	imageValidators "feedbackapi/validators/image"

	"github.com/gofiber/fiber/v2"
)

func SetupImageRoutes(app *fiber.App) {
	imageGroup := app.Group("/images", middleware.JWTMiddleware)

	imageGroup.Post("/upload", imageControllers.Upload)
	imageGroup.Post("/presigned-url", imageValidators.PresignedURL(), imageControllers.GetPresignedUploadURL)
	imageGroup.Delete("/delete", imageValidators.Delete(), imageControllers.Delete)
}
