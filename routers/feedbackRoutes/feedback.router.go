package feedbackRoutes

import (
	feedbackControllers "feedbackapi/controllers/feedback"
	"feedbackapi/middleware"
	feedbackValidators "feedbackapi/validators/feedback"

	"github.com/gofiber/fiber/v2"
)

func SetupFeedbackRoutes(app *fiber.App) {
	feedbackGroup := app.Group("/feedback")

	// Public
	feedbackGroup.Post("/submit", feedbackValidators.Submit(), feedbackControllers.Submit)
	feedbackGroup.Get("/published", feedbackControllers.GetPublished)

	// Admin only; literal paths must register ahead of /:id
	feedbackGroup.Get("/all", feedbackValidators.ListFilter(), middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, feedbackControllers.GetAll)
	feedbackGroup.Patch("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, feedbackControllers.Update)

	// Any authenticated identity; visibility enforced in the controller
	feedbackGroup.Get("/:id", middleware.JWTMiddleware, feedbackControllers.GetByID)
}
