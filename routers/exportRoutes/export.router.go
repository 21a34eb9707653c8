package exportRoutes

import (
	exportControllers "feedbackapi/controllers/export"
	"feedbackapi/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupExportRoutes(app *fiber.App) {
	app.Get("/export", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, exportControllers.Export)
}
