package adminRoutes

import (
	adminControllers "feedbackapi/controllers/admin"
	"feedbackapi/middleware"
	adminValidators "feedbackapi/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin")

	adminGroup.Post("/login", adminValidators.Login(), adminControllers.Login)
	adminGroup.Post("/register", adminValidators.Register(), adminControllers.Register)
	adminGroup.Get("/dashboard", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, adminControllers.DashboardStats)
	adminGroup.Get("/users", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, adminControllers.ListUsers)
	adminGroup.Patch("/users/:id/role", adminValidators.UpdateUserRole(), middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, adminControllers.UpdateUserRole)
}
