package analyticsRoutes

import (
	analyticsControllers "cbt/controllers/analytics"
	"cbt/middleware"
	"cbt/models"

	"github.com/gofiber/fiber/v2"
)

func SetupAnalyticsRoutes(app *fiber.App) {
	analyticsGroup := app.Group("/analytics", middleware.Protected, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin))

	analyticsGroup.Get("/", analyticsControllers.Overview)
	analyticsGroup.Get("/subject/:className/:subject", analyticsControllers.BySubject)
}
