package cheatLogRoutes

import (
	cheatLogControllers "cbt/controllers/cheatlog"
	"cbt/middleware"
	"cbt/models"
	cheatLogValidators "cbt/validators/cheatlog"

	"github.com/gofiber/fiber/v2"
)

func SetupCheatLogRoutes(app *fiber.App) {
	cheatLogGroup := app.Group("/cheat-logs", middleware.Protected)

	cheatLogGroup.Post("/", middleware.RequireRole(models.RoleStudent), cheatLogValidators.Create(), cheatLogControllers.Create)
	cheatLogGroup.Get("/:testId", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), cheatLogControllers.ListByTest)
}
