package classRoutes

import (
	classControllers "cbt/controllers/class"
	"cbt/middleware"
	"cbt/models"
	classValidators "cbt/validators/class"

	"github.com/gofiber/fiber/v2"
)

func SetupClassRoutes(app *fiber.App) {
	classGroup := app.Group("/classes", middleware.Protected)

	classGroup.Get("/", classControllers.ListClasses)
	classGroup.Post("/", middleware.RequireRole(models.RoleAdmin), classValidators.Create(), classControllers.CreateClass)
	classGroup.Put("/:id", middleware.RequireRole(models.RoleAdmin), classControllers.UpdateClass)
	classGroup.Delete("/:id", middleware.RequireRole(models.RoleAdmin), classControllers.DeleteClass)

	classGroup.Post("/subject", middleware.RequireRole(models.RoleAdmin), classValidators.AddSubject(), classControllers.AddSubject)
	classGroup.Delete("/subject/:classId/:subject", middleware.RequireRole(models.RoleAdmin), classControllers.RemoveSubject)
}
