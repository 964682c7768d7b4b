package resultRoutes

import (
	resultControllers "cbt/controllers/result"
	"cbt/middleware"
	"cbt/models"
	resultValidators "cbt/validators/result"

	"github.com/gofiber/fiber/v2"
)

func SetupResultRoutes(app *fiber.App) {
	resultGroup := app.Group("/results", middleware.Protected)

	resultGroup.Get("/", resultControllers.ListResults)

	resultGroup.Get("/export/test/:testId", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), resultControllers.ExportByTest)
	resultGroup.Get("/export/subject/:className/:subject", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), resultControllers.ExportBySubject)

	resultGroup.Get("/details/:resultId", resultControllers.GetDetails)
	resultGroup.Get("/:testId", resultControllers.ListByTest)
	resultGroup.Put("/:id", middleware.RequireRole(models.RoleAdmin), resultValidators.Update(), resultControllers.UpdateResult)
}
