package questionRoutes

import (
	questionControllers "cbt/controllers/question"
	"cbt/middleware"
	"cbt/models"
	questionValidators "cbt/validators/question"

	"github.com/gofiber/fiber/v2"
)

func SetupQuestionRoutes(app *fiber.App) {
	questionGroup := app.Group("/questions", middleware.Protected)

	questionGroup.Get("/", questionControllers.ListQuestions)
	questionGroup.Post("/", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), questionValidators.Save(), questionControllers.CreateQuestion)
	questionGroup.Put("/:id", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), questionValidators.Save(), questionControllers.UpdateQuestion)
	questionGroup.Delete("/:id", middleware.RequireRole(models.RoleAdmin), questionControllers.DeleteQuestion)

	questionGroup.Post("/bulk", middleware.RequireRole(models.RoleTeacher), questionValidators.Bulk(), questionControllers.BulkImport)
}
