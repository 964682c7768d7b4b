package examRoutes

import (
	examControllers "cbt/controllers/exam"
	"cbt/middleware"
	"cbt/models"
	examValidators "cbt/validators/exam"

	"github.com/gofiber/fiber/v2"
)

func SetupExamRoutes(app *fiber.App) {
	examGroup := app.Group("/exams", middleware.Protected)

	examGroup.Get("/", examControllers.ListExams)
	examGroup.Post("/", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), examValidators.Save(), examControllers.CreateExam)
	examGroup.Put("/:id", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), examValidators.Save(), examControllers.UpdateExam)
	examGroup.Delete("/:id", middleware.RequireRole(models.RoleAdmin), examControllers.DeleteExam)
}
