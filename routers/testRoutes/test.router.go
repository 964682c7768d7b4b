package testRoutes

import (
	resultControllers "cbt/controllers/result"
	testControllers "cbt/controllers/test"
	"cbt/middleware"
	"cbt/models"
	resultValidators "cbt/validators/result"
	testValidators "cbt/validators/test"

	"github.com/gofiber/fiber/v2"
)

func SetupTestRoutes(app *fiber.App) {
	testGroup := app.Group("/tests", middleware.Protected)

	testGroup.Get("/", testControllers.ListTests)
	testGroup.Get("/admin", middleware.RequireRole(models.RoleAdmin), testControllers.ListTestsAdmin)

	testGroup.Post("/", middleware.RequireRole(models.RoleTeacher), testValidators.Save(), testControllers.CreateTest)

	// Result corrections live under /tests as well as /results; both
	// routes share the same admin-only handler.
	testGroup.Put("/results/:id", middleware.RequireRole(models.RoleAdmin), resultValidators.Update(), resultControllers.UpdateResult)

	testGroup.Get("/:id", testControllers.GetTest)
	testGroup.Put("/:id", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), testValidators.Save(), testControllers.UpdateTest)
	testGroup.Delete("/:id", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), testControllers.DeleteTest)

	testGroup.Get("/:id/results", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), testControllers.GetTestResults)
	testGroup.Post("/:id/submit", testValidators.Submit(), testControllers.Submit)
}
