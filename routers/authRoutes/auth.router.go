package authRoutes

import (
	authControllers "cbt/controllers/auth"
	"cbt/middleware"
	"cbt/models"
	authValidators "cbt/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/register", middleware.Protected, middleware.RequireRole(models.RoleAdmin), authValidators.Register(), authControllers.Register)
	authGroup.Post("/register/bulk", middleware.Protected, middleware.RequireRole(models.RoleAdmin), authValidators.RegisterBulk(), authControllers.RegisterBulk)

	authGroup.Get("/me", middleware.Protected, authControllers.Me)

	authGroup.Get("/users", middleware.Protected, middleware.RequireRole(models.RoleAdmin), authControllers.ListUsers)
	authGroup.Put("/users/:id", middleware.Protected, middleware.RequireRole(models.RoleAdmin), authValidators.UpdateUser(), authControllers.UpdateUser)
	authGroup.Put("/users/:id/block", middleware.Protected, middleware.RequireRole(models.RoleAdmin), authControllers.BlockUser)
	authGroup.Delete("/users/:id", middleware.Protected, middleware.RequireRole(models.RoleAdmin), authControllers.DeleteUser)

	authGroup.Get("/export/students", middleware.Protected, middleware.RequireRole(models.RoleAdmin), authControllers.ExportStudents)
}
