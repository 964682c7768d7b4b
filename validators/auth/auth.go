package authValidator

import (
	"cbt/middleware"
	"cbt/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// RegisterRequest is the payload for single and bulk registration.
type RegisterRequest struct {
	Username         string              `json:"username" validate:"required,min=3"`
	Password         string              `json:"password" validate:"required,min=6"`
	Name             string              `json:"name" validate:"required"`
	Surname          string              `json:"surname" validate:"required"`
	Role             string              `json:"role" validate:"required,oneof=admin teacher student"`
	Class            string              `json:"class"`
	Subjects         []models.Assignment `json:"subjects"`
	EnrolledSubjects []models.Assignment `json:"enrolledSubjects"`
}

// CheckRegister validates one registration entry and returns an errors
// map naming every invalid or missing field. Shared with bulk import.
func CheckRegister(reqData *RegisterRequest) map[string]string {
	errors := make(map[string]string)

	if err := validate.Struct(reqData); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			switch fieldErr.Field() {
			case "Username":
				errors["username"] = "Username must be at least 3 characters long!"
			case "Password":
				errors["password"] = "Password must be at least 6 characters long!"
			case "Name":
				errors["name"] = "Name is required!"
			case "Surname":
				errors["surname"] = "Surname is required!"
			case "Role":
				errors["role"] = "Role must be admin, teacher or student!"
			}
		}
	}

	return errors
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := CheckRegister(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// RegisterBulk validator middleware
func RegisterBulk() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Users []RegisterRequest `json:"users"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Users) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"users": "At least one user is required!"})
		}

		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username string `json:"username"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Username == "" {
			errors["username"] = "Username is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// UpdateUser validator middleware
func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name    string `json:"name"`
			Surname string `json:"surname"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		return c.Next()
	}
}
