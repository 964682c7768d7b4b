package examValidator

import (
	"cbt/middleware"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ExamRequest is the payload for exam create and update.
type ExamRequest struct {
	Title   string    `json:"title"`
	Subject string    `json:"subject"`
	Class   string    `json:"class"`
	Session string    `json:"session"`
	Date    time.Time `json:"date"`
}

func checkExam(reqData *ExamRequest) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(reqData.Title) == "" {
		errors["title"] = "Title is required!"
	}
	if strings.TrimSpace(reqData.Subject) == "" {
		errors["subject"] = "Subject is required!"
	}
	if strings.TrimSpace(reqData.Class) == "" {
		errors["class"] = "Class is required!"
	}
	if reqData.Date.IsZero() {
		errors["date"] = "Date is required!"
	}

	return errors
}

// Save validates exam create and update payloads.
func Save() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ExamRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := checkExam(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
