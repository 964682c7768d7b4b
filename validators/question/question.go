package questionValidator

import (
	"cbt/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// QuestionRequest is the payload for question create, update and bulk
// import. Image uploads ride alongside as a multipart file field.
type QuestionRequest struct {
	Subject       string   `json:"subject" form:"subject"`
	Class         string   `json:"class" form:"class"`
	Text          string   `json:"text" form:"text"`
	Options       []string `json:"options" form:"options"`
	CorrectAnswer string   `json:"correctAnswer" form:"correctAnswer"`
}

// CheckQuestion validates one question entry and returns an errors map
// naming every invalid or missing field. Shared with bulk import.
func CheckQuestion(reqData *QuestionRequest) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(reqData.Subject) == "" {
		errors["subject"] = "Subject is required!"
	}
	if strings.TrimSpace(reqData.Class) == "" {
		errors["class"] = "Class is required!"
	}
	if strings.TrimSpace(reqData.Text) == "" {
		errors["text"] = "Question text is required!"
	}
	if len(reqData.Options) < 2 {
		errors["options"] = "At least two options are required!"
	}
	// CorrectAnswer membership in Options is the author's responsibility.
	if strings.TrimSpace(reqData.CorrectAnswer) == "" {
		errors["correctAnswer"] = "Correct answer is required!"
	}

	return errors
}

// Save validates question create and update payloads.
func Save() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := CheckQuestion(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Bulk validates the bulk import envelope; entries are checked one by
// one in the controller so invalid rows can be skipped.
func Bulk() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Questions []QuestionRequest `json:"questions"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Questions) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"questions": "At least one question is required!"})
		}

		return c.Next()
	}
}
