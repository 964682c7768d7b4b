package testValidator

import (
	"cbt/middleware"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// sessionPattern matches academic term labels such as "2025/2026" and
// "2025/2026 Semester 1".
var sessionPattern = regexp.MustCompile(`^\d{4}/\d{4}( Semester [12])?$`)

// TestRequest is the payload for test create and update. Questions are
// attached by id and must already exist.
type TestRequest struct {
	Title         string    `json:"title"`
	Subject       string    `json:"subject"`
	Class         string    `json:"class"`
	Instructions  string    `json:"instructions"`
	Duration      int       `json:"duration"`
	Randomize     bool      `json:"randomize"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	Session       string    `json:"session"`
	QuestionCount int       `json:"questionCount"`
	QuestionIDs   []uint    `json:"questions"`
}

// CheckTest validates a test payload and returns an errors map naming
// every invalid or missing field.
func CheckTest(reqData *TestRequest) map[string]string {
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
	if reqData.Duration <= 0 {
		errors["duration"] = "Duration must be greater than 0!"
	}
	if reqData.QuestionCount <= 0 {
		errors["questionCount"] = "Question count must be greater than 0!"
	}
	if reqData.StartAt.IsZero() {
		errors["startAt"] = "Availability start is required!"
	}
	if reqData.EndAt.IsZero() {
		errors["endAt"] = "Availability end is required!"
	} else if !reqData.EndAt.After(reqData.StartAt) {
		errors["endAt"] = "Availability end must be after start!"
	}
	if !sessionPattern.MatchString(reqData.Session) {
		errors["session"] = "Session must match YYYY/YYYY or YYYY/YYYY Semester 1|2!"
	}
	if len(reqData.QuestionIDs) > reqData.QuestionCount {
		errors["questions"] = "More questions than the declared question count!"
	}

	return errors
}

// Save validates test create and update payloads.
func Save() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TestRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := CheckTest(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Submit validates the submission payload. An empty answers map is
// allowed and simply scores zero.
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers map[string]string `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Answers == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"answers": "Answers are required!"})
		}

		return c.Next()
	}
}
