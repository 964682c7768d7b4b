package testController

import (
	"cbt/config"
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// Submit scores a submission and persists a result. Answers are keyed
// by question id and compared against the stored question order, not
// the possibly randomized presentation order.
func Submit(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	testID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid test id!", nil)
	}

	reqData := new(struct {
		Answers map[string]string `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var test models.Test
	if err := db.First(&test, testID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test not found!", nil)
	}

	if claims.Role == models.RoleStudent && !claims.EnrolledIn(test.Subject, test.Class) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this subject/class", nil)
	}

	now := time.Now()
	if !test.AvailableAt(now) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Test is not available!", nil)
	}

	// Historically resubmission just creates another result row. The
	// guard only engages when retakes are disabled by configuration.
	if !config.AppConfig.AllowRetakes {
		var existing models.Result
		if err := db.Where("test_id = ? AND user_id = ?", test.ID, claims.UserID).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You have already submitted this test!", nil)
		}
	}

	var questions []models.Question
	if err := db.Where("test_id = ?", test.ID).Order("id asc").Find(&questions).Error; err != nil {
		log.Printf("Error loading questions of test %d: %v", test.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load questions!", nil)
	}

	// Guards against a teacher emptying the test but not its count.
	if len(questions) != test.QuestionCount {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Test question count mismatch!", nil)
	}

	score := 0
	for _, q := range questions {
		if reqData.Answers[strconv.FormatUint(uint64(q.ID), 10)] == q.CorrectAnswer {
			score++
		}
	}

	// Subject, class and session are snapshots so later edits to the
	// test do not rewrite historical results.
	result := models.Result{
		TestID:         test.ID,
		UserID:         claims.UserID,
		Subject:        test.Subject,
		Class:          test.Class,
		Session:        test.Session,
		Answers:        datatypes.NewJSONType(reqData.Answers),
		Score:          score,
		TotalQuestions: test.QuestionCount,
		SubmittedAt:    now,
	}

	if err := db.Create(&result).Error; err != nil {
		log.Printf("Error saving result for test %d: %v", test.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save result!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Test submitted successfully.", result)
}
