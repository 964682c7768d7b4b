package resultController

import (
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// ListResults returns results scoped to the caller: students their own,
// teachers their assigned subject+class pairs, admins everything.
func ListResults(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	if claims.Role == models.RoleStudent {
		var results []models.Result
		if err := db.Where("user_id = ?", claims.UserID).Order("submitted_at desc").Find(&results).Error; err != nil {
			log.Printf("Error listing results: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully.", results)
	}

	var results []models.Result
	if err := db.Order("submitted_at desc").Find(&results).Error; err != nil {
		log.Printf("Error listing results: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	if claims.Role == models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully.", results)
	}

	visible := make([]models.Result, 0, len(results))
	for _, r := range results {
		if models.ContainsAssignment(claims.Subjects, r.Subject, r.Class) {
			visible = append(visible, r)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully.", visible)
}

// ListByTest returns all results of one test
func ListByTest(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	testID, err := strconv.Atoi(c.Params("testId"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid test id!", nil)
	}

	db := database.Database.Db

	var test models.Test
	if err := db.First(&test, testID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test not found!", nil)
	}

	if claims.Role == models.RoleTeacher && !claims.AssignedTo(test.Subject, test.Class) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not assigned to this subject/class", nil)
	}

	query := db.Where("test_id = ?", test.ID)
	if claims.Role == models.RoleStudent {
		query = query.Where("user_id = ?", claims.UserID)
	}

	var results []models.Result
	if err := query.Order("score desc").Find(&results).Error; err != nil {
		log.Printf("Error fetching results of test %d: %v", test.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully.", results)
}

// GetDetails returns one result with its student, test and the cheat
// log rows recorded for that student on that test. Violation review is
// manual; this is the view it happens in.
func GetDetails(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	resultID, err := strconv.Atoi(c.Params("resultId"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid result id!", nil)
	}

	db := database.Database.Db

	var result models.Result
	if err := db.First(&result, resultID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Result not found!", nil)
	}

	if claims.Role == models.RoleStudent && result.UserID != claims.UserID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You may only view your own results!", nil)
	}
	if claims.Role == models.RoleTeacher && !claims.AssignedTo(result.Subject, result.Class) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not assigned to this subject/class", nil)
	}

	var student models.User
	if err := db.First(&student, result.UserID).Error; err != nil {
		log.Printf("Student %d of result %d missing: %v", result.UserID, result.ID, err)
	}

	var test models.Test
	if err := db.Preload("Questions").First(&test, result.TestID).Error; err != nil {
		log.Printf("Test %d of result %d missing: %v", result.TestID, result.ID, err)
	}

	var cheatLogs []models.CheatLog
	if err := db.Where("test_id = ? AND user_id = ?", result.TestID, result.UserID).Order("timestamp asc").Find(&cheatLogs).Error; err != nil {
		log.Printf("Error loading cheat logs for result %d: %v", result.ID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result details fetched successfully.", fiber.Map{
		"result":    result,
		"student":   student,
		"test":      test,
		"cheatLogs": cheatLogs,
	})
}

// UpdateResult applies an admin score or answer correction
func UpdateResult(c *fiber.Ctx) error {
	resultID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid result id!", nil)
	}

	reqData := new(struct {
		Score   *int              `json:"score"`
		Answers map[string]string `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var result models.Result
	if err := db.First(&result, resultID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Result not found!", nil)
	}

	if reqData.Score != nil {
		if *reqData.Score < 0 || *reqData.Score > result.TotalQuestions {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"score": "Score must be between 0 and the total question count!",
			})
		}
		result.Score = *reqData.Score
	}
	if reqData.Answers != nil {
		result.Answers = datatypes.NewJSONType(reqData.Answers)
	}

	if err := db.Save(&result).Error; err != nil {
		log.Printf("Error updating result %d: %v", result.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update result!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result updated successfully.", result)
}
