package cheatLogController

import (
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Create appends one violation row. Events are accepted as reported:
// no deduplication, no rate limit, rapid toggling makes one row each.
func Create(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		TestID uint   `json:"testId"`
		Type   string `json:"type"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	entry := models.CheatLog{
		TestID:    reqData.TestID,
		UserID:    claims.UserID,
		Type:      reqData.Type,
		Timestamp: time.Now(),
	}

	if err := database.Database.Db.Create(&entry).Error; err != nil {
		log.Printf("Error saving cheat log: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save log!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Violation logged.", entry)
}

// ListByTest returns all violations recorded for one test
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

	var logs []models.CheatLog
	if err := db.Where("test_id = ?", test.ID).Order("timestamp asc").Find(&logs).Error; err != nil {
		log.Printf("Error loading cheat logs of test %d: %v", test.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch logs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cheat logs fetched successfully.", logs)
}
