package testController

import (
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	testValidator "cbt/validators/test"
	"log"
	"math/rand"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// loadTestQuestions checks that every referenced question exists,
// matches the test's subject and class, and is not already attached to
// another test. Returns an errors map in the validation shape.
func loadTestQuestions(db *gorm.DB, reqData *testValidator.TestRequest, testID uint) ([]models.Question, map[string]string) {
	if len(reqData.QuestionIDs) == 0 {
		return nil, nil
	}

	var questions []models.Question
	if err := db.Where("id IN ?", reqData.QuestionIDs).Find(&questions).Error; err != nil {
		log.Printf("Error loading test questions: %v", err)
		return nil, map[string]string{"questions": "Failed to load questions!"}
	}

	if len(questions) != len(reqData.QuestionIDs) {
		return nil, map[string]string{"questions": "One or more questions do not exist!"}
	}

	for _, q := range questions {
		if q.Subject != reqData.Subject || q.Class != reqData.Class {
			return nil, map[string]string{"questions": "Every question must match the test subject and class!"}
		}
		if q.TestID != nil && *q.TestID != testID {
			return nil, map[string]string{"questions": "One or more questions already belong to another test!"}
		}
	}

	return questions, nil
}

// attachQuestions repoints the question set of a test: previously
// attached questions are detached first, then the new set is claimed.
func attachQuestions(db *gorm.DB, testID uint, questionIDs []uint) error {
	if err := db.Model(&models.Question{}).Where("test_id = ?", testID).Update("test_id", nil).Error; err != nil {
		return err
	}
	if len(questionIDs) == 0 {
		return nil
	}
	return db.Model(&models.Question{}).Where("id IN ?", questionIDs).Update("test_id", testID).Error
}

// ListTests returns tests scoped to the caller's assignments. Unlike
// the other list routes, a teacher or student with no assignments at
// all gets a Bad Request rather than an empty list.
func ListTests(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	if claims.Role == models.RoleAdmin {
		var tests []models.Test
		if err := db.Order("start_at desc").Find(&tests).Error; err != nil {
			log.Printf("Error listing tests: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tests!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Tests fetched successfully.", tests)
	}

	assignments := claims.Assignments()
	if len(assignments) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No subjects/classes assigned", nil)
	}

	var tests []models.Test
	if err := db.Order("start_at desc").Find(&tests).Error; err != nil {
		log.Printf("Error listing tests: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tests!", nil)
	}

	visible := make([]models.Test, 0, len(tests))
	for _, t := range tests {
		if models.ContainsAssignment(assignments, t.Subject, t.Class) {
			visible = append(visible, t)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tests fetched successfully.", visible)
}

// ListTestsAdmin returns every test with its questions preloaded
func ListTestsAdmin(c *fiber.Ctx) error {
	var tests []models.Test
	if err := database.Database.Db.Preload("Questions").Order("start_at desc").Find(&tests).Error; err != nil {
		log.Printf("Error listing tests: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tests fetched successfully.", tests)
}

// GetTest returns a single test with its questions. Students must be
// enrolled in the test's subject+class and never see correct answers;
// with the randomize flag set their question order is shuffled.
func GetTest(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	testID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid test id!", nil)
	}

	var test models.Test
	if err := database.Database.Db.Preload("Questions").First(&test, testID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test not found!", nil)
	}

	if claims.Role == models.RoleStudent {
		if !claims.EnrolledIn(test.Subject, test.Class) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this subject/class", nil)
		}

		// Presentation order only; scoring always walks the stored order.
		if test.Randomize {
			rand.Shuffle(len(test.Questions), func(i, j int) {
				test.Questions[i], test.Questions[j] = test.Questions[j], test.Questions[i]
			})
		}

		for i := range test.Questions {
			test.Questions[i].CorrectAnswer = ""
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test fetched successfully.", test)
}

// CreateTest creates a test and claims its questions
func CreateTest(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(testValidator.TestRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if !claims.AssignedTo(reqData.Subject, reqData.Class) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not assigned to this subject/class", nil)
	}

	db := database.Database.Db

	if _, errs := loadTestQuestions(db, reqData, 0); errs != nil {
		return middleware.ValidationErrorResponse(c, errs)
	}

	newTest := models.Test{
		Title:         reqData.Title,
		Subject:       reqData.Subject,
		Class:         reqData.Class,
		Instructions:  reqData.Instructions,
		Duration:      reqData.Duration,
		Randomize:     reqData.Randomize,
		StartAt:       reqData.StartAt,
		EndAt:         reqData.EndAt,
		Session:       reqData.Session,
		QuestionCount: reqData.QuestionCount,
		CreatedByID:   claims.UserID,
	}

	if err := db.Create(&newTest).Error; err != nil {
		log.Printf("Error creating test: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create test!", nil)
	}

	if err := attachQuestions(db, newTest.ID, reqData.QuestionIDs); err != nil {
		log.Printf("Error attaching questions to test %d: %v", newTest.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Test created successfully.", newTest)
}

// UpdateTest updates a test and replaces its question set. Admins may
// edit any test, teachers only their own.
func UpdateTest(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	testID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid test id!", nil)
	}

	reqData := new(testValidator.TestRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var test models.Test
	if err := db.First(&test, testID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test not found!", nil)
	}

	if claims.Role != models.RoleAdmin && test.CreatedByID != claims.UserID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the creator may edit this test!", nil)
	}
	if !claims.AssignedTo(reqData.Subject, reqData.Class) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not assigned to this subject/class", nil)
	}

	if _, errs := loadTestQuestions(db, reqData, test.ID); errs != nil {
		return middleware.ValidationErrorResponse(c, errs)
	}

	test.Title = reqData.Title
	test.Subject = reqData.Subject
	test.Class = reqData.Class
	test.Instructions = reqData.Instructions
	test.Duration = reqData.Duration
	test.Randomize = reqData.Randomize
	test.StartAt = reqData.StartAt
	test.EndAt = reqData.EndAt
	test.Session = reqData.Session
	test.QuestionCount = reqData.QuestionCount

	if err := db.Save(&test).Error; err != nil {
		log.Printf("Error updating test %d: %v", test.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update test!", nil)
	}

	if err := attachQuestions(db, test.ID, reqData.QuestionIDs); err != nil {
		log.Printf("Error attaching questions to test %d: %v", test.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test updated successfully.", test)
}

// DeleteTest removes a test and cascades to its results. The cascade is
// two separate deletes with no transaction; a crash in between leaves
// orphaned results for the daily sweep.
func DeleteTest(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	testID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid test id!", nil)
	}

	db := database.Database.Db

	var test models.Test
	if err := db.First(&test, testID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test not found!", nil)
	}

	if claims.Role != models.RoleAdmin && test.CreatedByID != claims.UserID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the creator may delete this test!", nil)
	}

	if err := db.Where("test_id = ?", test.ID).Delete(&models.Result{}).Error; err != nil {
		log.Printf("Error deleting results of test %d: %v", test.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete test results!", nil)
	}

	if err := db.Model(&models.Question{}).Where("test_id = ?", test.ID).Update("test_id", nil).Error; err != nil {
		log.Printf("Error detaching questions of test %d: %v", test.ID, err)
	}

	if err := db.Delete(&test).Error; err != nil {
		log.Printf("Error deleting test %d: %v", test.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete test!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test deleted successfully.", nil)
}

// GetTestResults returns all results of one test
func GetTestResults(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	testID, err := strconv.Atoi(c.Params("id"))
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

	var results []models.Result
	if err := db.Where("test_id = ?", test.ID).Order("score desc").Find(&results).Error; err != nil {
		log.Printf("Error fetching results of test %d: %v", test.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully.", results)
}
