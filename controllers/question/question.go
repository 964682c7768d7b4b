package questionController

import (
	"cbt/config"
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	"cbt/utils"
	questionValidator "cbt/validators/question"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// saveImage stores an optional multipart "image" upload and returns its
// serving URL. A request without an image is not an error.
func saveImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return "", err
	}

	return utils.GetFileURL(path), nil
}

// ListQuestions returns questions visible to the caller. Teachers see
// their assigned subject+class pairs, students their enrollments,
// admins everything. No assignments means an empty list, not an error.
func ListQuestions(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var questions []models.Question
	if err := database.Database.Db.Order("id asc").Find(&questions).Error; err != nil {
		log.Printf("Error listing questions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	if claims.Role == models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully.", questions)
	}

	visible := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if models.ContainsAssignment(claims.Assignments(), q.Subject, q.Class) {
			visible = append(visible, q)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully.", visible)
}

// CreateQuestion creates a question for an assigned subject+class.
// Accepts multipart bodies with an optional image file.
func CreateQuestion(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(questionValidator.QuestionRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if !claims.AssignedTo(reqData.Subject, reqData.Class) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not assigned to this subject/class", nil)
	}

	imageURL, err := saveImage(c)
	if err != nil {
		log.Printf("Error saving question image: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	newQuestion := models.Question{
		Subject:       reqData.Subject,
		Class:         reqData.Class,
		Text:          reqData.Text,
		Options:       reqData.Options,
		CorrectAnswer: reqData.CorrectAnswer,
		ImageURL:      imageURL,
		CreatedByID:   claims.UserID,
	}

	if err := database.Database.Db.Create(&newQuestion).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully.", newQuestion)
}

// UpdateQuestion updates a question. Admins may edit any question,
// teachers only within their assignments.
func UpdateQuestion(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	questionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	reqData := new(questionValidator.QuestionRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var question models.Question
	if err := db.First(&question, questionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if !claims.AssignedTo(question.Subject, question.Class) || !claims.AssignedTo(reqData.Subject, reqData.Class) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not assigned to this subject/class", nil)
	}

	imageURL, err := saveImage(c)
	if err != nil {
		log.Printf("Error saving question image: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	question.Subject = reqData.Subject
	question.Class = reqData.Class
	question.Text = reqData.Text
	question.Options = reqData.Options
	question.CorrectAnswer = reqData.CorrectAnswer
	if imageURL != "" {
		question.ImageURL = imageURL
	}

	if err := db.Save(&question).Error; err != nil {
		log.Printf("Error updating question %d: %v", question.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully.", question)
}

// DeleteQuestion removes a question
func DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	db := database.Database.Db

	var question models.Question
	if err := db.First(&question, questionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if err := db.Delete(&question).Error; err != nil {
		log.Printf("Error deleting question %d: %v", question.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully.", nil)
}

// BulkImport inserts many questions at once. Entries that are invalid
// or outside the teacher's assignments are skipped; the call fails only
// when no entry was usable.
func BulkImport(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Questions []questionValidator.QuestionRequest `json:"questions"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db
	insertedIDs := make([]uint, 0, len(reqData.Questions))

	for i := range reqData.Questions {
		entry := &reqData.Questions[i]

		if len(questionValidator.CheckQuestion(entry)) > 0 {
			continue
		}
		if !claims.AssignedTo(entry.Subject, entry.Class) {
			continue
		}

		newQuestion := models.Question{
			Subject:       entry.Subject,
			Class:         entry.Class,
			Text:          entry.Text,
			Options:       entry.Options,
			CorrectAnswer: entry.CorrectAnswer,
			CreatedByID:   claims.UserID,
		}

		if err := db.Create(&newQuestion).Error; err != nil {
			log.Printf("Error importing question: %v", err)
			continue
		}

		insertedIDs = append(insertedIDs, newQuestion.ID)
	}

	if len(insertedIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No valid questions in import!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Questions imported successfully.", fiber.Map{
		"created": len(insertedIDs),
		"ids":     insertedIDs,
	})
}
