package examController

import (
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	examValidator "cbt/validators/exam"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ListExams returns exams visible to the caller: admins see all,
// teachers and students only the subject+class pairs they are scoped to.
func ListExams(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var exams []models.Exam
	if err := database.Database.Db.Order("date desc").Find(&exams).Error; err != nil {
		log.Printf("Error listing exams: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exams!", nil)
	}

	if claims.Role == models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Exams fetched successfully.", exams)
	}

	visible := make([]models.Exam, 0, len(exams))
	for _, exam := range exams {
		if models.ContainsAssignment(claims.Assignments(), exam.Subject, exam.Class) {
			visible = append(visible, exam)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exams fetched successfully.", visible)
}

// CreateExam creates an exam for a subject+class the teacher is assigned to
func CreateExam(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(examValidator.ExamRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if !claims.AssignedTo(reqData.Subject, reqData.Class) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not assigned to this subject/class", nil)
	}

	newExam := models.Exam{
		Title:       reqData.Title,
		Subject:     reqData.Subject,
		Class:       reqData.Class,
		Session:     reqData.Session,
		Date:        reqData.Date,
		CreatedByID: claims.UserID,
	}

	if err := database.Database.Db.Create(&newExam).Error; err != nil {
		log.Printf("Error creating exam: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam created successfully.", newExam)
}

// UpdateExam updates an exam. Admins may edit any exam, teachers only
// their own and only within their assignments.
func UpdateExam(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	examID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	reqData := new(examValidator.ExamRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var exam models.Exam
	if err := db.First(&exam, examID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	if claims.Role != models.RoleAdmin && exam.CreatedByID != claims.UserID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the creator may edit this exam!", nil)
	}
	if !claims.AssignedTo(reqData.Subject, reqData.Class) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not assigned to this subject/class", nil)
	}

	exam.Title = reqData.Title
	exam.Subject = reqData.Subject
	exam.Class = reqData.Class
	exam.Session = reqData.Session
	exam.Date = reqData.Date

	if err := db.Save(&exam).Error; err != nil {
		log.Printf("Error updating exam %d: %v", exam.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam updated successfully.", exam)
}

// DeleteExam removes an exam
func DeleteExam(c *fiber.Ctx) error {
	examID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	db := database.Database.Db

	var exam models.Exam
	if err := db.First(&exam, examID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	if err := db.Delete(&exam).Error; err != nil {
		log.Printf("Error deleting exam %d: %v", exam.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam deleted successfully.", nil)
}
