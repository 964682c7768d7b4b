package resultController

import (
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	"cbt/utils"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var exportHeader = []string{"Username", "Name", "Surname", "Class", "Subject", "Session", "Score", "Total", "Submitted At"}

// exportRows flattens results into printable rows, joining in the
// student record for each row.
func exportRows(db *gorm.DB, results []models.Result) [][]string {
	userIDs := make([]uint, 0, len(results))
	for _, r := range results {
		userIDs = append(userIDs, r.UserID)
	}

	usersByID := make(map[uint]models.User)
	if len(userIDs) > 0 {
		var users []models.User
		if err := db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			log.Printf("Error loading students for export: %v", err)
		}
		for _, u := range users {
			usersByID[u.ID] = u
		}
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		u := usersByID[r.UserID]
		rows = append(rows, []string{
			u.Username,
			u.Name,
			u.Surname,
			r.Class,
			r.Subject,
			r.Session,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.TotalQuestions),
			r.SubmittedAt.Format("2006-01-02 15:04"),
		})
	}

	return rows
}

// sendExport writes the rows in the requested format; CSV unless
// ?format=pdf is given. Errors stay JSON, success switches to bytes.
func sendExport(c *fiber.Ctx, baseName, title string, rows [][]string) error {
	if c.Query("format") == "pdf" {
		return utils.SendPDF(c, baseName+".pdf", title, exportHeader, rows)
	}
	return utils.SendCSV(c, baseName+".csv", exportHeader, rows)
}

// ExportByTest exports all results of one test as CSV or PDF
func ExportByTest(c *fiber.Ctx) error {
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

	var results []models.Result
	if err := db.Where("test_id = ?", test.ID).Order("score desc").Find(&results).Error; err != nil {
		log.Printf("Error loading results of test %d: %v", test.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export results!", nil)
	}

	baseName := fmt.Sprintf("results_test_%d", test.ID)
	return sendExport(c, baseName, test.Title, exportRows(db, results))
}

// ExportBySubject exports all results of a subject+class as CSV or PDF
func ExportBySubject(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	className := c.Params("className")
	subject := c.Params("subject")

	if claims.Role == models.RoleTeacher && !claims.AssignedTo(subject, className) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not assigned to this subject/class", nil)
	}

	db := database.Database.Db

	var results []models.Result
	if err := db.Where("subject = ? AND class = ?", subject, className).Order("score desc").Find(&results).Error; err != nil {
		log.Printf("Error loading results of %s/%s: %v", subject, className, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export results!", nil)
	}

	baseName := fmt.Sprintf("results_%s_%s", className, subject)
	title := fmt.Sprintf("%s - %s results", className, subject)
	return sendExport(c, baseName, title, exportRows(db, results))
}
