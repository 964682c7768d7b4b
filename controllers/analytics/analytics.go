package analyticsController

import (
	"cbt/config"
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Stats is a scan-and-reduce aggregate over a set of results. There is
// no pre-aggregation; every request recomputes from the filtered rows.
type Stats struct {
	Submissions    int        `json:"submissions"`
	AverageScore   float64    `json:"averageScore"`
	PassRate       float64    `json:"passRate"`
	CompletionRate float64    `json:"completionRate"`
	TopScorer      *TopScorer `json:"topScorer"`
}

type TopScorer struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Score    int    `json:"score"`
}

// computeStats reduces results against the enrolled student count.
// A pass is an absolute score at or above the configured pass mark.
func computeStats(db *gorm.DB, results []models.Result, enrolled int) Stats {
	stats := Stats{Submissions: len(results)}
	if len(results) == 0 {
		return stats
	}

	total := 0
	passed := 0
	top := results[0]
	submitters := make(map[uint]struct{})

	for _, r := range results {
		total += r.Score
		if r.Score >= config.AppConfig.PassMark {
			passed++
		}
		if r.Score > top.Score {
			top = r
		}
		submitters[r.UserID] = struct{}{}
	}

	stats.AverageScore = float64(total) / float64(len(results))
	stats.PassRate = float64(passed) / float64(len(results)) * 100
	if enrolled > 0 {
		stats.CompletionRate = float64(len(submitters)) / float64(enrolled) * 100
	}

	var user models.User
	if err := db.First(&user, top.UserID).Error; err == nil {
		stats.TopScorer = &TopScorer{
			UserID:   user.ID,
			Username: user.Username,
			Name:     user.Name,
			Surname:  user.Surname,
			Score:    top.Score,
		}
	}

	return stats
}

// countEnrolled counts the students enrolled in (subject, class).
// Enrollments live in a JSON column, so this is a scan.
func countEnrolled(db *gorm.DB, subject, class string) int {
	var students []models.User
	if err := db.Where("role = ?", models.RoleStudent).Find(&students).Error; err != nil {
		log.Printf("Error counting enrolled students: %v", err)
		return 0
	}

	enrolled := 0
	for _, s := range students {
		if models.ContainsAssignment(s.EnrolledSubjects, subject, class) {
			enrolled++
		}
	}
	return enrolled
}

// Overview returns aggregates for the caller's scope: admins get the
// platform totals, teachers one stats block per assignment.
func Overview(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	if claims.Role == models.RoleAdmin {
		var userCount, testCount, resultCount int64
		db.Model(&models.User{}).Count(&userCount)
		db.Model(&models.Test{}).Count(&testCount)
		db.Model(&models.Result{}).Count(&resultCount)

		var results []models.Result
		if err := db.Find(&results).Error; err != nil {
			log.Printf("Error loading results for analytics: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute analytics!", nil)
		}

		var studentCount int64
		db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&studentCount)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully.", fiber.Map{
			"users":   userCount,
			"tests":   testCount,
			"results": resultCount,
			"overall": computeStats(db, results, int(studentCount)),
		})
	}

	type assignmentStats struct {
		Subject string `json:"subject"`
		Class   string `json:"class"`
		Stats   Stats  `json:"stats"`
	}

	blocks := make([]assignmentStats, 0, len(claims.Assignments()))
	for _, a := range claims.Assignments() {
		var results []models.Result
		if err := db.Where("subject = ? AND class = ?", a.Subject, a.Class).Find(&results).Error; err != nil {
			log.Printf("Error loading results for %s/%s: %v", a.Subject, a.Class, err)
			continue
		}
		blocks = append(blocks, assignmentStats{
			Subject: a.Subject,
			Class:   a.Class,
			Stats:   computeStats(db, results, countEnrolled(db, a.Subject, a.Class)),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully.", blocks)
}

// BySubject returns aggregates for one subject+class
func BySubject(c *fiber.Ctx) error {
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
	if err := db.Where("subject = ? AND class = ?", subject, className).Find(&results).Error; err != nil {
		log.Printf("Error loading results of %s/%s: %v", subject, className, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute analytics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully.", fiber.Map{
		"subject": subject,
		"class":   className,
		"stats":   computeStats(db, results, countEnrolled(db, subject, className)),
	})
}
