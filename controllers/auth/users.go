package authController

import (
	"cbt/config"
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	"cbt/utils"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// ListUsers returns all accounts, optionally filtered by ?role=
func ListUsers(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("username asc").Find(&users).Error; err != nil {
		log.Printf("Error listing users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", users)
}

// UpdateUser updates profile fields of an account. Role is fixed at
// creation and silently ignored here.
func UpdateUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData := new(struct {
		Name             *string             `json:"name"`
		Surname          *string             `json:"surname"`
		Class            *string             `json:"class"`
		Password         *string             `json:"password"`
		Subjects         []models.Assignment `json:"subjects"`
		EnrolledSubjects []models.Assignment `json:"enrolledSubjects"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Name != nil {
		user.Name = *reqData.Name
	}
	if reqData.Surname != nil {
		user.Surname = *reqData.Surname
	}
	if reqData.Class != nil {
		user.Class = *reqData.Class
	}
	if reqData.Password != nil && *reqData.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*reqData.Password), config.AppConfig.SaltRound)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}
		user.Password = string(hashedPassword)
	}
	if reqData.Subjects != nil && user.Role == models.RoleTeacher {
		user.Subjects = reqData.Subjects
	}
	if reqData.EnrolledSubjects != nil && user.Role == models.RoleStudent {
		user.EnrolledSubjects = reqData.EnrolledSubjects
	}

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully.", user)
}

// BlockUser toggles the blocked flag of an account
func BlockUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Blocked = !user.Blocked
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error blocking user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	message := "User unblocked successfully."
	if user.Blocked {
		message = "User blocked successfully."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, user)
}

// DeleteUser removes an account. Nothing cascades; historical results
// keep their userId.
func DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := db.Delete(&user).Error; err != nil {
		log.Printf("Error deleting user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully.", nil)
}

// ExportStudents writes the student roster as a CSV attachment
func ExportStudents(c *fiber.Ctx) error {
	db := database.Database.Db

	var students []models.User
	if err := db.Where("role = ?", models.RoleStudent).Order("class asc, surname asc").Find(&students).Error; err != nil {
		log.Printf("Error exporting students: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export students!", nil)
	}

	header := []string{"Username", "Name", "Surname", "Class", "Blocked"}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{
			s.Username,
			s.Name,
			s.Surname,
			s.Class,
			strconv.FormatBool(s.Blocked),
		})
	}

	return utils.SendCSV(c, "students.csv", header, rows)
}
