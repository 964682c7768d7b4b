package classController

import (
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ListClasses returns all classes. Every authenticated role may read
// them; they are reference data for the dashboards.
func ListClasses(c *fiber.Ctx) error {
	var classes []models.Class
	if err := database.Database.Db.Order("name asc").Find(&classes).Error; err != nil {
		log.Printf("Error listing classes: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classes fetched successfully.", classes)
}

// CreateClass creates a class with a unique name
func CreateClass(c *fiber.Ctx) error {
	reqData := new(struct {
		Name     string   `json:"name"`
		Subjects []string `json:"subjects"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.Where("name = ?", reqData.Name).First(&models.Class{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Class name already exists!", nil)
	}

	newClass := models.Class{
		Name:     reqData.Name,
		Subjects: reqData.Subjects,
	}

	if err := db.Create(&newClass).Error; err != nil {
		log.Printf("Error creating class: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Class created successfully.", newClass)
}

// UpdateClass renames a class
func UpdateClass(c *fiber.Ctx) error {
	classID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	reqData := new(struct {
		Name string `json:"name"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Name == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"name": "Class name is required!"})
	}

	db := database.Database.Db

	var class models.Class
	if err := db.First(&class, classID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	var existing models.Class
	if err := db.Where("name = ? AND id <> ?", reqData.Name, class.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Class name already exists!", nil)
	}

	class.Name = reqData.Name
	if err := db.Save(&class).Error; err != nil {
		log.Printf("Error updating class %d: %v", class.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class updated successfully.", class)
}

// DeleteClass removes a class. Users and tests referencing the class
// by name are untouched.
func DeleteClass(c *fiber.Ctx) error {
	classID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	db := database.Database.Db

	var class models.Class
	if err := db.First(&class, classID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	if err := db.Delete(&class).Error; err != nil {
		log.Printf("Error deleting class %d: %v", class.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class deleted successfully.", nil)
}

// AddSubject adds a subject to a class if it is not already offered
func AddSubject(c *fiber.Ctx) error {
	reqData := new(struct {
		ClassID uint   `json:"classId"`
		Subject string `json:"subject"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var class models.Class
	if err := db.First(&class, reqData.ClassID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	if class.HasSubject(reqData.Subject) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Subject already exists in this class!", nil)
	}

	class.Subjects = append(class.Subjects, reqData.Subject)
	if err := db.Save(&class).Error; err != nil {
		log.Printf("Error adding subject to class %d: %v", class.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add subject!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject added successfully.", class)
}

// RemoveSubject removes a subject from a class if it is offered
func RemoveSubject(c *fiber.Ctx) error {
	classID, err := strconv.Atoi(c.Params("classId"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}
	subject := c.Params("subject")

	db := database.Database.Db

	var class models.Class
	if err := db.First(&class, classID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	if !class.HasSubject(subject) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Subject not found in this class!", nil)
	}

	kept := class.Subjects[:0]
	for _, s := range class.Subjects {
		if s != subject {
			kept = append(kept, s)
		}
	}
	class.Subjects = kept

	if err := db.Save(&class).Error; err != nil {
		log.Printf("Error removing subject from class %d: %v", class.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove subject!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject removed successfully.", class)
}
