package authController

import (
	"cbt/config"
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	authValidator "cbt/validators/auth"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// buildUser hashes the password and maps a registration entry onto a
// user record. Assignments are role-conditional: teachers get Subjects,
// students get EnrolledSubjects, everything else is dropped.
func buildUser(reqData *authValidator.RegisterRequest) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		return nil, err
	}

	newUser := &models.User{
		Username: reqData.Username,
		Password: string(hashedPassword),
		Name:     reqData.Name,
		Surname:  reqData.Surname,
		Role:     reqData.Role,
		Class:    reqData.Class,
	}

	switch reqData.Role {
	case models.RoleTeacher:
		newUser.Subjects = reqData.Subjects
	case models.RoleStudent:
		newUser.EnrolledSubjects = reqData.EnrolledSubjects
	}

	return newUser, nil
}

// Register creates a single user account
func Register(c *fiber.Ctx) error {
	reqData := new(authValidator.RegisterRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if username already exists
	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Username is already registered!", nil)
	}

	newUser, err := buildUser(reqData)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := db.Create(newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// RegisterBulk creates many accounts in one call. Entries whose
// username is already taken are skipped, not failed.
func RegisterBulk(c *fiber.Ctx) error {
	reqData := new(struct {
		Users []authValidator.RegisterRequest `json:"users"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db
	created := 0

	for i := range reqData.Users {
		entry := &reqData.Users[i]

		if len(authValidator.CheckRegister(entry)) > 0 {
			continue
		}

		if err := db.Where("username = ?", entry.Username).First(&models.User{}).Error; err == nil {
			continue
		}

		newUser, err := buildUser(entry)
		if err != nil {
			log.Printf("Error hashing password for %s: %v", entry.Username, err)
			continue
		}

		if err := db.Create(newUser).Error; err != nil {
			log.Printf("Error saving user %s: %v", entry.Username, err)
			continue
		}

		created++
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Bulk registration completed.", fiber.Map{
		"created": created,
	})
}

// Login verifies credentials and issues a token
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Username string `json:"username"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	// Unknown username and wrong password return the same message so
	// usernames cannot be enumerated.
	if err := database.Database.Db.Where("username = ?", reqData.Username).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid username or password!", nil)
	}

	if user.Blocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your account has been blocked. Contact an administrator.", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid username or password!", nil)
	}

	token, err := middleware.GenerateJWT(&user)
	if err != nil {
		log.Printf("Error generating token for %s: %v", user.Username, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the token snapshot together with the current user record
func Me(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, claims.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", fiber.Map{
		"claims": claims,
		"user":   user,
	})
}
