package main

import (
	"cbt/config"
	"cbt/database"
	"cbt/models"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the initial administrator account. Intended as a one-off:
//
//	ADMIN_USERNAME=admin ADMIN_PASSWORD=... go run ./scripts/seedadmin
func main() {
	config.LoadConfig()
	database.ConnectDb()

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	db := database.Database.Db

	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		log.Printf("Admin %q already exists, nothing to do", username)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.User{
		Username: username,
		Password: string(hashedPassword),
		Name:     "System",
		Surname:  "Administrator",
		Role:     models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin %q created", username)
}
