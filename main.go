package main

import (
	"cbt/config"
	"cbt/database"
	analyticsRoutes "cbt/routers/analyticsRoutes"
	authRoutes "cbt/routers/authRoutes"
	cheatLogRoutes "cbt/routers/cheatLogRoutes"
	classRoutes "cbt/routers/classRoutes"
	examRoutes "cbt/routers/examRoutes"
	questionRoutes "cbt/routers/questionRoutes"
	resultRoutes "cbt/routers/resultRoutes"
	testRoutes "cbt/routers/testRoutes"
	"cbt/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Dashboards and the anti-cheat client script
	app.Static("/", "./public")
	// Question images
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	classRoutes.SetupClassRoutes(app)
	examRoutes.SetupExamRoutes(app)
	questionRoutes.SetupQuestionRoutes(app)
	testRoutes.SetupTestRoutes(app)
	resultRoutes.SetupResultRoutes(app)
	analyticsRoutes.SetupAnalyticsRoutes(app)
	cheatLogRoutes.SetupCheatLogRoutes(app)

	utils.InitializeCleanupScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
