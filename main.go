package main

import (
	"context"
	"log"

	"papyrus/config"
	"papyrus/database"
	authRoutes "papyrus/routers/authRoutes"
	commentRoutes "papyrus/routers/commentRoutes"
	courseRoutes "papyrus/routers/courseRoutes"
	favoriteRoutes "papyrus/routers/favoriteRoutes"
	"papyrus/storage"
	"papyrus/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	storage.Blob = storage.NewBackend(context.Background())
	utils.Mail = utils.NewMailer()

	janitor := utils.StartResetTokenJanitor()
	defer janitor.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: config.AppConfig.MaxUploadMB * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.ClientURL,
		AllowMethods: "GET,POST,PATCH,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Local blob locators live under /uploads
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	commentRoutes.SetupCommentRoutes(app)
	favoriteRoutes.SetupFavoriteRoutes(app)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
