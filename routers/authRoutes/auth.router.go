package authRoutes

import (
	authControllers "papyrus/controllers/auth"
	authValidators "papyrus/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/forgot-password", authValidators.ForgotPassword(), authControllers.ForgotPassword)
	authGroup.Get("/reset-password/:token", authControllers.VerifyResetToken)
	authGroup.Post("/reset-password/:token", authValidators.ResetPassword(), authControllers.ResetPassword)
}
