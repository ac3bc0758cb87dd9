package authController

import (
	"log"
	"math"
	"time"

	"papyrus/config"
	"papyrus/database"
	"papyrus/middleware"
	"papyrus/models"
	"papyrus/utils"
	authValidator "papyrus/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// ResetTokenTTL is how long a password reset link stays valid.
const ResetTokenTTL = 7 * time.Minute

// forgotPasswordReply is returned for known and unknown emails alike so
// the endpoint cannot be used to probe for accounts.
const forgotPasswordReply = "If this email is associated with an account, a reset link has been sent."

func Register(c *fiber.Ctx) error {
	input := c.Locals("input").(*authValidator.RegisterInput)

	db := database.Database.Db

	// Check if username or email already exists
	if err := db.Where("username = ? OR email = ?", input.Username, input.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username or email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Username, newUser.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	utils.SendWelcomeEmail(newUser.Email, newUser.Username)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       newUser.ID,
			"username": newUser.Username,
			"email":    newUser.Email,
		},
	})
}

func Login(c *fiber.Ctx) error {
	input := c.Locals("input").(*authValidator.LoginInput)

	var user models.User
	if err := database.Database.Db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// ForgotPassword stores a fresh reset token and mails the link. Unknown
// emails get the same reply with no state change.
func ForgotPassword(c *fiber.Ctx) error {
	input := c.Locals("input").(*authValidator.ForgotPasswordInput)

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, forgotPasswordReply, nil)
	}

	resetToken, err := utils.GenerateResetToken()
	if err != nil {
		log.Printf("Error generating reset token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	expiresAt := time.Now().Add(ResetTokenTTL)
	user.ResetPasswordToken = &resetToken
	user.ResetPasswordExpires = &expiresAt

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving reset token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	// Mail failure is logged inside; the token expires on its own either way.
	utils.SendPasswordResetEmail(user.Email, user.Username, resetToken)

	return middleware.JsonResponse(c, fiber.StatusOK, true, forgotPasswordReply, nil)
}

// VerifyResetToken checks a reset link without consuming it, exposing the
// seconds left for the UI countdown.
func VerifyResetToken(c *fiber.Ctx) error {
	token := c.Params("token")

	var user models.User
	if err := database.Database.Db.
		Where("reset_password_token = ? AND reset_password_expires > ?", token, time.Now()).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired link. Request a new one.", nil)
	}

	secondsLeft := int(math.Round(time.Until(*user.ResetPasswordExpires).Seconds()))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token is valid.", fiber.Map{
		"valid":       true,
		"username":    user.Username,
		"secondsLeft": secondsLeft,
	})
}

// ResetPassword consumes a valid token: stores the new password hash and
// clears the token so it can never be presented again.
func ResetPassword(c *fiber.Ctx) error {
	input := c.Locals("input").(*authValidator.ResetPasswordInput)
	token := c.Params("token")

	db := database.Database.Db

	var user models.User
	if err := db.
		Where("reset_password_token = ? AND reset_password_expires > ?", token, time.Now()).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired link. Request a new one.", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.Password = string(hashedPassword)
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error resetting password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully! You can now log in.", nil)
}
