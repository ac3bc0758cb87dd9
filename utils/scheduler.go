package utils

import (
	"log"
	"time"

	"papyrus/database"
	"papyrus/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[RESET-JANITOR %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeExpiredResetTokens nulls out reset tokens whose window has passed.
// Expired tokens are already inert on lookup; this keeps stale secrets
// from sitting in user rows.
func purgeExpiredResetTokens() {
	db := database.Database.Db

	result := db.Model(&models.User{}).
		Where("reset_password_token IS NOT NULL AND reset_password_expires <= ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})
	if result.Error != nil {
		logScheduler("Error purging expired reset tokens: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler("Cleared expired reset tokens")
	}
}

// StartResetTokenJanitor runs the purge hourly.
func StartResetTokenJanitor() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", purgeExpiredResetTokens); err != nil {
		log.Fatalf("Failed to register reset token janitor: %v", err)
	}

	c.Start()
	logScheduler("Started")
	return c
}
