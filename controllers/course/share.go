package courseController

import (
	"fmt"
	"log"

	"papyrus/config"
	"papyrus/database"
	"papyrus/middleware"
	"papyrus/models"
	"papyrus/utils"
	courseValidator "papyrus/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// IssueShareLink returns the course's share token, generating one on
// first use. Issuing is idempotent; the token survives until revoked.
func IssueShareLink(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Params("id")

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !models.CanModify(&course, userID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if course.ShareToken == nil {
		token, err := utils.GenerateShareToken()
		if err != nil {
			log.Printf("Error generating share token: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate share link!", nil)
		}

		course.ShareToken = &token
		course.Shared = true

		// A unique-index violation here means the generator is broken;
		// surface it instead of retrying.
		if err := db.Save(&course).Error; err != nil {
			log.Printf("Error saving share token for course %d: %v", course.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate share link!", nil)
		}
	}

	shareLink := fmt.Sprintf("%s/share/%s", config.AppConfig.ClientURL, *course.ShareToken)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Share link generated.", fiber.Map{
		"shareLink":  shareLink,
		"shareToken": *course.ShareToken,
	})
}

// RevokeShareLink clears the share token. The shared flag stays as it is;
// revoking the link does not unpublish the course. Revoking an absent
// token is a no-op success.
func RevokeShareLink(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Params("id")

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !models.CanModify(&course, userID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if course.ShareToken != nil {
		if err := db.Model(&course).Update("share_token", nil).Error; err != nil {
			log.Printf("Error revoking share token for course %d: %v", course.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke share link!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Share link revoked successfully.", nil)
}

// ResolveSharedCourse is the unauthenticated share-token lookup. Any
// non-matching token, malformed or revoked or unknown, yields the same
// not-found reply.
func ResolveSharedCourse(c *fiber.Ctx) error {
	token := c.Params("token")

	db := database.Database.Db

	var course models.Course
	if err := db.Preload("Owner", ownerFields).First(&course, "share_token = ?", token).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or invalid link!", nil)
	}

	if err := db.Model(&course).UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		log.Printf("Error incrementing views for course %d: %v", course.ID, err)
	}
	course.Views++

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched!", course)
}

// DownloadSharedCourse serves the file for a share token, unauthenticated
func DownloadSharedCourse(c *fiber.Ctx) error {
	token := c.Params("token")

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "share_token = ?", token).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or invalid link!", nil)
	}

	if err := db.Model(&course).UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error; err != nil {
		log.Printf("Error incrementing downloads for course %d: %v", course.ID, err)
	}

	return c.Redirect(course.FilePath, fiber.StatusFound)
}

// ShareWithUser grants read access to one user, looked up by email
func ShareWithUser(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	input := c.Locals("input").(*courseValidator.ShareWithInput)
	courseID := c.Params("id")

	db := database.Database.Db

	var course models.Course
	if err := db.Preload("Owner", ownerFields).First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !models.CanModify(&course, userID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	var grantee models.User
	if err := db.Where("email = ?", input.Email).First(&grantee).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if grantee.ID == course.OwnerID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is already owned by this user!", nil)
	}

	var existing models.CourseGrant
	if err := db.Where("course_id = ? AND user_id = ?", course.ID, grantee.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already shared with this user!", nil)
	}

	grant := models.CourseGrant{CourseID: course.ID, UserID: grantee.ID}
	if err := db.Create(&grant).Error; err != nil {
		log.Printf("Error creating course grant: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to share course!", nil)
	}

	utils.SendCourseSharedEmail(grantee.Email, grantee.Username, course.Owner.Username, course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course shared successfully.", grant)
}

// UnshareWithUser removes a grant; removing an absent grant succeeds
func UnshareWithUser(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Params("id")
	granteeID := c.Params("userId")

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !models.CanModify(&course, userID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if err := db.Unscoped().
		Where("course_id = ? AND user_id = ?", course.ID, granteeID).
		Delete(&models.CourseGrant{}).Error; err != nil {
		log.Printf("Error deleting course grant: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unshare course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course unshared successfully.", nil)
}
