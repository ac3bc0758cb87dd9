package commentController

import (
	"log"

	"papyrus/database"
	"papyrus/middleware"
	"papyrus/models"
	commentValidator "papyrus/validators/comment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RecomputeCourseRating rebuilds the course's rating aggregate from the
// rated comments currently present. Both values go to zero when no rated
// comment remains. Safe to call any number of times.
func RecomputeCourseRating(db *gorm.DB, courseID uint) error {
	var ratings []int
	if err := db.Model(&models.Comment{}).
		Where("course_id = ? AND rating IS NOT NULL", courseID).
		Pluck("rating", &ratings).Error; err != nil {
		return err
	}

	average := 0.0
	if len(ratings) > 0 {
		total := 0
		for _, r := range ratings {
			total += r
		}
		average = float64(total) / float64(len(ratings))
	}

	return db.Model(&models.Course{}).
		Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"ratings_count":  len(ratings),
		}).Error
}

// AddComment attaches a comment to a course; a rating triggers the
// aggregate recompute
func AddComment(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	input := c.Locals("input").(*commentValidator.CreateCommentInput)
	courseID := c.Params("courseId")

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	comment := models.Comment{
		CourseID: course.ID,
		UserID:   userID,
		Text:     input.Text,
		Rating:   input.Rating,
	}

	if err := db.Create(&comment).Error; err != nil {
		log.Printf("Error saving comment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add comment!", nil)
	}

	if input.Rating != nil {
		if err := RecomputeCourseRating(db, course.ID); err != nil {
			// The next rated insert or delete heals the aggregate.
			log.Printf("Error recomputing rating for course %d: %v", course.ID, err)
		}
	}

	db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, username")
	}).First(&comment, comment.ID)

	db.First(&course, course.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment added successfully.", fiber.Map{
		"comment":       comment,
		"averageRating": course.AverageRating,
		"ratingsCount":  course.RatingsCount,
	})
}

// ListComments returns a course's comment thread, newest first
func ListComments(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var comments []models.Comment
	if err := database.Database.Db.
		Where("course_id = ?", courseID).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username")
		}).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched!", comments)
}

// DeleteComment removes a comment, author only; a rated comment triggers
// the aggregate recompute
func DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	commentID := c.Params("commentId")

	db := database.Database.Db

	var comment models.Comment
	if err := db.First(&comment, "id = ?", commentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	if comment.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	hadRating := comment.Rating != nil

	if err := db.Unscoped().Delete(&comment).Error; err != nil {
		log.Printf("Error deleting comment %d: %v", comment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete comment!", nil)
	}

	if hadRating {
		if err := RecomputeCourseRating(db, comment.CourseID); err != nil {
			log.Printf("Error recomputing rating for course %d: %v", comment.CourseID, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment deleted successfully.", nil)
}
