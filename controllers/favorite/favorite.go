package favoriteController

import (
	"log"
	"strconv"

	"papyrus/database"
	"papyrus/middleware"
	"papyrus/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AddFavorite bookmarks a course for the caller
func AddFavorite(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	courseID, err := strconv.ParseUint(c.Params("courseId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.HasFavorite(uint(courseID)) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course already in favorites!", nil)
	}

	user.Favorites = append(user.Favorites, uint(courseID))
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving favorites for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add favorite!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course added to favorites.", user.Favorites)
}

// RemoveFavorite drops the bookmark; removing an absent one succeeds
func RemoveFavorite(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	courseID, err := strconv.ParseUint(c.Params("courseId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.RemoveFavorite(uint(courseID))
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving favorites for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove favorite!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from favorites.", user.Favorites)
}

// ListFavorites returns the caller's bookmarked courses
func ListFavorites(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	courses := []models.Course{}
	if len(user.Favorites) > 0 {
		if err := db.Where("id IN ?", []uint(user.Favorites)).
			Preload("Owner", func(db *gorm.DB) *gorm.DB {
				return db.Select("id, username, email")
			}).
			Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch favorites!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Favorites fetched!", courses)
}
