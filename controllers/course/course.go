package courseController

import (
	"log"
	"sort"
	"strings"

	"papyrus/database"
	"papyrus/middleware"
	"papyrus/models"
	"papyrus/storage"
	courseValidator "papyrus/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ownerFields trims the preloaded owner to its public columns.
func ownerFields(db *gorm.DB) *gorm.DB {
	return db.Select("id, username, email")
}

func searchPattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}

func grantedCourseIDs(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.CourseGrant{}).Select("course_id").Where("user_id = ?", userID)
}

// CreateCourse stores the uploaded PDF in blob storage and creates the course
func CreateCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing file!", nil)
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only PDF files are allowed!", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read uploaded file!", nil)
	}
	defer src.Close()

	key := storage.NewObjectKey(fileHeader.Filename)
	locator, err := storage.Blob.Save(c.Context(), key, src)
	if err != nil {
		log.Printf("Error saving file to storage: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = strings.TrimSuffix(fileHeader.Filename, ".pdf")
	}
	category := strings.TrimSpace(c.FormValue("category"))
	if category == "" {
		category = models.DefaultCategory
	}

	course := models.Course{
		Title:       title,
		Description: c.FormValue("description"),
		Category:    category,
		FileName:    fileHeader.Filename,
		FilePath:    locator,
		StorageKey:  key,
		FileSize:    fileHeader.Size,
		OwnerID:     userID,
		Shared:      c.FormValue("shared") == "true",
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error saving course to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", course)
}

// ListCourses returns every course the caller may read: own, public, or granted
func ListCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	search := c.Query("search")

	db := database.Database.Db

	query := db.Model(&models.Course{}).
		Where(db.Where("owner_id = ?", userID).
			Or("shared = ?", true).
			Or("id IN (?)", grantedCourseIDs(db, userID)))

	if search != "" {
		pat := searchPattern(search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}

	var courses []models.Course
	if err := query.Preload("Owner", ownerFields).Order("created_at DESC").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched!", courses)
}

// MyCourses returns the caller's own courses
func MyCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	search := c.Query("search")
	category := c.Query("category")

	query := database.Database.Db.Model(&models.Course{}).Where("owner_id = ?", userID)

	if category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		pat := searchPattern(search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}

	var courses []models.Course
	if err := query.Preload("Owner", ownerFields).Order("created_at DESC").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched!", courses)
}

// PublicCourses returns shared courses, optionally filtered and sorted
func PublicCourses(c *fiber.Ctx) error {
	search := c.Query("search")
	category := c.Query("category")
	sortMode := c.Query("sort", "recent")

	query := database.Database.Db.Model(&models.Course{}).Where("shared = ?", true)

	if category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		pat := searchPattern(search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}

	order := "created_at DESC"
	switch sortMode {
	case "popular":
		order = "views DESC"
	case "downloads":
		order = "downloads DESC"
	case "rating":
		order = "average_rating DESC"
	}

	var courses []models.Course
	if err := query.Preload("Owner", ownerFields).Order(order).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched!", courses)
}

// SharedWithMe returns courses explicitly granted to the caller
func SharedWithMe(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	search := c.Query("search")

	db := database.Database.Db

	query := db.Model(&models.Course{}).Where("id IN (?)", grantedCourseIDs(db, userID))

	if search != "" {
		pat := searchPattern(search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}

	var courses []models.Course
	if err := query.Preload("Owner", ownerFields).Order("created_at DESC").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched!", courses)
}

// GetCourse returns one course the caller may read and bumps its view count
func GetCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Params("id")

	db := database.Database.Db

	var course models.Course
	if err := db.Preload("Owner", ownerFields).First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !models.CanAccess(db, &course, userID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if err := db.Model(&course).UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		log.Printf("Error incrementing views for course %d: %v", course.ID, err)
	}
	course.Views++

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched!", course)
}

// UpdateCourse applies a partial metadata edit, owner only
func UpdateCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	input := c.Locals("input").(*courseValidator.UpdateCourseInput)
	courseID := c.Params("id")

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !models.CanModify(&course, userID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.Category != nil {
		course.Category = *input.Category
	}
	if input.Shared != nil {
		course.Shared = *input.Shared
	}

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", course)
}

// DeleteCourse removes the course, its comments, its grants and its blob
func DeleteCourse(c *fiber.Ctx) error {
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

	if course.StorageKey != "" {
		if err := storage.Blob.Delete(c.Context(), course.StorageKey); err != nil {
			// Orphaned blob is preferable to a course row pointing at nothing.
			log.Printf("Error deleting blob %s: %v", course.StorageKey, err)
		}
	}

	db.Unscoped().Where("course_id = ?", course.ID).Delete(&models.Comment{})
	db.Unscoped().Where("course_id = ?", course.ID).Delete(&models.CourseGrant{})

	if err := db.Unscoped().Delete(&course).Error; err != nil {
		log.Printf("Error deleting course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", nil)
}

// DownloadCourse bumps the download counter and redirects to the blob
func DownloadCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Params("id")

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !models.CanAccess(db, &course, userID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if err := db.Model(&course).UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error; err != nil {
		log.Printf("Error incrementing downloads for course %d: %v", course.ID, err)
	}

	return c.Redirect(course.FilePath, fiber.StatusFound)
}

// Categories returns the distinct non-empty categories in use
func Categories(c *fiber.Ctx) error {
	var categories []string
	if err := database.Database.Db.Model(&models.Course{}).
		Distinct().
		Pluck("category", &categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	kept := categories[:0]
	for _, cat := range categories {
		if cat != "" {
			kept = append(kept, cat)
		}
	}
	sort.Strings(kept)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched!", kept)
}
