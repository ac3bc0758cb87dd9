package courseRoutes

import (
	courseControllers "papyrus/controllers/course"
	"papyrus/middleware"
	courseValidators "papyrus/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	// Unauthenticated share-token path; token possession is the capability
	courseGroup.Get("/share/:token", courseControllers.ResolveSharedCourse)
	courseGroup.Get("/share/:token/download", courseControllers.DownloadSharedCourse)

	courseGroup.Post("/", middleware.JWTMiddleware, courseControllers.CreateCourse)
	courseGroup.Get("/", middleware.JWTMiddleware, courseControllers.ListCourses)
	courseGroup.Get("/my-courses", middleware.JWTMiddleware, courseControllers.MyCourses)
	courseGroup.Get("/public", middleware.JWTMiddleware, courseControllers.PublicCourses)
	courseGroup.Get("/shared-with-me", middleware.JWTMiddleware, courseControllers.SharedWithMe)

	courseGroup.Get("/:id", middleware.JWTMiddleware, courseControllers.GetCourse)
	courseGroup.Patch("/:id", middleware.JWTMiddleware, courseValidators.Update(), courseControllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, courseControllers.DeleteCourse)
	courseGroup.Get("/:id/download", middleware.JWTMiddleware, courseControllers.DownloadCourse)

	courseGroup.Post("/:id/share-link", middleware.JWTMiddleware, courseControllers.IssueShareLink)
	courseGroup.Delete("/:id/share-link", middleware.JWTMiddleware, courseControllers.RevokeShareLink)
	courseGroup.Post("/:id/share-with", middleware.JWTMiddleware, courseValidators.ShareWith(), courseControllers.ShareWithUser)
	courseGroup.Delete("/:id/share-with/:userId", middleware.JWTMiddleware, courseControllers.UnshareWithUser)

	app.Get("/api/categories", middleware.JWTMiddleware, courseControllers.Categories)
}
