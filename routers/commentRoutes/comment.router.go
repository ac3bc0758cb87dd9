package commentRoutes

import (
	commentControllers "papyrus/controllers/comment"
	"papyrus/middleware"
	commentValidators "papyrus/validators/comment"

	"github.com/gofiber/fiber/v2"
)

func SetupCommentRoutes(app *fiber.App) {
	app.Post("/api/courses/:courseId/comments", middleware.JWTMiddleware, commentValidators.Create(), commentControllers.AddComment)
	app.Get("/api/courses/:courseId/comments", commentControllers.ListComments)
	app.Delete("/api/comments/:commentId", middleware.JWTMiddleware, commentControllers.DeleteComment)
}
