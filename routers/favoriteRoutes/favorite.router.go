package favoriteRoutes

import (
	favoriteControllers "papyrus/controllers/favorite"
	"papyrus/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupFavoriteRoutes(app *fiber.App) {
	favGroup := app.Group("/api/favorites", middleware.JWTMiddleware)

	favGroup.Post("/:courseId", favoriteControllers.AddFavorite)
	favGroup.Delete("/:courseId", favoriteControllers.RemoveFavorite)
	favGroup.Get("/", favoriteControllers.ListFavorites)
}
