package commentValidator

import (
	"papyrus/middleware"
	"papyrus/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateCommentInput struct {
	Text   string `json:"text" validate:"required,min=1,max=2000"`
	Rating *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

// Create validator middleware
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(CreateCommentInput)
		if err := c.BodyParser(input); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(input); err != nil {
			return middleware.ValidationErrorResponse(c, validators.Errors(err))
		}

		c.Locals("input", input)
		return c.Next()
	}
}
