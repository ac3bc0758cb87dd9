package courseValidator

import (
	"papyrus/middleware"
	"papyrus/validators"

	"github.com/gofiber/fiber/v2"
)

type UpdateCourseInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=60"`
	Shared      *bool   `json:"shared"`
}

type ShareWithInput struct {
	Email string `json:"email" validate:"required,email"`
}

// Update validator middleware for partial course edits
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(UpdateCourseInput)
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

// ShareWith validator middleware for granting course access by email
func ShareWith() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(ShareWithInput)
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
