package imageValidator

import (
	"feedbackapi/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PresignedURL validates a direct-upload URL request.
func PresignedURL() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FileName    string `json:"fileName"`
			ContentType string `json:"contentType"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.FileName) == "" {
			errors["fileName"] = "fileName is required!"
		}
		if strings.TrimSpace(reqData.ContentType) == "" {
			errors["contentType"] = "contentType is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Delete validates an image deletion request.
func Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ImageURL string `json:"imageUrl"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		if strings.TrimSpace(reqData.ImageURL) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"imageUrl": "imageUrl is required!",
			})
		}

		return c.Next()
	}
}
