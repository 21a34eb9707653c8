package imageController

import (
	"errors"
	"feedbackapi/middleware"
	"feedbackapi/storage"
	"log"

	"github.com/gofiber/fiber/v2"
)

func isUploadValidationError(err error) bool {
	return errors.Is(err, storage.ErrInvalidImageType) || errors.Is(err, storage.ErrImageTooLarge)
}

// Upload stores up to two multipart images (field "images") and returns
// their public URLs in input order.
func Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No images provided!")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No images provided!")
	}
	if len(files) > 2 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "A maximum of 2 images can be uploaded at once!")
	}

	imageUrls, err := storage.UploadMultipleImages(files, storage.DefaultFolder)
	if err != nil {
		if isUploadValidationError(err) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("Error uploading images: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload images!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Images uploaded successfully.", fiber.Map{
		"imageUrls": imageUrls,
		"count":     len(imageUrls),
	})
}

// GetPresignedUploadURL issues a time-boxed direct-upload URL.
func GetPresignedUploadURL(c *fiber.Ctx) error {
	reqData := new(struct {
		FileName    string `json:"fileName"`
		ContentType string `json:"contentType"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	uploadURL, err := storage.PresignedUploadURL(reqData.FileName, reqData.ContentType)
	if err != nil {
		log.Printf("Error generating presigned URL: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate upload URL!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Presigned URL generated successfully.", fiber.Map{
		"uploadUrl": uploadURL,
		"fileName":  reqData.FileName,
	})
}

// Delete removes the stored object referenced by the given URL.
func Delete(c *fiber.Ctx) error {
	reqData := new(struct {
		ImageURL string `json:"imageUrl"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	if err := storage.DeleteImage(reqData.ImageURL); err != nil {
		if errors.Is(err, storage.ErrForeignImageURL) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("Error deleting image: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete image!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Image deleted successfully.", nil)
}
