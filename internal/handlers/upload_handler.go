package handlers

import (
	"context"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"darimac/pkg/imagehost"
)

// Uploader sends a file to the image host. Satisfied by *imagehost.Client.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (*imagehost.UploadResult, error)
}

// UploadHandler handles multipart image uploads for the admin dashboard.
type UploadHandler struct {
	uploader Uploader
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploader Uploader) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
	}
}

// RegisterRoutes registers the upload route with the Fiber app.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload", h.HandleUpload)
}

// HandleUpload forwards the uploaded file to the image host and returns
// the hosted URL and asset identifier.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file provided",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file %s: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read uploaded file",
			"error":   err.Error(),
		})
	}
	defer file.Close()

	result, err := h.uploader.Upload(c.Context(), fileHeader.Filename, file)
	if err != nil {
		log.Printf("Error uploading %s to image host: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to upload image",
			"error":   err.Error(),
		})
	}
	return c.JSON(result)
}
