package handlers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadHandler stores uploaded images on the local filesystem and hands
// back public URLs for the stored files.
type UploadHandler struct {
	uploadDir string
}

// NewUploadHandler creates a new UploadHandler writing into uploadDir.
func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{
		uploadDir: uploadDir,
	}
}

// RegisterRoutes registers the upload route with the Fiber app.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Post("/upload", authRequired, h.HandleUpload)
}

// HandleUpload accepts a multipart form with a "files" field and writes
// each file under the upload directory with a collision-free name.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		log.Printf("Error parsing multipart form: %v", err)
		return badRequest(c, "Invalid multipart form")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return badRequest(c, "No files provided")
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.Printf("Failed to create upload directory: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		ext := filepath.Ext(file.Filename)
		filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
		if err := c.SaveFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
			log.Printf("Failed to save uploaded file %s: %v", file.Filename, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong",
			})
		}
		urls = append(urls, "/uploads/"+filename)
	}

	return c.JSON(fiber.Map{"urls": urls})
}
