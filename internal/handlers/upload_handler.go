package handlers

import (
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"intervisio/interview-api/internal/models"
	"intervisio/interview-api/internal/services"
)

type UploadHandler struct {
	extractor   services.DocumentExtractor
	maxFileSize int64
}

func NewUploadHandler(extractor services.DocumentExtractor, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		extractor:   extractor,
		maxFileSize: maxFileSize,
	}
}

// HandleUploadCV handles POST /upload_cv
func (h *UploadHandler) HandleUploadCV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	if fileHeader.Size > h.maxFileSize {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize))
	}

	kind := services.DetectDocumentKind(fileHeader.Filename)
	if kind == services.DocumentKindUnsupported {
		return fiber.NewError(fiber.StatusBadRequest, "Unsupported file type")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	contents, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}

	text, err := h.extractor.ExtractText(contents, kind)
	if err != nil {
		return err
	}

	log.Printf("📄 Extracted %d characters from %s\n", len(text), fileHeader.Filename)

	return c.JSON(models.UploadCVResponse{
		Filename:      fileHeader.Filename,
		ContentType:   fileHeader.Header.Get("Content-Type"),
		Size:          len(contents),
		ExtractedText: text,
	})
}
