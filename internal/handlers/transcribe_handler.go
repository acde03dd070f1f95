package handlers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"intervisio/interview-api/internal/models"
	"intervisio/interview-api/internal/services"
)

type TranscribeHandler struct {
	transcriptionService services.TranscriptionService
	maxFileSize          int64
}

func NewTranscribeHandler(transcriptionService services.TranscriptionService, maxFileSize int64) *TranscribeHandler {
	return &TranscribeHandler{
		transcriptionService: transcriptionService,
		maxFileSize:          maxFileSize,
	}
}

// HandleTranscribeAnswer handles POST /transcribe_answer
func (h *TranscribeHandler) HandleTranscribeAnswer(c *fiber.Ctx) error {
	if !h.transcriptionService.Available() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "speech recognition backend is not loaded")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	if fileHeader.Size > h.maxFileSize {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Audio file too large. Max size: %d bytes", h.maxFileSize))
	}

	target := services.AnswerTarget{SessionID: strings.TrimSpace(c.FormValue("session_id"))}

	if raw := strings.TrimSpace(c.FormValue("question_idx")); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil || idx < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "question_idx must be a non-negative integer")
		}
		target.QuestionIdx = &idx
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded audio: %w", err)
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read uploaded audio: %w", err)
	}

	result, err := h.transcriptionService.Transcribe(
		c.UserContext(),
		audio,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		target,
	)
	if err != nil {
		return err
	}

	response := models.TranscribeAnswerResponse{Transcript: result.Transcript}
	if result.AudioURL != "" {
		response.AudioURL = &result.AudioURL
	}

	return c.JSON(response)
}
