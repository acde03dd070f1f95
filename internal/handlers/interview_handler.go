package handlers

import (
	"github.com/gofiber/fiber/v2"

	"intervisio/interview-api/internal/models"
	"intervisio/interview-api/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
}

func NewInterviewHandler(interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
	}
}

// HandleStartInterview handles POST /start_interview
func (h *InterviewHandler) HandleStartInterview(c *fiber.Ctx) error {
	sessionID, err := h.interviewService.StartInterview()
	if err != nil {
		return err
	}

	return c.JSON(models.StartInterviewResponse{SessionID: sessionID})
}

// HandleFinishInterview handles POST /finish_interview
func (h *InterviewHandler) HandleFinishInterview(c *fiber.Ctx) error {
	var req models.FinishInterviewRequest

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	if req.SessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	if err := h.interviewService.FinishInterview(req.SessionID); err != nil {
		return err
	}

	return c.JSON(models.FinishInterviewResponse{OK: true})
}

// HandleListInterviews handles GET /list_interviews
func (h *InterviewHandler) HandleListInterviews(c *fiber.Ctx) error {
	return c.JSON(models.ListInterviewsResponse{
		Items: h.interviewService.ListInterviews(),
	})
}
