package handlers

import (
	"github.com/gofiber/fiber/v2"

	"intervisio/interview-api/internal/models"
	"intervisio/interview-api/internal/services"
)

type QuestionsHandler struct {
	questionService services.QuestionService
}

func NewQuestionsHandler(questionService services.QuestionService) *QuestionsHandler {
	return &QuestionsHandler{
		questionService: questionService,
	}
}

// HandleGenerateQuestions handles POST /generate_questions
func (h *QuestionsHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	var req models.GenerateQuestionsRequest

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	questions, err := h.questionService.GenerateQuestions(c.UserContext(), req.CVText)
	if err != nil {
		return err
	}

	return c.JSON(models.GenerateQuestionsResponse{Questions: questions})
}
