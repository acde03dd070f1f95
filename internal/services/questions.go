package services

import (
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"
)

const (
	MinCVTextLength = 20
	guideSearchTop  = 3
)

type QuestionService interface {
	GenerateQuestions(ctx context.Context, cvText string) ([]string, error)
}

type questionService struct {
	geminiService GeminiService
	guideStore    QuestionGuideStore
	promptBuilder *PromptBuilder
	temperature   float32
	timeout       time.Duration
}

// NewQuestionService builds the generator. guideStore may be nil, in which
// case prompts carry no retrieved guidance.
func NewQuestionService(
	geminiService GeminiService,
	guideStore QuestionGuideStore,
	temperature float32,
	timeout time.Duration,
) QuestionService {
	return &questionService{
		geminiService: geminiService,
		guideStore:    guideStore,
		promptBuilder: NewPromptBuilder(),
		temperature:   temperature,
		timeout:       timeout,
	}
}

// GenerateQuestions implements QuestionService. The result always holds
// exactly QuestionCount questions; only a failed model call is an error.
func (s *questionService) GenerateQuestions(ctx context.Context, cvText string) ([]string, error) {
	if cvText == "" || utf8.RuneCountInString(cvText) < MinCVTextLength {
		return nil, fmt.Errorf("%w: CV text is too short or missing.", ErrValidation)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	prompt := s.promptBuilder.BuildInterviewQuestionsPrompt(cvText, s.retrieveGuidance(ctx, cvText))
	log.Printf("📝 Question prompt length: %d characters", len(prompt))

	response, err := s.geminiService.GenerateText(ctx, prompt, s.temperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	log.Printf("✅ Question response received: %d characters", len(response))

	return ParseQuestions(response), nil
}

// retrieveGuidance never fails the request; missing guidance only makes the
// prompt less specific.
func (s *questionService) retrieveGuidance(ctx context.Context, cvText string) string {
	if s.guideStore == nil {
		return ""
	}

	embedding, err := s.geminiService.GenerateEmbedding(ctx, cvText)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to embed CV for guide retrieval: %v\n", err)
		return ""
	}

	results, err := s.guideStore.SearchGuides(ctx, embedding, guideSearchTop)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to retrieve question guides: %v\n", err)
		return ""
	}

	return FormatRAGContext(results)
}
