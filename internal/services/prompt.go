package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildInterviewQuestionsPrompt asks for one question per category, returned
// as a JSON array of strings.
func (pb *PromptBuilder) BuildInterviewQuestionsPrompt(cvText, guideContext string) string {
	var categories strings.Builder
	for i, category := range QuestionCategories {
		fmt.Fprintf(&categories, "%d. %s\n", i+1, category)
	}

	if strings.TrimSpace(guideContext) == "" {
		guideContext = "No additional guidance."
	}

	return fmt.Sprintf(`You are an experienced interviewer preparing a mock interview for the candidate whose CV is below.

INTERVIEW GUIDANCE:
%s

CANDIDATE CV:
%s

Write exactly %d interview questions tailored to this CV, one for each category, in this order:
%s
Each question must be a single, self-contained sentence that references the candidate's actual experience where possible.

Return ONLY a JSON array of %d strings, for example:
["question 1", "question 2", "question 3", "question 4", "question 5", "question 6"]`,
		guideContext, cvText, QuestionCount, categories.String(), QuestionCount)
}

// BuildTranscriptionPrompt instructs the model to behave like a plain
// speech-to-text engine for the fixed language.
func (pb *PromptBuilder) BuildTranscriptionPrompt(language string, vadFilter bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transcribe the spoken %s audio verbatim.\n", language)
	b.WriteString("Return only the transcript text, one sentence per line, with no commentary, labels or timestamps.\n")
	if vadFilter {
		b.WriteString("Skip silence, background noise and any non-speech sounds. If nobody speaks, return an empty response.\n")
	}

	return b.String()
}

// FormatRAGContext renders retrieved guide chunks for the question prompt.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Guide %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
