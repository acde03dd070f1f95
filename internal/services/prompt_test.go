package services

import (
	"strings"
	"testing"
)

func TestBuildInterviewQuestionsPrompt(t *testing.T) {
	prompt := NewPromptBuilder().BuildInterviewQuestionsPrompt("CV BODY", "")

	if !strings.Contains(prompt, "CV BODY") {
		t.Error("prompt missing CV text")
	}
	if !strings.Contains(prompt, "No additional guidance.") {
		t.Error("prompt missing empty-guidance marker")
	}

	last := -1
	for _, category := range QuestionCategories {
		idx := strings.Index(prompt, category)
		if idx == -1 {
			t.Fatalf("prompt missing category %q", category)
		}
		if idx < last {
			t.Errorf("category %q out of order", category)
		}
		last = idx
	}
}

func TestFormatRAGContext(t *testing.T) {
	if got := FormatRAGContext(nil); got != "" {
		t.Errorf("FormatRAGContext(nil) = %q, want empty", got)
	}

	got := FormatRAGContext([]SearchResult{{Score: 0.5, Text: " Ask about impact. "}})
	if got != "--- Guide 1 (Score: 0.50) ---\nAsk about impact." {
		t.Errorf("FormatRAGContext() = %q", got)
	}
}
