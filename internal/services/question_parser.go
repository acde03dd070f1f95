package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	QuestionCount = 6

	// PlaceholderQuestion fills the set when the model returned too few questions.
	PlaceholderQuestion = "Please elaborate on your experience in this area."

	listMarkerChars    = "-.1234567890• "
	minFallbackLineLen = 10
)

// QuestionCategories is the order the generated questions are expected in.
var QuestionCategories = []string{
	"leadership",
	"teamwork",
	"problem-solving",
	"communication",
	"technical",
	"soft-skills",
}

// ParseQuestions turns a raw completion into exactly QuestionCount non-empty
// questions. A bracketed list literal is preferred; otherwise the text is read
// line by line. Short results are padded with PlaceholderQuestion and long
// ones truncated, so malformed model output never produces an error.
func ParseQuestions(raw string) []string {
	questions, ok := parseQuestionList(raw)
	if !ok {
		questions = parseQuestionLines(raw)
	}

	for len(questions) < QuestionCount {
		questions = append(questions, PlaceholderQuestion)
	}

	return questions[:QuestionCount]
}

// parseQuestionList decodes the region between the first '[' and the last ']'.
// It reports false when there is no such region, when it is not a JSON list,
// or when the list holds nothing usable.
func parseQuestionList(raw string) ([]string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil, false
	}

	var items []interface{}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, false
	}

	var questions []string
	for _, item := range items {
		if item == nil {
			continue
		}

		var text string
		switch v := item.(type) {
		case string:
			text = v
		default:
			// Go formatting: true stays "true", 1 stays "1"
			text = fmt.Sprint(v)
		}

		if text = strings.TrimSpace(text); text != "" {
			questions = append(questions, text)
		}
	}

	return questions, len(questions) > 0
}

func parseQuestionLines(raw string) []string {
	var questions []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		line = strings.TrimSpace(strings.TrimLeft(line, listMarkerChars))
		if utf8.RuneCountInString(line) > minFallbackLineLen {
			questions = append(questions, line)
		}
	}

	return questions
}
