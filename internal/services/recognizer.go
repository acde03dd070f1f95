package services

import (
	"context"
	"fmt"
	"strings"
)

// Segment is one recognized stretch of speech, in audio order.
type Segment struct {
	Text string
}

type RecognitionOptions struct {
	Language  string
	MIMEType  string
	VADFilter bool
}

// SpeechRecognizer is a loaded speech-to-text backend. RecognizeFile works on
// a file on local disk, RecognizeBytes on an in-memory buffer.
type SpeechRecognizer interface {
	Name() string
	RecognizeFile(ctx context.Context, path string, opts RecognitionOptions) ([]Segment, error)
	RecognizeBytes(ctx context.Context, data []byte, opts RecognitionOptions) ([]Segment, error)
}

type geminiRecognizer struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
}

// NewGeminiRecognizer transcribes through the generation model.
func NewGeminiRecognizer(geminiService GeminiService) SpeechRecognizer {
	return &geminiRecognizer{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
	}
}

func (r *geminiRecognizer) Name() string {
	return "gemini"
}

// RecognizeFile implements SpeechRecognizer.
func (r *geminiRecognizer) RecognizeFile(ctx context.Context, path string, opts RecognitionOptions) ([]Segment, error) {
	prompt := r.promptBuilder.BuildTranscriptionPrompt(opts.Language, opts.VADFilter)

	text, err := r.geminiService.GenerateFromAudioFile(ctx, prompt, path, opts.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("gemini file recognition failed: %w", err)
	}

	return segmentsFromLines(text), nil
}

// RecognizeBytes implements SpeechRecognizer.
func (r *geminiRecognizer) RecognizeBytes(ctx context.Context, data []byte, opts RecognitionOptions) ([]Segment, error) {
	prompt := r.promptBuilder.BuildTranscriptionPrompt(opts.Language, opts.VADFilter)

	text, err := r.geminiService.GenerateFromAudioBytes(ctx, prompt, data, opts.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("gemini inline recognition failed: %w", err)
	}

	return segmentsFromLines(text), nil
}

func segmentsFromLines(text string) []Segment {
	var segments []Segment
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			segments = append(segments, Segment{Text: line})
		}
	}
	return segments
}

// JoinSegments concatenates segment texts with single spaces.
func JoinSegments(segments []Segment) string {
	texts := make([]string, 0, len(segments))
	for _, segment := range segments {
		texts = append(texts, segment.Text)
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}
