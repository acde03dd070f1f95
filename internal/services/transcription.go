package services

import (
	"context"
	"fmt"
	"log"
	"time"
)

// AnswerTarget names where a transcribed answer belongs. A nil QuestionIdx or
// empty SessionID means nothing is persisted.
type AnswerTarget struct {
	SessionID   string
	QuestionIdx *int
}

type TranscriptionResult struct {
	Transcript string
	AudioURL   string
	Persisted  bool
}

type TranscriptionService interface {
	Available() bool
	BackendName() string
	Transcribe(ctx context.Context, audio []byte, filename, mimeType string, target AnswerTarget) (*TranscriptionResult, error)
}

type transcriptionService struct {
	recognizer       SpeechRecognizer
	storageService   StorageService
	interviewService InterviewService
	language         string
	vadFilter        bool
	timeout          time.Duration
}

// NewTranscriptionService accepts a nil recognizer; every call then fails
// with ErrServiceUnavailable.
func NewTranscriptionService(
	recognizer SpeechRecognizer,
	storageService StorageService,
	interviewService InterviewService,
	language string,
	vadFilter bool,
	timeout time.Duration,
) TranscriptionService {
	return &transcriptionService{
		recognizer:       recognizer,
		storageService:   storageService,
		interviewService: interviewService,
		language:         language,
		vadFilter:        vadFilter,
		timeout:          timeout,
	}
}

func (t *transcriptionService) Available() bool {
	return t.recognizer != nil
}

func (t *transcriptionService) BackendName() string {
	if t.recognizer == nil {
		return "none"
	}
	return t.recognizer.Name()
}

// Transcribe implements TranscriptionService. Recognition runs against a
// temporary copy of the upload first and, if that fails, once more against
// the in-memory bytes. The second failure is returned as is.
func (t *transcriptionService) Transcribe(ctx context.Context, audio []byte, filename, mimeType string, target AnswerTarget) (*TranscriptionResult, error) {
	if t.recognizer == nil {
		return nil, fmt.Errorf("%w: speech recognition backend is not loaded", ErrServiceUnavailable)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: audio file is empty", ErrValidation)
	}

	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = "audio/webm"
	}
	opts := RecognitionOptions{
		Language:  t.language,
		MIMEType:  mimeType,
		VADFilter: t.vadFilter,
	}

	segments, err := t.recognize(ctx, audio, filename, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	result := &TranscriptionResult{Transcript: JoinSegments(segments)}

	if target.SessionID == "" || target.QuestionIdx == nil || !t.interviewService.SessionExists(target.SessionID) {
		return result, nil
	}

	audioURL, err := t.storageService.SaveAnswer(target.SessionID, *target.QuestionIdx, audio, result.Transcript)
	if err != nil {
		return nil, fmt.Errorf("failed to persist answer: %w", err)
	}

	result.AudioURL = audioURL
	result.Persisted = t.interviewService.RecordAnswer(target.SessionID, target.QuestionIdx, result.Transcript, audioURL)

	log.Printf("💾 Saved answer %d for session %s\n", *target.QuestionIdx, target.SessionID)
	return result, nil
}

func (t *transcriptionService) recognize(ctx context.Context, audio []byte, filename string, opts RecognitionOptions) ([]Segment, error) {
	tempPath, err := t.storageService.CreateTempAudio(audio, filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := t.storageService.RemoveTemp(tempPath); err != nil {
			log.Printf("⚠️  %v\n", err)
		}
	}()

	fileCtx, cancel := t.withTimeout(ctx)
	segments, err := t.recognizer.RecognizeFile(fileCtx, tempPath, opts)
	cancel()
	if err == nil {
		return segments, nil
	}

	log.Printf("⚠️  %s file recognition failed, retrying from memory: %v\n", t.recognizer.Name(), err)

	bytesCtx, cancel := t.withTimeout(ctx)
	defer cancel()

	return t.recognizer.RecognizeBytes(bytesCtx, audio, opts)
}

func (t *transcriptionService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.timeout)
}
