package services

import (
	"errors"
	"fmt"
	"log"

	"intervisio/interview-api/internal/models"
	"intervisio/interview-api/internal/repositories"
)

type InterviewService interface {
	StartInterview() (string, error)
	FinishInterview(sessionID string) error
	ListInterviews() []models.SessionSummary
	SessionExists(sessionID string) bool
	RecordAnswer(sessionID string, questionIdx *int, transcript, audioURL string) bool
}

type interviewService struct {
	sessionRepo    repositories.SessionRepository
	storageService StorageService
}

func NewInterviewService(sessionRepo repositories.SessionRepository, storageService StorageService) InterviewService {
	return &interviewService{
		sessionRepo:    sessionRepo,
		storageService: storageService,
	}
}

// StartInterview creates the session and its media directory.
func (s *interviewService) StartInterview() (string, error) {
	session, err := s.sessionRepo.Create()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.storageService.EnsureSessionDir(session.ID); err != nil {
		return "", err
	}

	log.Printf("🎬 Interview session %s started\n", session.ID)
	return session.ID, nil
}

func (s *interviewService) FinishInterview(sessionID string) error {
	if _, err := s.sessionRepo.Finish(sessionID); err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return fmt.Errorf("%w: Session not found", ErrNotFound)
		}
		return err
	}

	log.Printf("🏁 Interview session %s finished\n", sessionID)
	return nil
}

func (s *interviewService) ListInterviews() []models.SessionSummary {
	return s.sessionRepo.List()
}

func (s *interviewService) SessionExists(sessionID string) bool {
	if sessionID == "" {
		return false
	}
	_, err := s.sessionRepo.FindByID(sessionID)
	return err == nil
}

// RecordAnswer is best effort: an unknown session or a missing index is
// skipped and reported as false.
func (s *interviewService) RecordAnswer(sessionID string, questionIdx *int, transcript, audioURL string) bool {
	if sessionID == "" || questionIdx == nil {
		return false
	}

	return s.sessionRepo.RecordAnswer(sessionID, *questionIdx, models.Answer{
		Transcript: transcript,
		AudioURL:   audioURL,
	})
}
