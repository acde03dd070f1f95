package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const answerAudioExt = ".webm"

// StorageService owns the media tree: one directory per session holding
// q{idx}.webm and q{idx}.txt for every answered question.
type StorageService interface {
	EnsureMediaDir() error
	EnsureSessionDir(sessionID string) error
	SaveAnswer(sessionID string, questionIdx int, audio []byte, transcript string) (string, error)
	AudioURL(sessionID string, questionIdx int) string
	CreateTempAudio(data []byte, filename string) (string, error)
	RemoveTemp(path string) error
}

type storageService struct {
	mediaPath string
	urlPrefix string
}

func NewStorageService(mediaPath, urlPrefix string) StorageService {
	return &storageService{
		mediaPath: mediaPath,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

func (s *storageService) EnsureMediaDir() error {
	if err := os.MkdirAll(s.mediaPath, 0755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}

	return nil
}

func (s *storageService) EnsureSessionDir(sessionID string) error {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	return nil
}

// SaveAnswer writes the audio and its transcript next to each other and
// returns the public audio URL. Existing files are overwritten.
func (s *storageService) SaveAnswer(sessionID string, questionIdx int, audio []byte, transcript string) (string, error) {
	if questionIdx < 0 {
		return "", fmt.Errorf("invalid question index %d", questionIdx)
	}

	if err := s.EnsureSessionDir(sessionID); err != nil {
		return "", err
	}

	dir, _ := s.sessionDir(sessionID)
	base := fmt.Sprintf("q%d", questionIdx)

	if err := os.WriteFile(filepath.Join(dir, base+answerAudioExt), audio, 0644); err != nil {
		return "", fmt.Errorf("failed to save answer audio: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, base+".txt"), []byte(transcript), 0644); err != nil {
		return "", fmt.Errorf("failed to save answer transcript: %w", err)
	}

	return s.AudioURL(sessionID, questionIdx), nil
}

func (s *storageService) AudioURL(sessionID string, questionIdx int) string {
	return fmt.Sprintf("%s/%s/q%d%s", s.urlPrefix, sessionID, questionIdx, answerAudioExt)
}

// CreateTempAudio stores the upload in the OS temp dir, keeping the original
// extension so recognizers can tell the container format.
func (s *storageService) CreateTempAudio(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = answerAudioExt
	}

	f, err := os.CreateTemp("", "answer-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp audio file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp audio file: %w", err)
	}

	return f.Name(), nil
}

func (s *storageService) RemoveTemp(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete temp file: %w", err)
	}
	return nil
}

func (s *storageService) sessionDir(sessionID string) (string, error) {
	if sessionID == "" || sessionID != filepath.Base(sessionID) || sessionID == "." || sessionID == ".." {
		return "", fmt.Errorf("invalid session id %q", sessionID)
	}
	return filepath.Join(s.mediaPath, sessionID), nil
}
