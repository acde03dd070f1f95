package repositories

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"intervisio/interview-api/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create() (*models.Session, error)
	FindByID(id string) (*models.Session, error)
	Finish(id string) (*models.Session, error)
	List() []models.SessionSummary
	RecordAnswer(id string, questionIdx int, answer models.Answer) bool
}

// sessionRepository keeps sessions for the lifetime of the process. Every
// access goes through mu; callers only ever see copies.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	now      func() time.Time
}

func NewSessionRepository() SessionRepository {
	return newSessionRepository(time.Now)
}

func newSessionRepository(now func() time.Time) *sessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*models.Session),
		now:      now,
	}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create() (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New().String()
	for _, exists := r.sessions[id]; exists; _, exists = r.sessions[id] {
		id = uuid.New().String()
	}

	session := &models.Session{
		ID:        id,
		CreatedAt: r.now(),
		Answers:   make(map[int]models.Answer),
	}
	r.sessions[id] = session

	return copySession(session), nil
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return copySession(session), nil
}

// Finish implements SessionRepository. A second call moves the timestamp
// forward; it never clears it.
func (r *sessionRepository) Finish(id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	finishedAt := r.now()
	session.FinishedAt = &finishedAt

	return copySession(session), nil
}

// List implements SessionRepository. Newest sessions come first.
func (r *sessionRepository) List() []models.SessionSummary {
	r.mu.RLock()
	items := make([]models.SessionSummary, 0, len(r.sessions))
	for _, session := range r.sessions {
		items = append(items, session.Summary())
	}
	r.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].SessionID < items[j].SessionID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return items
}

// RecordAnswer implements SessionRepository. It reports false, and changes
// nothing, when the session is unknown or the index is negative. An existing
// answer at the same index is replaced.
func (r *sessionRepository) RecordAnswer(id string, questionIdx int, answer models.Answer) bool {
	if questionIdx < 0 {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return false
	}

	session.Answers[questionIdx] = answer
	return true
}

func copySession(s *models.Session) *models.Session {
	out := *s
	if s.FinishedAt != nil {
		finishedAt := *s.FinishedAt
		out.FinishedAt = &finishedAt
	}
	out.Answers = make(map[int]models.Answer, len(s.Answers))
	for idx, answer := range s.Answers {
		out.Answers[idx] = answer
	}
	return &out
}
