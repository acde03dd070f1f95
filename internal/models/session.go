package models

import "time"

// Session is one interview attempt. FinishedAt stays nil until the
// interview is finished and is never cleared afterwards.
type Session struct {
	ID         string
	CreatedAt  time.Time
	FinishedAt *time.Time
	Answers    map[int]Answer
}

type Answer struct {
	Transcript string
	AudioURL   string
}

type SessionSummary struct {
	SessionID   string     `json:"session_id"`
	CreatedAt   time.Time  `json:"created_at"`
	FinishedAt  *time.Time `json:"finished_at"`
	AnswerCount int        `json:"answer_count"`
}

func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		SessionID:   s.ID,
		CreatedAt:   s.CreatedAt,
		FinishedAt:  s.FinishedAt,
		AnswerCount: len(s.Answers),
	}
}
