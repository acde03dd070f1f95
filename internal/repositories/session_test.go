package repositories

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"intervisio/interview-api/internal/models"
)

// stepClock returns a strictly increasing time on every call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func TestCreateThenList(t *testing.T) {
	repo := newSessionRepository(stepClock())

	session, err := repo.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if session.ID == "" {
		t.Fatal("Create() returned empty ID")
	}

	items := repo.List()
	if len(items) != 1 {
		t.Fatalf("List() len = %d, want 1", len(items))
	}
	if items[0].SessionID != session.ID {
		t.Errorf("SessionID = %q, want %q", items[0].SessionID, session.ID)
	}
	if items[0].AnswerCount != 0 {
		t.Errorf("AnswerCount = %d, want 0", items[0].AnswerCount)
	}
	if items[0].FinishedAt != nil {
		t.Errorf("FinishedAt = %v, want nil", items[0].FinishedAt)
	}
}

func TestCreateUniqueIDs(t *testing.T) {
	repo := NewSessionRepository()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s, err := repo.Create()
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate session ID %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := newSessionRepository(stepClock())

	var ids []string
	for i := 0; i < 3; i++ {
		s, _ := repo.Create()
		ids = append(ids, s.ID)
	}

	items := repo.List()
	if len(items) != 3 {
		t.Fatalf("List() len = %d, want 3", len(items))
	}
	for i, want := range []string{ids[2], ids[1], ids[0]} {
		if items[i].SessionID != want {
			t.Errorf("items[%d] = %q, want %q", i, items[i].SessionID, want)
		}
	}
}

func TestFinishUnknown(t *testing.T) {
	repo := NewSessionRepository()

	_, err := repo.Finish("missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Finish(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestFinishTwiceAdvancesTimestamp(t *testing.T) {
	repo := newSessionRepository(stepClock())
	s, _ := repo.Create()

	first, err := repo.Finish(s.ID)
	if err != nil {
		t.Fatalf("first Finish() error: %v", err)
	}
	second, err := repo.Finish(s.ID)
	if err != nil {
		t.Fatalf("second Finish() error: %v", err)
	}

	if first.FinishedAt == nil || second.FinishedAt == nil {
		t.Fatal("FinishedAt is nil after Finish()")
	}
	if !second.FinishedAt.After(*first.FinishedAt) {
		t.Errorf("second FinishedAt %v not after first %v", second.FinishedAt, first.FinishedAt)
	}
}

func TestRecordAnswer(t *testing.T) {
	repo := NewSessionRepository()
	s, _ := repo.Create()

	if ok := repo.RecordAnswer("missing", 0, models.Answer{Transcript: "x"}); ok {
		t.Error("RecordAnswer(unknown session) = true, want false")
	}
	if ok := repo.RecordAnswer(s.ID, -1, models.Answer{Transcript: "x"}); ok {
		t.Error("RecordAnswer(negative index) = true, want false")
	}

	if ok := repo.RecordAnswer(s.ID, 3, models.Answer{Transcript: "first", AudioURL: "/media/a"}); !ok {
		t.Fatal("RecordAnswer() = false, want true")
	}
	if ok := repo.RecordAnswer(s.ID, 3, models.Answer{Transcript: "", AudioURL: "/media/b"}); !ok {
		t.Fatal("RecordAnswer(overwrite) = false, want true")
	}

	got, err := repo.FindByID(s.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if len(got.Answers) != 1 {
		t.Fatalf("Answers len = %d, want 1", len(got.Answers))
	}
	if a := got.Answers[3]; a.Transcript != "" || a.AudioURL != "/media/b" {
		t.Errorf("Answers[3] = %+v, want last write", a)
	}
}

func TestFindByIDReturnsCopy(t *testing.T) {
	repo := NewSessionRepository()
	s, _ := repo.Create()

	got, _ := repo.FindByID(s.ID)
	got.Answers[0] = models.Answer{Transcript: "mutated"}

	again, _ := repo.FindByID(s.ID)
	if len(again.Answers) != 0 {
		t.Errorf("store mutated through returned copy: %+v", again.Answers)
	}
}

func TestConcurrentRecordAnswer(t *testing.T) {
	repo := NewSessionRepository()
	s, _ := repo.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			repo.RecordAnswer(s.ID, idx, models.Answer{Transcript: fmt.Sprintf("answer %d", idx)})
			repo.List()
		}(i)
	}
	wg.Wait()

	got, _ := repo.FindByID(s.ID)
	if len(got.Answers) != 50 {
		t.Errorf("Answers len = %d, want 50", len(got.Answers))
	}
}
