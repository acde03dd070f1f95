package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAnswerOverwrites(t *testing.T) {
	mediaPath := t.TempDir()
	storage := NewStorageService(mediaPath, "/media/")

	url, err := storage.SaveAnswer("abc", 1, []byte("first"), "one")
	if err != nil {
		t.Fatalf("SaveAnswer() error: %v", err)
	}
	if url != "/media/abc/q1.webm" {
		t.Errorf("url = %q, want /media/abc/q1.webm", url)
	}

	if _, err := storage.SaveAnswer("abc", 1, []byte("second"), "two"); err != nil {
		t.Fatalf("second SaveAnswer() error: %v", err)
	}

	audio, _ := os.ReadFile(filepath.Join(mediaPath, "abc", "q1.webm"))
	text, _ := os.ReadFile(filepath.Join(mediaPath, "abc", "q1.txt"))
	if string(audio) != "second" || string(text) != "two" {
		t.Errorf("files = %q / %q, want last write", audio, text)
	}
}

func TestSessionDirRejectsTraversal(t *testing.T) {
	storage := NewStorageService(t.TempDir(), "/media")

	for _, id := range []string{"", ".", "..", "../escape", "a/b"} {
		if err := storage.EnsureSessionDir(id); err == nil {
			t.Errorf("EnsureSessionDir(%q) succeeded, want error", id)
		}
	}

	if _, err := storage.SaveAnswer("abc", -1, nil, ""); err == nil {
		t.Error("SaveAnswer(negative index) succeeded, want error")
	}
}

func TestTempAudioRoundTrip(t *testing.T) {
	storage := NewStorageService(t.TempDir(), "/media")

	path, err := storage.CreateTempAudio([]byte("data"), "clip.OGG")
	if err != nil {
		t.Fatalf("CreateTempAudio() error: %v", err)
	}
	if filepath.Ext(path) != ".ogg" {
		t.Errorf("ext = %q, want .ogg", filepath.Ext(path))
	}

	if err := storage.RemoveTemp(path); err != nil {
		t.Fatalf("RemoveTemp() error: %v", err)
	}
	if err := storage.RemoveTemp(path); err == nil {
		t.Error("second RemoveTemp() succeeded, want error")
	}
}
