package services

import (
	"context"
	"errors"
	"os"
	"sync"
)

type fakeGemini struct {
	mu sync.Mutex

	text      string
	textErr   error
	embed     []float32
	embedErr  error
	audioText string
	fileErr   error
	bytesErr  error

	prompts    []string
	filePaths  []string
	bytesCalls int
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return f.embed, f.embedErr
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.text, f.textErr
}

func (f *fakeGemini) GenerateFromAudioFile(ctx context.Context, prompt, path, mimeType string) (string, error) {
	f.mu.Lock()
	f.filePaths = append(f.filePaths, path)
	f.mu.Unlock()
	if f.fileErr != nil {
		return "", f.fileErr
	}
	return f.audioText, nil
}

func (f *fakeGemini) GenerateFromAudioBytes(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	f.mu.Lock()
	f.bytesCalls++
	f.mu.Unlock()
	if f.bytesErr != nil {
		return "", f.bytesErr
	}
	return f.audioText, nil
}

type fakeGuideStore struct {
	results   []SearchResult
	searchErr error
	searches  int
}

func (f *fakeGuideStore) InitCollection(ctx context.Context) error { return nil }

func (f *fakeGuideStore) UpsertChunk(ctx context.Context, docID string, text string, embedding []float32) error {
	return nil
}

func (f *fakeGuideStore) SearchGuides(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error) {
	f.searches++
	return f.results, f.searchErr
}

func (f *fakeGuideStore) DeleteDocument(ctx context.Context, docID string) error { return nil }

// fakeRecognizer records which path was taken. fileSeen holds whether the
// temporary file existed while RecognizeFile ran.
type fakeRecognizer struct {
	fileSegments  []Segment
	fileErr       error
	bytesSegments []Segment
	bytesErr      error

	filePath   string
	fileSeen   bool
	bytesCalls int
	lastOpts   RecognitionOptions
}

func (f *fakeRecognizer) Name() string { return "fake" }

func (f *fakeRecognizer) RecognizeFile(ctx context.Context, path string, opts RecognitionOptions) ([]Segment, error) {
	f.filePath = path
	f.fileSeen = fileExists(path)
	f.lastOpts = opts
	return f.fileSegments, f.fileErr
}

func (f *fakeRecognizer) RecognizeBytes(ctx context.Context, data []byte, opts RecognitionOptions) ([]Segment, error) {
	f.bytesCalls++
	f.lastOpts = opts
	return f.bytesSegments, f.bytesErr
}

var errBoom = errors.New("boom")

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
