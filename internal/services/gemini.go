package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"
)

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateFromAudioFile(ctx context.Context, prompt, path, mimeType string) (string, error)
	GenerateFromAudioBytes(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey, modelName, embedModel string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: embedModel,
	}, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	return g.generate(ctx, genai.Text(prompt), config)
}

// GenerateFromAudioFile implements GeminiService. The file goes through the
// Files API and is deleted again once the answer is in.
func (g *geminiService) GenerateFromAudioFile(ctx context.Context, prompt, path, mimeType string) (string, error) {
	file, err := g.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{MIMEType: mimeType})
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := g.client.Files.Delete(cleanupCtx, file.Name, nil); err != nil {
			log.Printf("⚠️  Failed to delete uploaded audio %s: %v\n", file.Name, err)
		}
	}()

	file, err = g.waitForFile(ctx, file)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromURI(file.URI, file.MIMEType),
		}, genai.RoleUser),
	}

	return g.generate(ctx, contents, &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0)})
}

// GenerateFromAudioBytes implements GeminiService.
func (g *geminiService) GenerateFromAudioBytes(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	return g.generate(ctx, contents, &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0)})
}

func (g *geminiService) waitForFile(ctx context.Context, file *genai.File) (*genai.File, error) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for uploaded audio: %w", ctx.Err())
		case <-ticker.C:
		}

		refreshed, err := g.client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to poll uploaded audio: %w", err)
		}
		file = refreshed
	}

	if file.State == genai.FileStateFailed {
		return nil, fmt.Errorf("uploaded audio %s failed processing", file.Name)
	}

	return file, nil
}

func (g *geminiService) generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != "" {
			log.Printf("⚠️  Gemini returned no text (finish reason %s)\n", resp.Candidates[0].FinishReason)
		}
	}

	return text, nil
}
