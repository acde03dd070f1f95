package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"intervisio/interview-api/internal/config"
	"intervisio/interview-api/internal/services"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

func main() {
	log.Println("🚀 Starting question guide ingestion...")

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if !cfg.QdrantEnabled() {
		log.Fatal("❌ QDRANT_URL is not set, nothing to ingest into")
	}

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	guideStore, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx := context.Background()

	if err := guideStore.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	extractor := services.NewDocumentExtractor()
	chunker := services.NewGuideChunker()

	paths, err := findGuideDocuments(cfg.Storage.GuideDocsPath)
	if err != nil {
		log.Fatalf("❌ Failed to scan %s: %v", cfg.Storage.GuideDocsPath, err)
	}
	if len(paths) == 0 {
		log.Printf("⚠️  No .pdf or .docx guides found in %s", cfg.Storage.GuideDocsPath)
		return
	}

	successCount := 0
	failCount := 0

	for _, path := range paths {
		docID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		log.Printf("\n📄 Processing: %s", path)

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("   ❌ Failed to read file: %v", err)
			failCount++
			continue
		}

		log.Printf("   📖 Extracting text...")
		text, err := extractor.ExtractText(data, services.DetectDocumentKind(path))
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		chunks := chunker.ChunkText(text, chunkSize, chunkOverlap)
		log.Printf("   ✂️  Created %d chunks from %d characters", len(chunks), len(text))

		if err := guideStore.DeleteDocument(ctx, docID); err != nil {
			log.Printf("   ❌ Failed to clear previous chunks: %v", err)
			failCount++
			continue
		}

		stored := 0
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			if err := guideStore.UpsertChunk(ctx, docID, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		if stored == 0 {
			failCount++
			continue
		}

		log.Printf("   ✅ Ingested %s (%d/%d chunks)", docID, stored, len(chunks))
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some guides failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All guides ingested successfully!")
}

func findGuideDocuments(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if services.DetectDocumentKind(path) != services.DocumentKindUnsupported {
			paths = append(paths, path)
		}
		return nil
	})

	return paths, err
}
