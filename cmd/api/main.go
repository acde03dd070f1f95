package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"intervisio/interview-api/internal/config"
	"intervisio/interview-api/internal/handlers"
	"intervisio/interview-api/internal/repositories"
	"intervisio/interview-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.MediaPath, cfg.Storage.MediaURLPrefix)
	if err := storageService.EnsureMediaDir(); err != nil {
		log.Fatalf("❌ Failed to create media directory: %v", err)
	}

	// Sessions live in memory for the lifetime of the process
	sessionRepo := repositories.NewSessionRepository()
	log.Println("✅ Session store initialized")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Question guides are optional
	var guideStore services.QuestionGuideStore
	if cfg.QdrantEnabled() {
		guideStore = initGuideStore(ctx, cfg)
	} else {
		log.Println("ℹ️  QDRANT_URL not set, question guides disabled")
	}

	questionService := services.NewQuestionService(
		geminiService,
		guideStore,
		cfg.Gemini.QuestionTemperature,
		cfg.Gemini.Timeout,
	)

	recognizer := initRecognizer(ctx, cfg, geminiService)

	interviewService := services.NewInterviewService(sessionRepo, storageService)
	transcriptionService := services.NewTranscriptionService(
		recognizer,
		storageService,
		interviewService,
		cfg.Speech.Language,
		cfg.Speech.VADFilter,
		cfg.Speech.Timeout,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(services.NewDocumentExtractor(), cfg.Storage.MaxFileSize)
	questionsHandler := handlers.NewQuestionsHandler(questionService)
	interviewHandler := handlers.NewInterviewHandler(interviewService)
	transcribeHandler := handlers.NewTranscribeHandler(transcriptionService, cfg.Storage.MaxFileSize)
	log.Println("✅ Handlers initialized")

	// Create Fiber app. Uploads carry multipart overhead on top of the file.
	app := fiber.New(fiber.Config{
		AppName:      "Interview API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Speech.Timeout + 30*time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Saved answers
	app.Static(cfg.Storage.MediaURLPrefix, cfg.Storage.MediaPath)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "healthy",
			"time":        time.Now(),
			"stt_backend": transcriptionService.BackendName(),
		})
	})

	// API endpoints
	app.Post("/upload_cv", uploadHandler.HandleUploadCV)
	app.Post("/generate_questions", questionsHandler.HandleGenerateQuestions)
	app.Post("/start_interview", interviewHandler.HandleStartInterview)
	app.Post("/finish_interview", interviewHandler.HandleFinishInterview)
	app.Get("/list_interviews", interviewHandler.HandleListInterviews)
	app.Post("/transcribe_answer", transcribeHandler.HandleTranscribeAnswer)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Interview API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /upload_cv",
				"POST /generate_questions",
				"POST /start_interview",
				"POST /finish_interview",
				"GET /list_interviews",
				"POST /transcribe_answer",
				"GET " + cfg.Storage.MediaURLPrefix + "/:session_id/:file",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s (%s)\n", addr, cfg.Server.Env)
	log.Printf("🎙️  Speech backend: %s\n", transcriptionService.BackendName())

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initGuideStore returns nil when Qdrant cannot be reached so the API still
// serves questions without guidance.
func initGuideStore(ctx context.Context, cfg *config.Config) services.QuestionGuideStore {
	store, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Printf("⚠️  Failed to initialize Qdrant, question guides disabled: %v", err)
		return nil
	}

	if err := store.InitCollection(ctx); err != nil {
		log.Printf("⚠️  Failed to initialize Qdrant collection, question guides disabled: %v", err)
		return nil
	}

	log.Println("✅ Qdrant initialized successfully")
	return store
}

// initRecognizer loads the configured speech backend. A load failure leaves
// transcription unavailable instead of stopping the server.
func initRecognizer(ctx context.Context, cfg *config.Config, geminiService services.GeminiService) services.SpeechRecognizer {
	switch cfg.Speech.Backend {
	case config.SpeechBackendGemini:
		log.Println("✅ Speech backend: Gemini")
		return services.NewGeminiRecognizer(geminiService)

	case config.SpeechBackendGoogle:
		recognizer, err := services.NewGoogleSpeechRecognizer(ctx, cfg.Speech.CredentialsPath)
		if err != nil {
			log.Printf("⚠️  Speech backend failed to load, transcription disabled: %v", err)
			return nil
		}
		log.Println("✅ Speech backend: Google Cloud Speech-to-Text")
		return recognizer

	default:
		log.Println("⚠️  Speech backend disabled, /transcribe_answer will return 503")
		return nil
	}
}
