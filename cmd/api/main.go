package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"sumitk/ai-interviewer/internal/config"
	"sumitk/ai-interviewer/internal/handlers"
	"sumitk/ai-interviewer/internal/repositories"
	"sumitk/ai-interviewer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	candidateRepo := repositories.NewCandidateRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	resumeProcessor := services.NewResumeProcessor(pdfParser)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiClient, err := services.NewGeminiClient(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	geminiService := services.NewGeminiService(
		geminiClient,
		cfg.Worker.RetryMaxAttempts,
		cfg.Worker.RetryInitialDelay,
	)
	speechService := services.NewSpeechService(geminiClient)
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	vectorStore, err := services.NewVectorStoreService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize report indexer
	worker := services.NewWorker(
		interviewRepo,
		geminiService,
		vectorStore,
		services.NewTextChunker(),
		cfg.Worker.Concurrency,
	)

	// Initialize interview pipeline
	prompts := services.NewPromptBuilder()
	scoringService := services.NewScoringService(geminiService, questionRepo, prompts)
	reportService := services.NewReportService(
		geminiService,
		interviewRepo,
		questionRepo,
		vectorStore,
		worker,
		prompts,
	)
	interviewService := services.NewInterviewService(
		geminiService,
		candidateRepo,
		interviewRepo,
		questionRepo,
		scoringService,
		reportService,
		prompts,
		cfg.Interview,
	)
	authService := services.NewHRAuthService(cfg.HR)
	log.Println("✅ Interview services initialized")

	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(
		candidateRepo,
		storageService,
		resumeProcessor,
		cfg.Storage.MaxFileSize,
	)
	interviewHandler := handlers.NewInterviewHandler(interviewService, speechService)
	hrHandler := handlers.NewHRHandler(
		authService,
		reportService,
		candidateRepo,
		interviewRepo,
		questionRepo,
		vectorStore,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interviewer API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Candidate endpoints
	api.Post("/register", registerHandler.HandleRegister)
	api.Post("/interviews/start/:candidateID", interviewHandler.HandleStart)
	api.Post("/interviews/:id/answer", interviewHandler.HandleAnswer)
	api.Post("/interviews/:id/answer-audio", interviewHandler.HandleAudioAnswer)

	// HR endpoints
	api.Post("/hr/login", hrHandler.HandleLogin)

	hr := api.Group("", handlers.RequireHR(authService))
	hr.Get("/interviews", hrHandler.HandleListInterviews)
	hr.Get("/interviews/:id/report", hrHandler.HandleGetReport)
	hr.Post("/rank", hrHandler.HandleRank)
	hr.Delete("/admin/all", hrHandler.HandleDeleteAll)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interviewer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/register",
				"POST /api/v1/interviews/start/:candidateID",
				"POST /api/v1/interviews/:id/answer",
				"POST /api/v1/interviews/:id/answer-audio",
				"POST /api/v1/hr/login",
				"GET /api/v1/interviews",
				"GET /api/v1/interviews/:id/report",
				"POST /api/v1/rank",
				"DELETE /api/v1/admin/all",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
