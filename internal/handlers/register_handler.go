package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sumitk/ai-interviewer/internal/models"
	"sumitk/ai-interviewer/internal/repositories"
	"sumitk/ai-interviewer/internal/services"
)

type RegisterHandler struct {
	candidateRepo   repositories.CandidateRepository
	storageService  services.StorageService
	resumeProcessor services.ResumeProcessor
	validate        *validator.Validate
	maxFileSize     int64
}

func NewRegisterHandler(
	candidateRepo repositories.CandidateRepository,
	storageService services.StorageService,
	resumeProcessor services.ResumeProcessor,
	maxFileSize int64,
) *RegisterHandler {
	return &RegisterHandler{
		candidateRepo:   candidateRepo,
		storageService:  storageService,
		resumeProcessor: resumeProcessor,
		validate:        validator.New(),
		maxFileSize:     maxFileSize,
	}
}

// HandleRegister accepts a multipart form with an email and a PDF resume,
// analyzes the resume, and creates the candidate.
func (h *RegisterHandler) HandleRegister(c *fiber.Ctx) error {
	email := c.FormValue("email")
	if err := h.validate.Var(email, "required,email"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A valid email address is required",
		})
	}

	exists, err := h.candidateRepo.EmailExists(email)
	if err != nil {
		return respondError(c, err)
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("A candidate with email %s is already registered", email),
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A resume file is required. Please upload 'resume' as a PDF file.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveResume(file)
	if err != nil {
		return respondError(c, err)
	}

	analysis, err := h.resumeProcessor.Process(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read the resume. Please upload a valid PDF file.",
		})
	}

	candidate := models.Candidate{
		Email:          email,
		ResumeFilename: filename,
		ResumePath:     filePath,
		ResumeAnalysis: analysis,
	}

	if err := h.candidateRepo.Create(&candidate); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return respondError(c, err)
	}

	log.Printf("✅ Candidate %s registered (proficiency: %s)\n", email, analysis.ExcelProficiency)

	return c.Status(fiber.StatusCreated).JSON(models.RegisterResponse{
		Message:        "Registration successful. You can now start your interview.",
		CandidateID:    candidate.ID.String(),
		ResumeAnalysis: analysis,
		Status:         "REGISTERED",
	})
}
