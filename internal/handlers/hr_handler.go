package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sumitk/ai-interviewer/internal/models"
	"sumitk/ai-interviewer/internal/repositories"
	"sumitk/ai-interviewer/internal/services"
)

type HRHandler struct {
	authService   services.HRAuthService
	reportService services.ReportService
	candidateRepo repositories.CandidateRepository
	interviewRepo repositories.InterviewRepository
	questionRepo  repositories.QuestionRepository
	vectorStore   services.VectorStoreService
	validate      *validator.Validate
}

func NewHRHandler(
	authService services.HRAuthService,
	reportService services.ReportService,
	candidateRepo repositories.CandidateRepository,
	interviewRepo repositories.InterviewRepository,
	questionRepo repositories.QuestionRepository,
	vectorStore services.VectorStoreService,
) *HRHandler {
	return &HRHandler{
		authService:   authService,
		reportService: reportService,
		candidateRepo: candidateRepo,
		interviewRepo: interviewRepo,
		questionRepo:  questionRepo,
		vectorStore:   vectorStore,
		validate:      validator.New(),
	}
}

// HandleLogin issues a bearer token for the HR account.
func (h *HRHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	resp, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	return c.JSON(resp)
}

// HandleListInterviews returns a summary row for every interview.
func (h *HRHandler) HandleListInterviews(c *fiber.Ctx) error {
	summaries, err := h.reportService.ListInterviews()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"interviews": summaries,
		"count":      len(summaries),
	})
}

// HandleGetReport returns the detailed report for one completed interview.
func (h *HRHandler) HandleGetReport(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	report, err := h.reportService.GetReport(interviewID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(report)
}

// HandleRank ranks completed candidates against a job posting.
func (h *HRHandler) HandleRank(c *fiber.Ctx) error {
	var req models.RankRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_title and job_description are required",
		})
	}

	result, err := h.reportService.RankCandidates(c.Context(), req.JobTitle, req.JobDescription)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// HandleDeleteAll wipes every candidate, interview, question, and report
// vector. Questions go first to respect foreign keys.
func (h *HRHandler) HandleDeleteAll(c *fiber.Ctx) error {
	if err := h.questionRepo.DeleteAll(); err != nil {
		return respondError(c, err)
	}
	if err := h.interviewRepo.DeleteAll(); err != nil {
		return respondError(c, err)
	}
	if err := h.candidateRepo.DeleteAll(); err != nil {
		return respondError(c, err)
	}

	if err := h.vectorStore.DeleteAll(c.Context()); err != nil {
		log.Printf("⚠️ Failed to clear vector store: %v\n", err)
	}

	log.Println("🗑️ All interview data deleted")
	return c.JSON(fiber.Map{
		"message": "All interview data deleted",
	})
}
