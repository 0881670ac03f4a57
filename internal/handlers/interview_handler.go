package handlers

import (
	"encoding/base64"
	"io"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sumitk/ai-interviewer/internal/models"
	"sumitk/ai-interviewer/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
	speechService    services.SpeechService
	validate         *validator.Validate
}

func NewInterviewHandler(
	interviewService services.InterviewService,
	speechService services.SpeechService,
) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		speechService:    speechService,
		validate:         validator.New(),
	}
}

// HandleStart opens a new interview for the candidate, or resumes an
// unfinished one.
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidateID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	resp, err := h.interviewService.Start(c.Context(), candidateID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}

// HandleAnswer records a text answer and returns the interviewer's next turn.
func (h *InterviewHandler) HandleAnswer(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	var req models.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Answer text is required",
		})
	}

	resp, err := h.interviewService.SubmitAnswer(c.Context(), interviewID, req.Text)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}

// HandleAudioAnswer records a spoken answer: the audio is transcribed, empty
// transcriptions take the silence path, and the interviewer's reply comes
// back with synthesized audio when synthesis succeeds.
func (h *InterviewHandler) HandleAudioAnswer(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	file, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "An audio file is required. Please upload 'audio'.",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read the audio file",
		})
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read the audio file",
		})
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/wav"
	}

	transcription, err := h.speechService.Transcribe(c.Context(), audio, mimeType)
	if err != nil {
		return respondError(c, err)
	}

	var resp *models.AnswerResponse
	if transcription == "" {
		resp, err = h.interviewService.HandleSilence(c.Context(), interviewID)
	} else {
		resp, err = h.interviewService.SubmitAnswer(c.Context(), interviewID, transcription)
	}
	if err != nil {
		return respondError(c, err)
	}

	// Synthesis failures degrade to a text-only reply.
	if speech, synthErr := h.speechService.Synthesize(c.Context(), resp.Message); synthErr != nil {
		log.Printf("⚠️ Speech synthesis failed for interview %s: %v\n", interviewID, synthErr)
	} else {
		resp.Audio = base64.StdEncoding.EncodeToString(speech)
	}

	return c.JSON(resp)
}
