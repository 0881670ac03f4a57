package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"sumitk/ai-interviewer/internal/config"
	"sumitk/ai-interviewer/internal/models"
	"sumitk/ai-interviewer/internal/repositories"
)

const silenceReminder = "I didn't hear your response. Could you please answer the question, or let me know if you need me to repeat or clarify anything?"

const alreadyCompletedMessage = "This interview has already been completed. Thank you for your participation!"

// InterviewService drives the interview dialogue: starting or resuming a
// session, advancing it one question per answer, and handling silence on the
// audio path. All mutations for one interview are serialized.
type InterviewService interface {
	Start(ctx context.Context, candidateID uuid.UUID) (*models.StartInterviewResponse, error)
	SubmitAnswer(ctx context.Context, interviewID uuid.UUID, answer string) (*models.AnswerResponse, error)
	HandleSilence(ctx context.Context, interviewID uuid.UUID) (*models.AnswerResponse, error)
}

type interviewService struct {
	gemini        GeminiService
	candidateRepo repositories.CandidateRepository
	interviewRepo repositories.InterviewRepository
	questionRepo  repositories.QuestionRepository
	scoring       ScoringService
	reports       ReportService
	prompts       *PromptBuilder
	cfg           config.InterviewConfig

	locks         sync.Map // interview ID -> *sync.Mutex
	silenceCounts sync.Map // interview ID -> *int (consecutive reminders)
}

func NewInterviewService(
	gemini GeminiService,
	candidateRepo repositories.CandidateRepository,
	interviewRepo repositories.InterviewRepository,
	questionRepo repositories.QuestionRepository,
	scoring ScoringService,
	reports ReportService,
	prompts *PromptBuilder,
	cfg config.InterviewConfig,
) InterviewService {
	return &interviewService{
		gemini:        gemini,
		candidateRepo: candidateRepo,
		interviewRepo: interviewRepo,
		questionRepo:  questionRepo,
		scoring:       scoring,
		reports:       reports,
		prompts:       prompts,
		cfg:           cfg,
	}
}

func (s *interviewService) lockFor(id uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// capCtx bounds one external capability call.
func (s *interviewService) capCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.CapabilityTimeout)
}

// Start implements InterviewService. A candidate with an unfinished interview
// resumes it with the pending question repeated; otherwise a fresh interview
// opens with a generated greeting.
func (s *interviewService) Start(ctx context.Context, candidateID uuid.UUID) (*models.StartInterviewResponse, error) {
	candidate, err := s.candidateRepo.FindByID(candidateID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("candidate %s: %w", candidateID, ErrNotFound)
		}
		return nil, err
	}

	existing, err := s.interviewRepo.FindIncompleteByCandidate(candidateID)
	if err == nil {
		message := "Welcome back! Let's continue where we left off."
		if pending, ok := s.pendingPrompt(existing); ok {
			message = fmt.Sprintf("Welcome back! Let's continue where we left off.\n\n%s", pending)
		}
		existing.Transcript = append(existing.Transcript, models.Turn{
			Speaker:   models.SpeakerInterviewer,
			Text:      message,
			Timestamp: time.Now(),
		})
		if err := s.interviewRepo.Update(existing); err != nil {
			return nil, err
		}
		log.Printf("🔄 Resuming interview %s for candidate %s\n", existing.ID, candidate.Email)
		return &models.StartInterviewResponse{
			InterviewID: existing.ID.String(),
			Message:     message,
			Status:      "RESUMED",
		}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	resumeText := ""
	if candidate.ResumeAnalysis != nil {
		resumeText = candidate.ResumeAnalysis.RawText
	}

	callCtx, cancel := s.capCtx(ctx)
	defer cancel()
	greeting, err := s.gemini.GenerateTextWithRetry(callCtx, s.prompts.BuildGreetingPrompt(resumeText), 0.7)
	if err != nil {
		return nil, err
	}

	interview := &models.Interview{
		CandidateID:     candidateID,
		Status:          models.StatusActive,
		CurrentQuestion: 0,
		Transcript: models.Transcript{{
			Speaker:   models.SpeakerInterviewer,
			Text:      greeting,
			Timestamp: time.Now(),
		}},
	}
	if err := s.interviewRepo.Create(interview); err != nil {
		return nil, err
	}

	log.Printf("✅ Interview %s started for candidate %s\n", interview.ID, candidate.Email)
	return &models.StartInterviewResponse{
		InterviewID: interview.ID.String(),
		Message:     greeting,
		Status:      "STARTED",
	}, nil
}

// SubmitAnswer implements InterviewService. One call records the candidate's
// answer, scores the question it answers, and either asks the next question
// or finalizes the interview. The question cursor only advances after the
// next question has been generated, so a capability failure leaves the
// recorded answer committed and the dialogue retryable.
func (s *interviewService) SubmitAnswer(ctx context.Context, interviewID uuid.UUID, answer string) (*models.AnswerResponse, error) {
	if answer == "" {
		return nil, fmt.Errorf("answer text is required: %w", ErrInvalidInput)
	}

	mu := s.lockFor(interviewID)
	mu.Lock()
	defer mu.Unlock()

	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("interview %s: %w", interviewID, ErrNotFound)
		}
		return nil, err
	}

	if interview.Completed {
		return &models.AnswerResponse{
			Message:  alreadyCompletedMessage,
			Status:   string(models.StatusCompleted),
			Complete: true,
		}, nil
	}

	s.silenceCounts.Delete(interviewID)

	interview.Transcript = append(interview.Transcript, models.Turn{
		Speaker:   models.SpeakerCandidate,
		Text:      answer,
		Timestamp: time.Now(),
	})
	if err := s.interviewRepo.Update(interview); err != nil {
		return nil, err
	}

	// Backfill the answer onto the question it responds to and score it.
	var current *models.InterviewQuestion
	if interview.CurrentQuestion >= 1 {
		current, err = s.questionRepo.FindLatestByNumber(interviewID, interview.CurrentQuestion)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		if current != nil {
			if err := s.questionRepo.UpdateAnswer(current.ID, answer); err != nil {
				return nil, err
			}
			scoreCtx, cancel := s.capCtx(ctx)
			s.scoring.ScoreAnswer(scoreCtx, current, answer)
			cancel()
		}
	}

	if interview.CurrentQuestion >= s.cfg.TotalQuestions {
		callCtx, cancel := s.capCtx(ctx)
		defer cancel()
		closing, err := s.reports.CompleteInterview(callCtx, interview)
		if err != nil {
			return nil, err
		}
		return &models.AnswerResponse{
			Message:  closing,
			Status:   string(models.StatusCompleted),
			Complete: true,
		}, nil
	}

	return s.askNextQuestion(ctx, interview, current, answer)
}

// askNextQuestion generates the next question, persists it, and advances the
// cursor.
func (s *interviewService) askNextQuestion(ctx context.Context, interview *models.Interview, answered *models.InterviewQuestion, answer string) (*models.AnswerResponse, error) {
	nextNumber := interview.CurrentQuestion + 1

	var prompt string
	var qType models.QuestionType

	if nextNumber <= s.cfg.ResumeQuestions {
		analysis := interview.Candidate.ResumeAnalysis
		if analysis == nil {
			analysis = &models.ResumeAnalysis{}
		}
		prevQuestion, prevAnswer := "", ""
		if answered != nil {
			prevQuestion = answered.QuestionText
			prevAnswer = answer
		}
		prompt = s.prompts.BuildResumeQuestionPrompt(analysis, nextNumber, prevQuestion, prevAnswer)
		qType = models.QuestionResumeBased
	} else {
		proficiency := ""
		if interview.Candidate.ResumeAnalysis != nil {
			proficiency = interview.Candidate.ResumeAnalysis.ExcelProficiency
		}
		ordinal := nextNumber - s.cfg.ResumeQuestions
		var lastScore *int
		if answered != nil {
			lastScore = answered.Score
		}
		tier := PlanDifficulty(proficiency, ordinal, lastScore)
		prompt = s.prompts.BuildExcelQuestionPrompt(tier, nextNumber, FormatTranscriptSummary(interview.Transcript))
		qType = models.ExcelQuestionType(string(tier))
	}

	callCtx, cancel := s.capCtx(ctx)
	defer cancel()
	questionText, err := s.gemini.GenerateTextWithRetry(callCtx, prompt, 0.7)
	if err != nil {
		return nil, err
	}

	question := &models.InterviewQuestion{
		InterviewID:    interview.ID,
		QuestionNumber: nextNumber,
		QuestionText:   questionText,
		QuestionType:   qType,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}

	interview.CurrentQuestion = nextNumber
	interview.Transcript = append(interview.Transcript, models.Turn{
		Speaker:   models.SpeakerInterviewer,
		Text:      questionText,
		Timestamp: time.Now(),
	})
	if err := s.interviewRepo.Update(interview); err != nil {
		return nil, err
	}

	return &models.AnswerResponse{
		Message:  questionText,
		Status:   string(models.StatusActive),
		Complete: false,
	}, nil
}

// pendingPrompt returns the utterance the candidate still owes an answer
// to: the current question once one has been asked, otherwise the opening
// greeting. Reminders and welcome-back turns appended later in the
// transcript never shadow it.
func (s *interviewService) pendingPrompt(interview *models.Interview) (string, bool) {
	if interview.CurrentQuestion >= 1 {
		if q, err := s.questionRepo.FindLatestByNumber(interview.ID, interview.CurrentQuestion); err == nil {
			return q.QuestionText, true
		}
	}
	for _, turn := range interview.Transcript {
		if turn.Speaker == models.SpeakerInterviewer {
			return turn.Text, true
		}
	}
	return "", false
}

// HandleSilence implements InterviewService. Silence never advances the
// question cursor; the candidate gets a reminder, recorded as an interviewer
// turn, and past the configured retry cap the pending question is repeated
// alongside it.
func (s *interviewService) HandleSilence(ctx context.Context, interviewID uuid.UUID) (*models.AnswerResponse, error) {
	mu := s.lockFor(interviewID)
	mu.Lock()
	defer mu.Unlock()

	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("interview %s: %w", interviewID, ErrNotFound)
		}
		return nil, err
	}

	if interview.Completed {
		return &models.AnswerResponse{
			Message:  alreadyCompletedMessage,
			Status:   string(models.StatusCompleted),
			Complete: true,
		}, nil
	}

	count := 1
	if v, ok := s.silenceCounts.Load(interviewID); ok {
		count = *(v.(*int)) + 1
	}
	s.silenceCounts.Store(interviewID, &count)

	message := silenceReminder
	if s.cfg.MaxSilenceRetries > 0 && count > s.cfg.MaxSilenceRetries {
		if pending, ok := s.pendingPrompt(interview); ok {
			message = fmt.Sprintf("%s\n\nHere is the question again: %s", silenceReminder, pending)
		}
	}

	interview.Transcript = append(interview.Transcript, models.Turn{
		Speaker:   models.SpeakerInterviewer,
		Text:      message,
		Timestamp: time.Now(),
	})
	if err := s.interviewRepo.Update(interview); err != nil {
		return nil, err
	}

	return &models.AnswerResponse{
		Message:  message,
		Status:   string(models.StatusActive),
		Complete: false,
	}, nil
}
