package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"sumitk/ai-interviewer/internal/models"
	"sumitk/ai-interviewer/internal/repositories"
)

const defaultClosingMessage = "Thank you for completing the interview! We appreciate your time. Our team will review your responses and get back to you with the results soon."

// ReportIndexer receives interviews whose reports are ready for vector
// indexing. The background worker implements it.
type ReportIndexer interface {
	EnqueueJob(interviewID uuid.UUID)
}

// ReportService compiles results once an interview reaches its final
// question, serves reports to HR, and ranks candidates for a job posting.
type ReportService interface {
	// CompleteInterview finalizes the interview: computes the final score,
	// generates the candidate-facing closing message and the HR report, and
	// persists the terminal state. Returns the closing message.
	CompleteInterview(ctx context.Context, interview *models.Interview) (string, error)
	GetReport(interviewID uuid.UUID) (*models.ReportResponse, error)
	ListInterviews() ([]models.InterviewSummary, error)
	RankCandidates(ctx context.Context, jobTitle, jobDescription string) (*models.RankingResult, error)
}

type reportService struct {
	gemini        GeminiService
	interviewRepo repositories.InterviewRepository
	questionRepo  repositories.QuestionRepository
	vectorStore   VectorStoreService
	indexer       ReportIndexer
	prompts       *PromptBuilder
}

func NewReportService(
	gemini GeminiService,
	interviewRepo repositories.InterviewRepository,
	questionRepo repositories.QuestionRepository,
	vectorStore VectorStoreService,
	indexer ReportIndexer,
	prompts *PromptBuilder,
) ReportService {
	return &reportService{
		gemini:        gemini,
		interviewRepo: interviewRepo,
		questionRepo:  questionRepo,
		vectorStore:   vectorStore,
		indexer:       indexer,
		prompts:       prompts,
	}
}

// CompleteInterview implements ReportService.
func (s *reportService) CompleteInterview(ctx context.Context, interview *models.Interview) (string, error) {
	questions, err := s.questionRepo.ListByInterview(interview.ID)
	if err != nil {
		return "", err
	}

	finalScore := averageScore(questions)
	summary := FormatTranscriptSummary(interview.Transcript)

	closing, err := s.gemini.GenerateText(ctx, s.prompts.BuildClosingPrompt(summary), 0.7)
	if err != nil {
		log.Printf("⚠️ Closing message generation failed, using default: %v\n", err)
		closing = defaultClosingMessage
	}

	report := s.compileDetailedReport(ctx, questions, interview.Transcript)

	now := time.Now()
	interview.Status = models.StatusCompleted
	interview.Completed = true
	interview.FinalScore = &finalScore
	interview.Feedback = &models.InterviewFeedback{
		FeedbackText: closing,
		GeneratedAt:  now,
	}
	interview.DetailedReport = report
	interview.Transcript = append(interview.Transcript, models.Turn{
		Speaker:   models.SpeakerInterviewer,
		Text:      closing,
		Timestamp: now,
	})

	if err := s.interviewRepo.Update(interview); err != nil {
		return "", err
	}

	// Hand the fresh report to the indexer right away; the worker's poller
	// picks it up later if the queue is unavailable.
	if s.indexer != nil {
		s.indexer.EnqueueJob(interview.ID)
	}

	log.Printf("✅ Interview %s completed with final score %.1f\n", interview.ID, finalScore)
	return closing, nil
}

// compileDetailedReport asks the model for the structured HR report. When the
// response cannot be parsed as structured data, the narrative is kept verbatim
// in RawAnalysis so a report always exists for a completed interview.
func (s *reportService) compileDetailedReport(ctx context.Context, questions []models.InterviewQuestion, transcript models.Transcript) *models.DetailedReport {
	prompt := s.prompts.BuildReportPrompt(FormatQuestionLedger(questions), FormatTranscript(transcript))

	response, err := s.gemini.GenerateText(ctx, prompt, 0.4)
	if err != nil {
		log.Printf("⚠️ Detailed report generation failed: %v\n", err)
		return &models.DetailedReport{
			RawAnalysis: "Report generation failed. The interview transcript and question scores are available for manual review.",
			GeneratedAt: time.Now(),
		}
	}

	var report models.DetailedReport
	if err := DecodeJSON(response, &report); err != nil {
		log.Printf("⚠️ Detailed report was not valid JSON, keeping raw text: %v\n", err)
		return &models.DetailedReport{
			RawAnalysis: response,
			GeneratedAt: time.Now(),
		}
	}

	report.GeneratedAt = time.Now()
	return &report
}

// averageScore is the mean of the scored questions; interviews with no
// scored questions get zero.
func averageScore(questions []models.InterviewQuestion) float64 {
	var sum, count int
	for _, q := range questions {
		if q.Score != nil {
			sum += *q.Score
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// GetReport implements ReportService.
func (s *reportService) GetReport(interviewID uuid.UUID) (*models.ReportResponse, error) {
	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("interview %s: %w", interviewID, ErrNotFound)
		}
		return nil, err
	}

	if interview.DetailedReport == nil {
		return nil, fmt.Errorf("report for interview %s not ready: %w", interviewID, ErrNotFound)
	}

	return &models.ReportResponse{
		InterviewID:    interview.ID.String(),
		CandidateEmail: interview.Candidate.Email,
		FinalScore:     interview.FinalScore,
		DetailedReport: interview.DetailedReport,
	}, nil
}

// ListInterviews implements ReportService.
func (s *reportService) ListInterviews() ([]models.InterviewSummary, error) {
	interviews, err := s.interviewRepo.ListWithCandidates()
	if err != nil {
		return nil, err
	}

	summaries := make([]models.InterviewSummary, 0, len(interviews))
	for _, iv := range interviews {
		summaries = append(summaries, models.InterviewSummary{
			InterviewID:    iv.ID.String(),
			CandidateEmail: iv.Candidate.Email,
			Status:         string(iv.Status),
			FinalScore:     iv.FinalScore,
			CreatedAt:      iv.CreatedAt,
		})
	}
	return summaries, nil
}

// RankCandidates implements ReportService. Candidate summaries come from the
// completed interviews; the vector index narrows them to the most relevant
// reports for the job description when it is reachable, and the full pool is
// used when it is not.
func (s *reportService) RankCandidates(ctx context.Context, jobTitle, jobDescription string) (*models.RankingResult, error) {
	completed, err := s.interviewRepo.FindCompleted()
	if err != nil {
		return nil, err
	}
	if len(completed) == 0 {
		return nil, fmt.Errorf("no completed interviews to rank: %w", ErrNotFound)
	}

	relevant := s.retrieveRelevantEmails(ctx, jobTitle, jobDescription)

	summaries := buildCandidateSummaries(completed, relevant)
	prompt := s.prompts.BuildRankingPrompt(jobTitle, jobDescription, summaries)

	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.3)
	if err != nil {
		return nil, err
	}

	result := &models.RankingResult{JobTitle: jobTitle}

	var rankings []models.CandidateRanking
	if err := DecodeJSON(response, &rankings); err != nil {
		log.Printf("⚠️ Ranking response was not valid JSON, returning raw text: %v\n", err)
		result.ParseFailed = true
		result.RawText = response
		return result, nil
	}

	if len(rankings) > 3 {
		rankings = rankings[:3]
	}
	result.Rankings = rankings
	return result, nil
}

// retrieveRelevantEmails queries the vector index for the reports closest to
// the job description. Failures here fall back to nil, which means "consider
// everyone" rather than failing the ranking.
func (s *reportService) retrieveRelevantEmails(ctx context.Context, jobTitle, jobDescription string) map[string]bool {
	embedding, err := s.gemini.GenerateEmbedding(ctx, jobTitle+"\n"+jobDescription)
	if err != nil {
		log.Printf("⚠️ Job description embedding failed, ranking over all candidates: %v\n", err)
		return nil
	}

	matches, err := s.vectorStore.SearchReports(ctx, embedding, 10)
	if err != nil {
		log.Printf("⚠️ Vector search failed, ranking over all candidates: %v\n", err)
		return nil
	}
	if len(matches) == 0 {
		return nil
	}

	emails := make(map[string]bool, len(matches))
	for _, m := range matches {
		emails[m.CandidateEmail] = true
	}
	return emails
}

func buildCandidateSummaries(interviews []models.Interview, relevant map[string]bool) string {
	var sb strings.Builder
	for _, iv := range interviews {
		if relevant != nil && !relevant[iv.Candidate.Email] {
			continue
		}
		writeCandidateSummary(&sb, iv)
	}

	// Retrieval can filter everyone out; fall back to the full pool.
	if sb.Len() == 0 {
		for _, iv := range interviews {
			writeCandidateSummary(&sb, iv)
		}
	}
	return sb.String()
}

func writeCandidateSummary(sb *strings.Builder, iv models.Interview) {
	fmt.Fprintf(sb, "Candidate: %s\n", iv.Candidate.Email)
	if iv.FinalScore != nil {
		fmt.Fprintf(sb, "Final Score: %.1f/10\n", *iv.FinalScore)
	}
	if iv.DetailedReport != nil {
		if iv.DetailedReport.ExecutiveSummary != "" {
			fmt.Fprintf(sb, "Summary: %s\n", iv.DetailedReport.ExecutiveSummary)
		} else if iv.DetailedReport.RawAnalysis != "" {
			fmt.Fprintf(sb, "Assessment: %s\n", truncate(iv.DetailedReport.RawAnalysis, 500))
		}
		if iv.DetailedReport.Recommendation != "" {
			fmt.Fprintf(sb, "Recommendation: %s\n", iv.DetailedReport.Recommendation)
		}
	}
	sb.WriteString("\n")
}

// truncate shortens text to max runes, never splitting a multi-byte rune.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
