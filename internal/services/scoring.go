package services

import (
	"context"
	"log"

	"sumitk/ai-interviewer/internal/models"
	"sumitk/ai-interviewer/internal/repositories"
)

// ScoringService evaluates one answered question. Scoring never blocks the
// interview: a failed model call or an unparsable response leaves the
// question unscored and the dialogue moves on.
type ScoringService interface {
	ScoreAnswer(ctx context.Context, question *models.InterviewQuestion, answer string)
}

type scoringService struct {
	gemini       GeminiService
	questionRepo repositories.QuestionRepository
	prompts      *PromptBuilder
}

func NewScoringService(gemini GeminiService, questionRepo repositories.QuestionRepository, prompts *PromptBuilder) ScoringService {
	return &scoringService{
		gemini:       gemini,
		questionRepo: questionRepo,
		prompts:      prompts,
	}
}

// ScoreAnswer implements ScoringService.
func (s *scoringService) ScoreAnswer(ctx context.Context, question *models.InterviewQuestion, answer string) {
	prompt := s.prompts.BuildScoringPrompt(question.QuestionText, answer)

	response, err := s.gemini.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		log.Printf("⚠️ Scoring failed for question %d: %v\n", question.QuestionNumber, err)
		return
	}

	score, ok := ExtractScore(response)
	if !ok {
		log.Printf("⚠️ No score found in model response for question %d\n", question.QuestionNumber)
		return
	}

	feedback := feedbackForScore(score)
	if err := s.questionRepo.UpdateScore(question.ID, score, feedback); err != nil {
		log.Printf("⚠️ Failed to persist score for question %d: %v\n", question.QuestionNumber, err)
		return
	}

	question.Score = &score
	question.Feedback = &feedback
}

func feedbackForScore(score int) string {
	switch {
	case score < 4:
		return "The answer shows a basic understanding but misses key concepts."
	case score <= 7:
		return "A good answer covering the main points, with room for more depth."
	default:
		return "An excellent, thorough answer demonstrating strong command of the topic."
	}
}
