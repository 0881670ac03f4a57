package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sumitk/ai-interviewer/internal/models"
	"sumitk/ai-interviewer/internal/repositories"
)

// fakeGemini answers prompts from a scripted responder. The default
// responder scores every scoring prompt and echoes a canned line otherwise.
type fakeGemini struct {
	mu      sync.Mutex
	prompts []string
	respond func(prompt string) (string, error)
}

func newFakeGemini() *fakeGemini {
	return &fakeGemini{
		respond: func(prompt string) (string, error) {
			if strings.Contains(prompt, "Score the candidate's answer") {
				return "7", nil
			}
			return "Here is my next question for you.", nil
		},
	}
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.respond(prompt)
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

func (f *fakeGemini) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeGemini) promptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type fakeCandidateRepo struct {
	candidates map[uuid.UUID]*models.Candidate
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{candidates: make(map[uuid.UUID]*models.Candidate)}
}

func (f *fakeCandidateRepo) Create(c *models.Candidate) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.candidates[c.ID] = c
	return nil
}

func (f *fakeCandidateRepo) FindByID(id uuid.UUID) (*models.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return c, nil
}

func (f *fakeCandidateRepo) EmailExists(email string) (bool, error) {
	for _, c := range f.candidates {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCandidateRepo) DeleteAll() error {
	f.candidates = make(map[uuid.UUID]*models.Candidate)
	return nil
}

type fakeInterviewRepo struct {
	interviews map[uuid.UUID]*models.Interview
	order      []uuid.UUID
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: make(map[uuid.UUID]*models.Interview)}
}

func (f *fakeInterviewRepo) Create(iv *models.Interview) error {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	iv.CreatedAt = time.Now()
	f.interviews[iv.ID] = iv
	f.order = append(f.order, iv.ID)
	return nil
}

func (f *fakeInterviewRepo) FindByID(id uuid.UUID) (*models.Interview, error) {
	iv, ok := f.interviews[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return iv, nil
}

func (f *fakeInterviewRepo) FindIncompleteByCandidate(candidateID uuid.UUID) (*models.Interview, error) {
	for i := len(f.order) - 1; i >= 0; i-- {
		iv := f.interviews[f.order[i]]
		if iv.CandidateID == candidateID && !iv.Completed {
			return iv, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeInterviewRepo) Update(iv *models.Interview) error {
	if _, ok := f.interviews[iv.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.interviews[iv.ID] = iv
	return nil
}

func (f *fakeInterviewRepo) ListWithCandidates() ([]models.Interview, error) {
	var out []models.Interview
	for i := len(f.order) - 1; i >= 0; i-- {
		out = append(out, *f.interviews[f.order[i]])
	}
	return out, nil
}

func (f *fakeInterviewRepo) FindCompleted() ([]models.Interview, error) {
	var out []models.Interview
	for _, id := range f.order {
		if iv := f.interviews[id]; iv.Status == models.StatusCompleted {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) FindUnindexed(limit int) ([]models.Interview, error) {
	var out []models.Interview
	for _, id := range f.order {
		iv := f.interviews[id]
		if iv.Status == models.StatusCompleted && !iv.ReportIndexed {
			out = append(out, *iv)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) MarkIndexed(id uuid.UUID) error {
	iv, ok := f.interviews[id]
	if !ok {
		return repositories.ErrNotFound
	}
	iv.ReportIndexed = true
	return nil
}

func (f *fakeInterviewRepo) DeleteAll() error {
	f.interviews = make(map[uuid.UUID]*models.Interview)
	f.order = nil
	return nil
}

type fakeQuestionRepo struct {
	questions []*models.InterviewQuestion
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{}
}

func (f *fakeQuestionRepo) Create(q *models.InterviewQuestion) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	q.CreatedAt = time.Now()
	f.questions = append(f.questions, q)
	return nil
}

func (f *fakeQuestionRepo) FindLatestByNumber(interviewID uuid.UUID, number int) (*models.InterviewQuestion, error) {
	for i := len(f.questions) - 1; i >= 0; i-- {
		q := f.questions[i]
		if q.InterviewID == interviewID && q.QuestionNumber == number {
			return q, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeQuestionRepo) UpdateAnswer(id uuid.UUID, answer string) error {
	for _, q := range f.questions {
		if q.ID == id {
			q.Answer = &answer
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeQuestionRepo) UpdateScore(id uuid.UUID, score int, feedback string) error {
	for _, q := range f.questions {
		if q.ID == id {
			q.Score = &score
			q.Feedback = &feedback
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeQuestionRepo) ListByInterview(interviewID uuid.UUID) ([]models.InterviewQuestion, error) {
	var out []models.InterviewQuestion
	for _, q := range f.questions {
		if q.InterviewID == interviewID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) DeleteAll() error {
	f.questions = nil
	return nil
}

type fakeVectorStore struct {
	upserts []ReportMatch
	matches []ReportMatch
	cleared bool
}

func (f *fakeVectorStore) InitCollection() error { return nil }

func (f *fakeVectorStore) UpsertReportChunk(_ context.Context, interviewID, candidateEmail, text string, _ []float32) error {
	f.upserts = append(f.upserts, ReportMatch{
		InterviewID:    interviewID,
		CandidateEmail: candidateEmail,
		Text:           text,
	})
	return nil
}

func (f *fakeVectorStore) SearchReports(_ context.Context, _ []float32, _ int) ([]ReportMatch, error) {
	return f.matches, nil
}

func (f *fakeVectorStore) DeleteAll(_ context.Context) error {
	f.cleared = true
	f.upserts = nil
	return nil
}

type fakeIndexer struct {
	enqueued []uuid.UUID
}

func (f *fakeIndexer) EnqueueJob(interviewID uuid.UUID) {
	f.enqueued = append(f.enqueued, interviewID)
}

// seedCandidate registers a candidate with the given proficiency.
func seedCandidate(repo *fakeCandidateRepo, email, proficiency string) *models.Candidate {
	c := &models.Candidate{
		Email: email,
		ResumeAnalysis: &models.ResumeAnalysis{
			RawText:            fmt.Sprintf("Resume of %s", email),
			HasExcelExperience: proficiency != "Beginner",
			ExcelProficiency:   proficiency,
		},
	}
	repo.Create(c)
	return c
}
