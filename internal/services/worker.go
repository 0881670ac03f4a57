package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sumitk/ai-interviewer/internal/models"
	"sumitk/ai-interviewer/internal/repositories"
)

// Worker indexes completed interview reports into the vector store in the
// background so the ranking endpoint can retrieve them. Jobs arrive either
// directly after report compilation or from the poller, which picks up
// interviews whose indexing previously failed.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(interviewID uuid.UUID)
}

type worker struct {
	interviewRepo repositories.InterviewRepository
	gemini        GeminiService
	vectorStore   VectorStoreService
	chunker       TextChuncker
	jobQueue      chan uuid.UUID
	concurrency   int
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

const (
	reportChunkSize    = 1000
	reportChunkOverlap = 200
)

func NewWorker(
	interviewRepo repositories.InterviewRepository,
	gemini GeminiService,
	vectorStore VectorStoreService,
	chunker TextChuncker,
	concurrency int,
) Worker {
	return &worker{
		interviewRepo: interviewRepo,
		gemini:        gemini,
		vectorStore:   vectorStore,
		chunker:       chunker,
		jobQueue:      make(chan uuid.UUID, 100),
		concurrency:   concurrency,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting report indexer with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnindexed(ctx)

	log.Println("✅ Report indexer started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping report indexer...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Report indexer stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(interviewID uuid.UUID) {
	select {
	case w.jobQueue <- interviewID:
		log.Printf("📥 Index job %s enqueued\n", interviewID)
	case <-w.stopChan:
		log.Printf("⚠️  Indexer stopped, cannot enqueue job %s\n", interviewID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Indexer %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Indexer #%d stopped\n", workerID)
			return
		case interviewID := <-w.jobQueue:
			log.Printf("👷 Indexer #%d processing interview %s\n", workerID, interviewID)
			if err := w.indexReport(ctx, interviewID); err != nil {
				log.Printf("❌ Indexer #%d failed on interview %s: %v\n", workerID, interviewID, err)
			} else {
				log.Printf("✅ Indexer #%d indexed interview %s\n", workerID, interviewID)
			}
		}
	}
}

func (w *worker) pollUnindexed(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting unindexed reports poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Unindexed reports poller stopped")
			return
		case <-ticker.C:
			pending, err := w.interviewRepo.FindUnindexed(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch unindexed interviews: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d unindexed reports\n", len(pending))
			}

			for _, interview := range pending {
				w.EnqueueJob(interview.ID)
			}
		}
	}
}

// indexReport chunks the interview's report text, embeds each chunk, and
// upserts the vectors. The interview is only marked indexed once every chunk
// landed, so partial failures retry on the next poll.
func (w *worker) indexReport(ctx context.Context, interviewID uuid.UUID) error {
	interview, err := w.interviewRepo.FindByID(interviewID)
	if err != nil {
		return err
	}
	if interview.ReportIndexed {
		return nil
	}
	if interview.DetailedReport == nil {
		return fmt.Errorf("interview %s has no report to index", interviewID)
	}

	text := reportIndexText(interview)
	chunks := w.chunker.ChunkText(text, reportChunkSize, reportChunkOverlap)
	log.Printf("📄 Interview %s report split into %d chunks\n", interviewID, len(chunks))

	for _, chunk := range chunks {
		embedding, err := w.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return err
		}
		if err := w.vectorStore.UpsertReportChunk(ctx, interview.ID.String(), interview.Candidate.Email, chunk, embedding); err != nil {
			return err
		}
	}

	return w.interviewRepo.MarkIndexed(interview.ID)
}

// reportIndexText flattens the structured report into retrievable prose.
func reportIndexText(interview *models.Interview) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Candidate: %s\n\n", interview.Candidate.Email)
	if interview.FinalScore != nil {
		fmt.Fprintf(&sb, "Final Score: %.1f/10\n\n", *interview.FinalScore)
	}

	r := interview.DetailedReport
	if r.ExecutiveSummary != "" {
		fmt.Fprintf(&sb, "Summary: %s\n\n", r.ExecutiveSummary)
	}
	for _, skill := range r.SkillBreakdown {
		fmt.Fprintf(&sb, "%s: %s\n", skill.Category, skill.Assessment)
	}
	if r.SoftSkills != "" {
		fmt.Fprintf(&sb, "\nSoft Skills: %s\n", r.SoftSkills)
	}
	if len(r.Strengths) > 0 {
		fmt.Fprintf(&sb, "\nStrengths: %s\n", strings.Join(r.Strengths, "; "))
	}
	if len(r.Gaps) > 0 {
		fmt.Fprintf(&sb, "Gaps: %s\n", strings.Join(r.Gaps, "; "))
	}
	if r.Recommendation != "" {
		fmt.Fprintf(&sb, "\nRecommendation: %s\n", r.Recommendation)
	}
	if r.RawAnalysis != "" {
		fmt.Fprintf(&sb, "\n%s\n", r.RawAnalysis)
	}

	return sb.String()
}
