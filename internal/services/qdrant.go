package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// VectorStoreService indexes completed interview reports so the ranking
// operation can retrieve the most relevant candidates for a job description.
type VectorStoreService interface {
	InitCollection() error
	UpsertReportChunk(ctx context.Context, interviewID, candidateEmail, text string, embedding []float32) error
	SearchReports(ctx context.Context, queryEmbedding []float32, limit int) ([]ReportMatch, error)
	DeleteAll(ctx context.Context) error
}

type ReportMatch struct {
	InterviewID    string
	CandidateEmail string
	Score          float32
	Text           string
}

type vectorStoreService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewVectorStoreService(urlStr, apiKey, collectionName string) (VectorStoreService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &vectorStoreService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 output size
	}, nil
}

// InitCollection implements VectorStoreService.
func (q *vectorStoreService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		log.Println("✅ Qdrant collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertReportChunk implements VectorStoreService.
func (q *vectorStoreService) UpsertReportChunk(ctx context.Context, interviewID, candidateEmail, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"interview_id":    interviewID,
			"candidate_email": candidateEmail,
			"text":            text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("%w: qdrant upsert: %v", ErrCapability, err)
	}

	return nil
}

// SearchReports implements VectorStoreService.
func (q *vectorStoreService) SearchReports(ctx context.Context, queryEmbedding []float32, limit int) ([]ReportMatch, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: qdrant search: %v", ErrCapability, err)
	}

	var matches []ReportMatch
	for _, point := range searchResult {
		match := ReportMatch{Score: point.Score}

		if v, ok := point.Payload["interview_id"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				match.InterviewID = s.StringValue
			}
		}
		if v, ok := point.Payload["candidate_email"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				match.CandidateEmail = s.StringValue
			}
		}
		if v, ok := point.Payload["text"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				match.Text = s.StringValue
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// DeleteAll implements VectorStoreService. Used by the administrative wipe.
func (q *vectorStoreService) DeleteAll(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if !exists {
		return nil
	}

	if err := q.client.DeleteCollection(ctx, q.collectionName); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	return q.InitCollection()
}
