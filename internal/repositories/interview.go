package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sumitk/ai-interviewer/internal/models"
)

type InterviewRepository interface {
	Create(interview *models.Interview) error
	FindByID(id uuid.UUID) (*models.Interview, error)
	// FindIncompleteByCandidate returns the most recent interview for the
	// candidate that has not reached the terminal state.
	FindIncompleteByCandidate(candidateID uuid.UUID) (*models.Interview, error)
	Update(interview *models.Interview) error
	ListWithCandidates() ([]models.Interview, error)
	FindCompleted() ([]models.Interview, error)
	FindUnindexed(limit int) ([]models.Interview, error)
	MarkIndexed(id uuid.UUID) error
	DeleteAll() error
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *models.Interview) error {
	if err := r.db.Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) FindByID(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	if err := r.db.Preload("Candidate").Where("id = ?", id).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

func (r *interviewRepository) FindIncompleteByCandidate(candidateID uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.Preload("Candidate").
		Where("candidate_id = ? AND completed = ?", candidateID, false).
		Order("created_at DESC").
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find incomplete interview: %w", err)
	}
	return &interview, nil
}

func (r *interviewRepository) Update(interview *models.Interview) error {
	if err := r.db.Save(interview).Error; err != nil {
		return fmt.Errorf("failed to update interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) ListWithCandidates() ([]models.Interview, error) {
	var interviews []models.Interview
	if err := r.db.Preload("Candidate").Order("created_at DESC").Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

func (r *interviewRepository) FindCompleted() ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.Preload("Candidate").
		Where("status = ?", models.StatusCompleted).
		Order("created_at DESC").
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find completed interviews: %w", err)
	}
	return interviews, nil
}

func (r *interviewRepository) FindUnindexed(limit int) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.Preload("Candidate").
		Where("status = ? AND report_indexed = ?", models.StatusCompleted, false).
		Order("updated_at ASC").
		Limit(limit).
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed interviews: %w", err)
	}
	return interviews, nil
}

func (r *interviewRepository) MarkIndexed(id uuid.UUID) error {
	result := r.db.Model(&models.Interview{}).
		Where("id = ?", id).
		Update("report_indexed", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark interview indexed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("interview %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *interviewRepository) DeleteAll() error {
	if err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Interview{}).Error; err != nil {
		return fmt.Errorf("failed to delete interviews: %w", err)
	}
	return nil
}
