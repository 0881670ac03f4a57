package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sumitk/ai-interviewer/internal/models"
)

type QuestionRepository interface {
	Create(question *models.InterviewQuestion) error
	// FindLatestByNumber returns the most recently created question with the
	// given sequence number; last write wins when duplicates exist.
	FindLatestByNumber(interviewID uuid.UUID, number int) (*models.InterviewQuestion, error)
	UpdateAnswer(id uuid.UUID, answer string) error
	UpdateScore(id uuid.UUID, score int, feedback string) error
	ListByInterview(interviewID uuid.UUID) ([]models.InterviewQuestion, error)
	DeleteAll() error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *models.InterviewQuestion) error {
	if err := r.db.Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *questionRepository) FindLatestByNumber(interviewID uuid.UUID, number int) (*models.InterviewQuestion, error) {
	var question models.InterviewQuestion
	err := r.db.
		Where("interview_id = ? AND question_number = ?", interviewID, number).
		Order("created_at DESC").
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}
	return &question, nil
}

func (r *questionRepository) UpdateAnswer(id uuid.UUID, answer string) error {
	result := r.db.Model(&models.InterviewQuestion{}).
		Where("id = ?", id).
		Update("answer", answer)
	if result.Error != nil {
		return fmt.Errorf("failed to update answer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *questionRepository) UpdateScore(id uuid.UUID, score int, feedback string) error {
	result := r.db.Model(&models.InterviewQuestion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"score":    score,
			"feedback": feedback,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *questionRepository) ListByInterview(interviewID uuid.UUID) ([]models.InterviewQuestion, error) {
	var questions []models.InterviewQuestion
	err := r.db.
		Where("interview_id = ?", interviewID).
		Order("question_number ASC, created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) DeleteAll() error {
	if err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.InterviewQuestion{}).Error; err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}
	return nil
}
