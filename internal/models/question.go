package models

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionResumeBased QuestionType = "resume_based"
	excelTypePrefix                  = "excel_"
)

// ExcelQuestionType builds the ledger type tag for a technical question of
// the given difficulty tier, e.g. "excel_moderate".
func ExcelQuestionType(tier string) QuestionType {
	return QuestionType(excelTypePrefix + tier)
}

type InterviewQuestion struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InterviewID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"interview_id"`
	QuestionNumber int          `gorm:"not null" json:"question_number"`
	QuestionText   string       `gorm:"type:text;not null" json:"question_text"`
	Answer         *string      `gorm:"type:text" json:"answer,omitempty"`
	Score          *int         `json:"score,omitempty"`
	Feedback       *string      `gorm:"type:text" json:"feedback,omitempty"`
	QuestionType   QuestionType `gorm:"type:text;not null" json:"question_type"`
	CreatedAt      time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Interview Interview `gorm:"foreignKey:InterviewID" json:"-"`
}

func (InterviewQuestion) TableName() string {
	return "interview_questions"
}
