package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	StatusActive    InterviewStatus = "ACTIVE"
	StatusCompleted InterviewStatus = "COMPLETED"
)

// Speaker roles for transcript turns.
const (
	SpeakerInterviewer = "interviewer"
	SpeakerCandidate   = "candidate"
)

type Turn struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is the append-only ordered record of turns for one interview.
type Transcript []Turn

func (t Transcript) Value() (driver.Value, error) {
	if t == nil {
		t = Transcript{}
	}
	data, err := json.Marshal(t)
	return string(data), err
}

func (t *Transcript) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan transcript: unexpected type %T", value)
	}
	return json.Unmarshal(bytes, t)
}

// InterviewFeedback is the candidate-facing closing feedback, written once
// at termination.
type InterviewFeedback struct {
	FeedbackText string    `json:"feedback_text"`
	GeneratedAt  time.Time `json:"generated_at"`
}

func (f InterviewFeedback) Value() (driver.Value, error) {
	data, err := json.Marshal(f)
	return string(data), err
}

func (f *InterviewFeedback) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan feedback: unexpected type %T", value)
	}
	return json.Unmarshal(bytes, f)
}

type SkillAssessment struct {
	Category   string `json:"category"`
	Assessment string `json:"assessment"`
}

type QuestionAnalysis struct {
	QuestionNumber int    `json:"question_number"`
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	Score          *int   `json:"score,omitempty"`
	Analysis       string `json:"analysis"`
}

// DetailedReport is the HR-only structured report. When the model's
// narrative cannot be parsed as structured data, RawAnalysis carries the
// unstructured text and the structured sections stay empty.
type DetailedReport struct {
	ExecutiveSummary string             `json:"executive_summary,omitempty"`
	SkillBreakdown   []SkillAssessment  `json:"skill_breakdown,omitempty"`
	QuestionAnalysis []QuestionAnalysis `json:"question_analysis,omitempty"`
	SoftSkills       string             `json:"soft_skills,omitempty"`
	Strengths        []string           `json:"strengths,omitempty"`
	Gaps             []string           `json:"gaps,omitempty"`
	CulturalFit      string             `json:"cultural_fit,omitempty"`
	Recommendation   string             `json:"recommendation,omitempty"`
	RawAnalysis      string             `json:"raw_analysis,omitempty"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

func (r DetailedReport) Value() (driver.Value, error) {
	data, err := json.Marshal(r)
	return string(data), err
}

func (r *DetailedReport) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan detailed report: unexpected type %T", value)
	}
	return json.Unmarshal(bytes, r)
}

type Interview struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Status          InterviewStatus    `gorm:"type:text;not null;default:'ACTIVE'" json:"status"`
	CurrentQuestion int                `gorm:"not null;default:0" json:"current_question"`
	Completed       bool               `gorm:"not null;default:false" json:"completed"`
	Transcript      Transcript         `gorm:"type:jsonb" json:"transcript,omitempty"`
	Feedback        *InterviewFeedback `gorm:"type:jsonb" json:"feedback,omitempty"`
	DetailedReport  *DetailedReport    `gorm:"type:jsonb" json:"detailed_report,omitempty"`
	FinalScore      *float64           `json:"final_score,omitempty"`
	ReportIndexed   bool               `gorm:"not null;default:false" json:"-"`
	CreatedAt       time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
}

func (Interview) TableName() string {
	return "interviews"
}
