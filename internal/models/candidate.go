package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ResumeAnalysis is the one-shot analysis attached to a candidate once
// resume text extraction completes.
type ResumeAnalysis struct {
	RawText            string   `json:"raw_text"`
	HasExcelExperience bool     `json:"has_excel_experience"`
	Skills             []string `json:"skills"`
	ExcelProficiency   string   `json:"excel_proficiency"`
}

func (a ResumeAnalysis) Value() (driver.Value, error) {
	data, err := json.Marshal(a)
	return string(data), err
}

func (a *ResumeAnalysis) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan resume analysis: unexpected type %T", value)
	}
	return json.Unmarshal(bytes, a)
}

type Candidate struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email          string          `gorm:"type:text;not null;uniqueIndex" json:"email"`
	ResumeFilename string          `gorm:"type:text" json:"resume_filename"`
	ResumePath     string          `gorm:"type:text" json:"-"`
	ResumeAnalysis *ResumeAnalysis `gorm:"type:jsonb" json:"resume_analysis,omitempty"`
	CreatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}
