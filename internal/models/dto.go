package models

import "time"

type RegisterResponse struct {
	Message        string          `json:"message"`
	CandidateID    string          `json:"candidate_id"`
	ResumeAnalysis *ResumeAnalysis `json:"resume_analysis,omitempty"`
	Status         string          `json:"status"`
}

type StartInterviewResponse struct {
	InterviewID string `json:"interview_id"`
	Message     string `json:"message"`
	Status      string `json:"status"`
}

type AnswerRequest struct {
	Text string `json:"text" validate:"required"`
}

type AnswerResponse struct {
	Message  string `json:"message"`
	Status   string `json:"status"`
	Complete bool   `json:"complete"`
	// Audio carries the base64-encoded synthesized reply for audio answers.
	Audio string `json:"audio,omitempty"`
}

type ReportResponse struct {
	InterviewID    string          `json:"interview_id"`
	CandidateEmail string          `json:"candidate_email"`
	FinalScore     *float64        `json:"final_score,omitempty"`
	DetailedReport *DetailedReport `json:"detailed_report"`
}

type InterviewSummary struct {
	InterviewID    string    `json:"interview_id"`
	CandidateEmail string    `json:"candidate_email"`
	Status         string    `json:"status"`
	FinalScore     *float64  `json:"final_score,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type RankRequest struct {
	JobTitle       string `json:"job_title" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

type CandidateRanking struct {
	Rank          int     `json:"rank"`
	Email         string  `json:"email"`
	MatchScore    float64 `json:"match_score"`
	Justification string  `json:"justification"`
}

// RankingResult tolerates unparsable model output: when ParseFailed is set,
// RawText carries the model's answer verbatim and Rankings is empty.
type RankingResult struct {
	JobTitle    string             `json:"job_title"`
	Rankings    []CandidateRanking `json:"rankings,omitempty"`
	RawText     string             `json:"raw_text,omitempty"`
	ParseFailed bool               `json:"parse_failed,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
