package services

import (
	"fmt"
	"strings"

	"sumitk/ai-interviewer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildGreetingPrompt opens a fresh interview using the candidate's resume
// for context.
func (pb *PromptBuilder) BuildGreetingPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert Excel technical interviewer. The candidate's resume shows:
%s

Start the interview professionally:
1. Greet the candidate
2. Ask for their name
3. Maintain a friendly yet professional tone

Keep the greeting brief and natural.`, resumeText)
}

// BuildResumeQuestionPrompt produces one resume-probing question. For the
// second question the previous Q/A pair is included so the model can decide
// between a follow-up and a fresh question.
func (pb *PromptBuilder) BuildResumeQuestionPrompt(analysis *models.ResumeAnalysis, questionNumber int, prevQuestion, prevAnswer string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `You are conducting an Excel technical interview. The candidate's resume shows:
%s

Based on their resume, generate a thoughtful question about their Excel experience or skills.
If Excel skills are mentioned (has_excel_experience: %t), focus on their specific Excel experience.
If no Excel skills are mentioned, ask a general question about their experience that might relate to Excel usage.
`, analysis.RawText, analysis.HasExcelExperience)

	if prevQuestion != "" {
		fmt.Fprintf(&sb, `
The previous question and answer were:
Q: %s
A: %s

Decide whether a follow-up on that answer or a fresh resume-based question is more useful, and ask it.
`, prevQuestion, prevAnswer)
	}

	fmt.Fprintf(&sb, `
The question should be conversational and direct. This is question #%d of the interview.
Ask only ONE clear question.`, questionNumber)

	return sb.String()
}

// BuildExcelQuestionPrompt produces one technical question at the given
// difficulty tier.
func (pb *PromptBuilder) BuildExcelQuestionPrompt(tier Difficulty, questionNumber int, transcriptSummary string) string {
	return fmt.Sprintf(`You are conducting an Excel technical interview. Generate a %s level Excel question.

This is question #%d of the interview.

For context, here's how the interview has gone so far:
%s

The question should test actual Excel knowledge and be specific enough to gauge technical proficiency.
For %s difficulty:
- Easy: Basic functions, simple formulas, or interface questions
- Moderate: VLOOKUP, HLOOKUP, IF statements, PivotTables, or basic data analysis
- Difficult: Complex nested functions, advanced PivotTables, Power Query, macros, or VBA concepts

Ask only ONE clear question.`, tier, questionNumber, transcriptSummary, tier)
}

// BuildScoringPrompt asks for a single integer score for one answer.
func (pb *PromptBuilder) BuildScoringPrompt(question, answer string) string {
	return fmt.Sprintf(`You are an Excel assessment expert. Score the candidate's answer to this interview question.

QUESTION:
%s

CANDIDATE'S ANSWER:
%s

Rate the answer on a scale of 0 to 10, where 0 is completely wrong or empty and 10 is a perfect, expert-level answer.

Respond with ONLY a single integer between 0 and 10.`, question, answer)
}

// BuildClosingPrompt generates the candidate-facing closing message. No
// scores are disclosed here.
func (pb *PromptBuilder) BuildClosingPrompt(transcriptSummary string) string {
	return fmt.Sprintf(`You have just finished conducting an Excel technical interview. Here is how it went:
%s

Write a short, warm closing message to the candidate:
1. Thank them for their time
2. Congratulate them on completing the interview
3. Let them know the team will follow up with results

Do NOT mention any scores or assessments. Keep it to 2-3 sentences.`, transcriptSummary)
}

// BuildReportPrompt asks for the full HR-facing structured report.
func (pb *PromptBuilder) BuildReportPrompt(qaSection, transcript string) string {
	return fmt.Sprintf(`You are an Excel assessment expert. Analyze this completed technical interview and produce a structured report.

QUESTIONS AND ANSWERS:
%s

FULL TRANSCRIPT:
%s

Return your response in the following JSON format:
{
  "executive_summary": "<3-5 sentence overview of the candidate's performance>",
  "skill_breakdown": [{"category": "<skill category>", "assessment": "<assessment>"}],
  "question_analysis": [{"question_number": <n>, "question": "<text>", "answer": "<text>", "analysis": "<what was good, what was missing>"}],
  "soft_skills": "<communication and reasoning assessment>",
  "strengths": ["<strength>"],
  "gaps": ["<gap>"],
  "cultural_fit": "<notes on attitude and collaboration signals>",
  "recommendation": "<final proficiency level: Beginner/Intermediate/Advanced/Expert, and hire guidance>"
}

Be objective and specific. Reference actual answers from the interview.`, qaSection, transcript)
}

// BuildRankingPrompt asks for the top candidates for a job posting.
func (pb *PromptBuilder) BuildRankingPrompt(jobTitle, jobDescription, candidateSummaries string) string {
	return fmt.Sprintf(`You are an expert technical recruiter. Rank the best candidates for this position based on their completed Excel interview results.

POSITION: %s

JOB DESCRIPTION:
%s

CANDIDATES:
%s

Select up to the TOP 3 candidates. Return your response in the following JSON format:
[
  {"rank": 1, "email": "<candidate email>", "match_score": <0-100>, "justification": "<2-3 sentences on why they match>"}
]

Rank strictly by fit for the position. Return ONLY the JSON array.`, jobTitle, jobDescription, candidateSummaries)
}

// FormatTranscript renders the complete transcript for prompting.
func FormatTranscript(transcript models.Transcript) string {
	if len(transcript) == 0 {
		return "No conversation recorded."
	}

	var lines []string
	for _, turn := range transcript {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(turn.Speaker), turn.Text))
	}
	return strings.Join(lines, "\n")
}

// FormatTranscriptSummary renders the last few turns, truncated, as cheap
// context for question generation.
func FormatTranscriptSummary(transcript models.Transcript) string {
	if len(transcript) == 0 {
		return "No previous conversation."
	}

	start := 0
	if len(transcript) > 6 {
		start = len(transcript) - 6
	}

	var lines []string
	for _, turn := range transcript[start:] {
		text := turn.Text
		if runes := []rune(text); len(runes) > 100 {
			text = string(runes[:100]) + "..."
		}
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(turn.Speaker), text))
	}
	return strings.Join(lines, "\n")
}

// FormatQuestionLedger renders the Q/A ledger for the report prompt.
func FormatQuestionLedger(questions []models.InterviewQuestion) string {
	if len(questions) == 0 {
		return "No questions were asked."
	}

	var sb strings.Builder
	for _, q := range questions {
		answer := "No answer provided"
		if q.Answer != nil && *q.Answer != "" {
			answer = *q.Answer
		}
		fmt.Fprintf(&sb, "Question %d (%s): %s\nAnswer: %s\n", q.QuestionNumber, q.QuestionType, q.QuestionText, answer)
		if q.Score != nil {
			fmt.Fprintf(&sb, "Score: %d/10\n", *q.Score)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
