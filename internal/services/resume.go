package services

import (
	"fmt"
	"strings"

	"sumitk/ai-interviewer/internal/models"
)

// ResumeProcessor extracts text from an uploaded resume and derives the
// analysis record that seeds the interview: an Excel-experience flag, a
// skill list, and a declared-proficiency label.
type ResumeProcessor interface {
	Process(filePath string) (*models.ResumeAnalysis, error)
}

type resumeProcessor struct {
	pdfParser PDFParserService
}

func NewResumeProcessor(pdfParser PDFParserService) ResumeProcessor {
	return &resumeProcessor{pdfParser: pdfParser}
}

func (r *resumeProcessor) Process(filePath string) (*models.ResumeAnalysis, error) {
	text, err := r.pdfParser.ExtractText(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to process resume: %w", err)
	}

	return AnalyzeResumeText(text), nil
}

var excelKeywords = []string{
	"excel", "spreadsheet", "vlookup", "hlookup", "pivot table", "pivot tables",
	"power query", "macro", "macros", "vba", "xlookup",
}

// advancedMarkers indicate hands-on work beyond everyday spreadsheet use.
var advancedMarkers = []string{
	"vba", "macro", "power query", "power pivot", "array formula", "index match",
}

var intermediateMarkers = []string{
	"vlookup", "hlookup", "xlookup", "pivot table", "pivot tables", "conditional formatting",
}

var skillKeywords = []string{
	"excel", "vba", "power query", "power bi", "tableau", "sql", "python",
	"data analysis", "financial modeling", "reporting", "dashboards",
	"statistics", "forecasting",
}

// AnalyzeResumeText runs the keyword heuristics over extracted resume text.
func AnalyzeResumeText(text string) *models.ResumeAnalysis {
	lower := strings.ToLower(text)

	analysis := &models.ResumeAnalysis{
		RawText: text,
		Skills:  []string{},
	}

	for _, kw := range excelKeywords {
		if strings.Contains(lower, kw) {
			analysis.HasExcelExperience = true
			break
		}
	}

	for _, kw := range skillKeywords {
		if strings.Contains(lower, kw) {
			analysis.Skills = append(analysis.Skills, kw)
		}
	}

	analysis.ExcelProficiency = classifyProficiency(lower, analysis.HasExcelExperience)

	return analysis
}

func classifyProficiency(lowerText string, hasExcel bool) string {
	if !hasExcel {
		return "Beginner"
	}

	advanced := 0
	for _, marker := range advancedMarkers {
		if strings.Contains(lowerText, marker) {
			advanced++
		}
	}

	intermediate := 0
	for _, marker := range intermediateMarkers {
		if strings.Contains(lowerText, marker) {
			intermediate++
		}
	}

	switch {
	case advanced >= 2:
		return "Expert"
	case advanced == 1:
		return "Advanced"
	case intermediate >= 1:
		return "Intermediate"
	default:
		return "Beginner"
	}
}
