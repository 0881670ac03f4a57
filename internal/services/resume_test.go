package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeResumeText_Proficiency(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		hasExcel bool
		want     string
	}{
		{
			"no excel mention",
			"Experienced chef with a passion for Italian cuisine.",
			false,
			"Beginner",
		},
		{
			"plain excel mention",
			"Tracked inventory in Excel spreadsheets.",
			true,
			"Beginner",
		},
		{
			"intermediate markers",
			"Built VLOOKUP-driven reports and pivot tables in Excel.",
			true,
			"Intermediate",
		},
		{
			"one advanced marker",
			"Automated monthly Excel reporting with Power Query.",
			true,
			"Advanced",
		},
		{
			"multiple advanced markers",
			"Wrote VBA macros and Power Query pipelines for Excel dashboards.",
			true,
			"Expert",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnalyzeResumeText(tt.text)
			require.NotNil(t, analysis)
			assert.Equal(t, tt.hasExcel, analysis.HasExcelExperience)
			assert.Equal(t, tt.want, analysis.ExcelProficiency)
			assert.Equal(t, tt.text, analysis.RawText)
		})
	}
}

func TestAnalyzeResumeText_Skills(t *testing.T) {
	analysis := AnalyzeResumeText("Data analysis in Excel and SQL, plus Tableau dashboards.")

	assert.Contains(t, analysis.Skills, "excel")
	assert.Contains(t, analysis.Skills, "sql")
	assert.Contains(t, analysis.Skills, "tableau")
	assert.Contains(t, analysis.Skills, "data analysis")
	assert.NotContains(t, analysis.Skills, "python")
}
