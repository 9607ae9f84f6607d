package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielh/resume-optimizer/internal/types"
)

func TestPrintJobDescription(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobDescription(&types.JobDescription{
		Title:   "Backend Engineer",
		Company: "Initech",
		Skills:  []string{"Go", "PostgreSQL", "Docker", "AWS", "Kubernetes", "Terraform"},
	})

	out := buf.String()
	assert.Contains(t, out, "EXTRACTED JOB DESCRIPTION")
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "Initech")
	assert.Contains(t, out, "... and 1 more")
}

func TestPrintJobDescriptionNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobDescription(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAlignment(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAlignment(&types.AlignedResume{
		Metadata: types.AlignmentMetadata{
			OverallScore:     0.75,
			SkillsScore:      0.8,
			ExperienceScore:  0.7,
			MatchingKeywords: []string{"python", "django"},
		},
		Recommendations: []string{"Add more cloud experience"},
	})

	out := buf.String()
	assert.Contains(t, out, "CONTENT ALIGNMENT")
	assert.Contains(t, out, "0.75")
	assert.Contains(t, out, "python, django")
	assert.Contains(t, out, "Add more cloud experience")
}

func TestPrintOptimizationWithAutoFix(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOptimization(&types.OptimizationResult{
		Analysis: types.ATSAnalysis{
			Score:    72,
			Category: types.CategoryFair,
			Status:   "Moderate Improvements Needed",
		},
		AutoFix: &types.AutoFixResult{
			FixesApplied: []string{"Added placeholder education section"},
			FixCount:     1,
			UpdatedScore: 85,
			Improvement:  13,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "ATS OPTIMIZATION")
	assert.Contains(t, out, "72 (Fair)")
	assert.Contains(t, out, "Auto-fix applied 1 fixes")
	assert.Contains(t, out, "85 (+13)")
}

func TestPrintSuggestionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSuggestions(nil)

	assert.Contains(t, buf.String(), "NO SUGGESTIONS")
}

func TestPrintSuggestions(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSuggestions([]types.Suggestion{
		{Category: types.SuggestionKeywords, Priority: types.PriorityHigh, Suggestion: "Add missing keywords"},
	})

	out := buf.String()
	assert.Contains(t, out, "IMPROVEMENT SUGGESTIONS")
	assert.Contains(t, out, "High/Keywords")
	assert.Contains(t, out, "Add missing keywords")
}
