package ats

import (
	"strings"

	"github.com/danielh/resume-optimizer/internal/types"
)

// formattingRules is the fixed ATS formatting checklist. The rule count is
// the denominator of the formatting score even though only a subset can be
// detected from plain-text content.
var formattingRules = map[string]string{
	"no_images":            "Resume should not contain images or graphics",
	"no_tables":            "Avoid complex tables that may not parse correctly",
	"no_headers_footers":   "Avoid headers and footers",
	"standard_fonts":       "Use standard fonts (Arial, Calibri, Times New Roman)",
	"simple_formatting":    "Use simple bullet points and standard formatting",
	"no_text_boxes":        "Avoid text boxes and columns",
	"standard_file_format": "Use .docx or .pdf format",
}

// Issue weights by severity.
const (
	weightHigh   = 1.0
	weightMedium = 0.5
	weightLow    = 0.25

	// maxSpecialCharRatio is the fraction of non-word characters above which
	// the content is flagged as over-formatted.
	maxSpecialCharRatio = 0.05

	// maxLongLineRatio is the fraction of overly long lines tolerated before
	// flagging a paragraph-structure issue.
	maxLongLineRatio = 0.3
	longLineLength   = 100
)

var imageIndicators = []string{"[image]", "[graphic]", "[photo]", "img:", "src="}

// CheckFormattingRules applies the formatting checklist to the flattened
// resume text. The score is 1 - weighted_issues/total_checks, clamped at
// zero; ATSFriendly is judged against the configured threshold.
func (o *Optimizer) CheckFormattingRules(sections types.AlignedSections) types.FormattingAnalysis {
	text := resumeToText(sections)
	lowerText := strings.ToLower(text)

	var issues []types.FormattingIssue
	var issueWeight float64

	// Embedded image or markup artifacts.
	for _, indicator := range imageIndicators {
		if strings.Contains(lowerText, indicator) {
			issues = append(issues, types.FormattingIssue{
				Rule:        "no_images",
				Description: formattingRules["no_images"],
				Severity:    "high",
			})
			issueWeight += weightHigh
			break
		}
	}

	// Table-like column separators.
	if strings.Contains(text, "|") || strings.Contains(text, "\t\t") {
		issues = append(issues, types.FormattingIssue{
			Rule:        "no_tables",
			Description: formattingRules["no_tables"],
			Severity:    "medium",
		})
		issueWeight += weightMedium
	}

	// Excessive special characters indicate complex formatting.
	if specialCharRatio(text) > maxSpecialCharRatio {
		issues = append(issues, types.FormattingIssue{
			Rule:        "simple_formatting",
			Description: formattingRules["simple_formatting"],
			Severity:    "medium",
		})
		issueWeight += weightMedium
	}

	// Overly long unbroken lines.
	if longLineRatio(text) > maxLongLineRatio {
		issues = append(issues, types.FormattingIssue{
			Rule:        "standard_formatting",
			Description: "Lines are too long, may indicate formatting issues",
			Severity:    "low",
		})
		issueWeight += weightLow
	}

	totalChecks := len(formattingRules)
	score := 1.0 - issueWeight/float64(totalChecks)
	if score < 0 {
		score = 0
	}

	return types.FormattingAnalysis{
		Score:       score,
		Issues:      issues,
		TotalChecks: totalChecks,
		ATSFriendly: score >= o.friendlyThreshold,
	}
}

// specialCharRatio returns the fraction of characters outside the word,
// whitespace, and basic punctuation classes.
func specialCharRatio(text string) float64 {
	if text == "" {
		return 0
	}
	special := 0
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ' ', r == '\n', r == '\t', r == '_':
		case r == '-', r == '.', r == ',', r == '(', r == ')', r == '[', r == ']':
		default:
			special++
		}
	}
	return float64(special) / float64(len([]rune(text)))
}

// longLineRatio returns the fraction of lines longer than longLineLength.
func longLineRatio(text string) float64 {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return 0
	}
	long := 0
	for _, line := range lines {
		if len(line) > longLineLength {
			long++
		}
	}
	return float64(long) / float64(len(lines))
}
