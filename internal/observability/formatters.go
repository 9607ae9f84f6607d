// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/danielh/resume-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobDescription outputs a human-readable summary of the extracted job.
func (p *Printer) PrintJobDescription(job *types.JobDescription) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	if job.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	}
	sb.WriteString("\n")

	if len(job.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(job.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.Skills[i]))
		}
		if len(job.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(job.Requirements) > 0 {
		sb.WriteString("Requirements:\n")
		count := min(len(job.Requirements), 3)
		for i := 0; i < count; i++ {
			req := job.Requirements[i]
			if len(req) > 50 {
				req = req[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", req))
		}
		if len(job.Requirements) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.Requirements)-3))
		}
	}

	p.printBox("EXTRACTED JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAlignment outputs the alignment scores and top matched keywords.
func (p *Printer) PrintAlignment(aligned *types.AlignedResume) {
	if aligned == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:     %.2f\n", aligned.Metadata.OverallScore))
	sb.WriteString(fmt.Sprintf("Skills:      %.2f\n", aligned.Metadata.SkillsScore))
	sb.WriteString(fmt.Sprintf("Experience:  %.2f\n", aligned.Metadata.ExperienceScore))

	if len(aligned.Metadata.MatchingKeywords) > 0 {
		keywords := strings.Join(aligned.Metadata.MatchingKeywords, ", ")
		if len(keywords) > 45 {
			keywords = keywords[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nMatched: %s\n", keywords))
	}

	if len(aligned.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		count := min(len(aligned.Recommendations), 3)
		for i := 0; i < count; i++ {
			rec := aligned.Recommendations[i]
			if len(rec) > 50 {
				rec = rec[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
		if len(aligned.Recommendations) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(aligned.Recommendations)-3))
		}
	}

	p.printBox("CONTENT ALIGNMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptimization outputs the ATS score breakdown and applied fixes.
func (p *Printer) PrintOptimization(result *types.OptimizationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS Score:   %d (%s)\n", result.Analysis.Score, result.Analysis.Category))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", result.Analysis.Status))
	sb.WriteString(fmt.Sprintf("Breakdown:   keywords %d / sections %d / formatting %d\n",
		result.Analysis.Breakdown.Keyword,
		result.Analysis.Breakdown.Section,
		result.Analysis.Breakdown.Formatting))

	if result.AutoFix != nil && result.AutoFix.FixCount > 0 {
		sb.WriteString(fmt.Sprintf("\nAuto-fix applied %d fixes:\n", result.AutoFix.FixCount))
		count := min(len(result.AutoFix.FixesApplied), maxItemsToShow)
		for i := 0; i < count; i++ {
			fix := result.AutoFix.FixesApplied[i]
			if len(fix) > 50 {
				fix = fix[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", fix))
		}
		if len(result.AutoFix.FixesApplied) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.AutoFix.FixesApplied)-maxItemsToShow))
		}
		sb.WriteString(fmt.Sprintf("Updated score: %d (+%d)\n", result.AutoFix.UpdatedScore, result.AutoFix.Improvement))
	}

	p.printBox("ATS OPTIMIZATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs the prioritized improvement suggestions.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO SUGGESTIONS: RESUME IS ATS OPTIMIZED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d suggestions:\n\n", len(suggestions)))

	count := min(len(suggestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := suggestions[i]
		text := s.Suggestion
		if len(text) > 45 {
			text = text[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ [%s/%s]\n", s.Priority, s.Category))
		sb.WriteString(fmt.Sprintf("  %s\n", text))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(suggestions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(suggestions)-maxItemsToShow))
	}

	p.printBox("IMPROVEMENT SUGGESTIONS", sb.String())
}
