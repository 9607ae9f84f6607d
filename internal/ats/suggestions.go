package ats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/danielh/resume-optimizer/internal/types"
)

const maxMissingInSuggestion = 10

// GenerateSuggestions turns the component analyses into prioritized,
// actionable recommendations, sorted High to Low and by category within a
// priority band.
func (o *Optimizer) GenerateSuggestions(score int, keyword types.KeywordAnalysis, section types.SectionAnalysis, formatting types.FormattingAnalysis) []types.Suggestion {
	var suggestions []types.Suggestion

	if len(keyword.MissingKeywords) > 0 {
		priority := types.PriorityMedium
		if keyword.DensityScore < o.minKeywordDensity {
			priority = types.PriorityHigh
		}
		missing := keyword.MissingKeywords
		if len(missing) > maxMissingInSuggestion {
			missing = missing[:maxMissingInSuggestion]
		}
		suggestions = append(suggestions, types.Suggestion{
			Category: types.SuggestionKeywords,
			Priority: priority,
			Issue: fmt.Sprintf("Resume covers %d of %d job keywords (%.0f%%)",
				keyword.MatchedCount, keyword.TotalJobKeywords, keyword.DensityScore*100),
			Suggestion:  fmt.Sprintf("Incorporate these missing keywords where truthful: %s", strings.Join(missing, ", ")),
			AutoFixable: true,
		})
	}

	for _, name := range section.MissingSections {
		suggestions = append(suggestions, types.Suggestion{
			Category:    types.SuggestionSections,
			Priority:    types.PriorityHigh,
			Issue:       fmt.Sprintf("Required section %q is missing or empty", name),
			Suggestion:  fmt.Sprintf("Add a %q section with relevant content", CanonicalHeaders[name]),
			AutoFixable: true,
		})
	}

	for _, issue := range formatting.Issues {
		priority := types.PriorityLow
		if issue.Severity == "high" || issue.Severity == "medium" {
			priority = types.PriorityMedium
		}
		suggestions = append(suggestions, types.Suggestion{
			Category:    types.SuggestionFormatting,
			Priority:    priority,
			Issue:       fmt.Sprintf("Formatting rule %q violated", issue.Rule),
			Suggestion:  issue.Description,
			AutoFixable: false,
		})
	}

	switch {
	case score < 70:
		suggestions = append(suggestions, types.Suggestion{
			Category:    types.SuggestionGeneral,
			Priority:    types.PriorityHigh,
			Issue:       "Overall ATS score is low",
			Suggestion:  "Consider a substantial revision: align content with the job description and use standard section headers",
			AutoFixable: false,
		})
	case score < 90:
		suggestions = append(suggestions, types.Suggestion{
			Category:    types.SuggestionGeneral,
			Priority:    types.PriorityMedium,
			Issue:       "Resume is close to ATS optimized",
			Suggestion:  "Address the remaining keyword and formatting gaps to reach the target score",
			AutoFixable: false,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		pi, pj := priorityRank(suggestions[i].Priority), priorityRank(suggestions[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return categoryRank(suggestions[i].Category) < categoryRank(suggestions[j].Category)
	})

	return suggestions
}

func priorityRank(p string) int {
	switch p {
	case types.PriorityHigh:
		return 0
	case types.PriorityMedium:
		return 1
	default:
		return 2
	}
}

func categoryRank(c string) int {
	switch c {
	case types.SuggestionKeywords:
		return 0
	case types.SuggestionSections:
		return 1
	case types.SuggestionFormatting:
		return 2
	default:
		return 3
	}
}
