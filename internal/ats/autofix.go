package ats

import (
	"fmt"
	"strings"

	"github.com/danielh/resume-optimizer/internal/types"
)

// Placeholder content inserted for missing sections. Placeholders are
// explicit about being placeholders so a later editing pass cannot mistake
// them for real candidate data.
const (
	placeholderSummary = "Professional with relevant experience and skills."

	placeholderExperienceTitle = "Relevant Experience"
	placeholderExperienceDesc  = "[Add details of your relevant experience here]"

	placeholderDegree      = "Relevant Education"
	placeholderInstitution = "[Add your education details here]"
)

// AutoFixIssues applies safe additive fixes to the resume sections: filling
// missing sections with placeholder content, injecting missing job keywords
// into the summary and skills list, and standardizing section headers.
// Existing content is never removed, truncated, or reordered.
func (o *Optimizer) AutoFixIssues(sections types.AlignedSections, keyword types.KeywordAnalysis, section types.SectionAnalysis) types.AutoFixResult {
	fixed := copySections(sections)
	var applied []string

	for _, name := range section.MissingSections {
		switch name {
		case "summary":
			fixed.Summary = placeholderSummary
			applied = append(applied, "Added placeholder professional summary")
		case "skills":
			skills := keyword.MissingKeywords
			if len(skills) > o.maxSkillsKeywords {
				skills = skills[:o.maxSkillsKeywords]
			}
			if len(skills) == 0 {
				skills = []string{"[Add your key skills here]"}
			}
			fixed.Skills.AlignedSkills = append(fixed.Skills.AlignedSkills, skills...)
			applied = append(applied, fmt.Sprintf("Added skills section with %d entries", len(skills)))
		case "experience":
			fixed.Experience = append(fixed.Experience, types.ScoredExperience{
				ExperienceEntry: types.ExperienceEntry{
					Title:       placeholderExperienceTitle,
					Description: placeholderExperienceDesc,
				},
			})
			applied = append(applied, "Added placeholder experience section")
		case "education":
			fixed.Education = append(fixed.Education, types.EducationEntry{
				Degree:      placeholderDegree,
				Institution: placeholderInstitution,
			})
			applied = append(applied, "Added placeholder education section")
		}
	}

	if keyword.DensityScore < o.minKeywordDensity && len(keyword.MissingKeywords) > 0 {
		if added := o.injectSummaryKeywords(&fixed, keyword.MissingKeywords); added > 0 {
			applied = append(applied, fmt.Sprintf("Added %d missing keywords to summary", added))
		}
		if added := o.injectSkillKeywords(&fixed, keyword.MissingKeywords); added > 0 {
			applied = append(applied, fmt.Sprintf("Added %d missing keywords to skills", added))
		}
	}

	applied = append(applied, standardizeHeaders(section)...)

	return types.AutoFixResult{
		FixedSections: fixed,
		FixesApplied:  applied,
		FixCount:      len(applied),
	}
}

// injectSummaryKeywords appends an "Experienced with ..." sentence listing
// missing keywords, capped at the configured limit. Returns the number of
// keywords added.
func (o *Optimizer) injectSummaryKeywords(sections *types.AlignedSections, missing []string) int {
	take := missing
	if len(take) > o.maxSummaryKeywords {
		take = take[:o.maxSummaryKeywords]
	}
	if len(take) == 0 {
		return 0
	}

	sentence := fmt.Sprintf("Experienced with %s.", strings.Join(take, ", "))
	if sections.Summary == "" {
		sections.Summary = sentence
	} else {
		sections.Summary = strings.TrimSpace(sections.Summary) + " " + sentence
	}
	return len(take)
}

// injectSkillKeywords merges missing keywords into the skills list, skipping
// case-insensitive duplicates and honoring the configured cap.
func (o *Optimizer) injectSkillKeywords(sections *types.AlignedSections, missing []string) int {
	existing := make(map[string]struct{}, len(sections.Skills.AlignedSkills))
	for _, skill := range sections.Skills.AlignedSkills {
		existing[strings.ToLower(skill)] = struct{}{}
	}

	added := 0
	for _, kw := range missing {
		if added >= o.maxSkillsKeywords {
			break
		}
		if _, ok := existing[strings.ToLower(kw)]; ok {
			continue
		}
		sections.Skills.AlignedSkills = append(sections.Skills.AlignedSkills, kw)
		existing[strings.ToLower(kw)] = struct{}{}
		added++
	}
	return added
}

// standardizeHeaders records the canonical headers the renderer should use
// for sections that were missing. The header fix is informational; the
// rendering layer owns the headers themselves.
func standardizeHeaders(section types.SectionAnalysis) []string {
	var applied []string
	for _, name := range section.MissingSections {
		if header, ok := CanonicalHeaders[name]; ok {
			applied = append(applied, fmt.Sprintf("Standardized %s header to %q", name, header))
		}
	}
	return applied
}

// copySections deep-copies the mutable parts of the resume sections so fixes
// never alias the caller's data.
func copySections(sections types.AlignedSections) types.AlignedSections {
	out := sections

	out.Skills.AlignedSkills = append([]string(nil), sections.Skills.AlignedSkills...)
	out.Skills.MatchingSkills = append([]string(nil), sections.Skills.MatchingSkills...)
	out.Experience = append([]types.ScoredExperience(nil), sections.Experience...)
	out.Education = append([]types.EducationEntry(nil), sections.Education...)
	out.Projects = append([]types.ProjectEntry(nil), sections.Projects...)

	if sections.Skills.Categories != nil {
		out.Skills.Categories = make(map[string][]string, len(sections.Skills.Categories))
		for k, v := range sections.Skills.Categories {
			out.Skills.Categories[k] = append([]string(nil), v...)
		}
	}
	if sections.Skills.Scores != nil {
		out.Skills.Scores = make(map[string]float64, len(sections.Skills.Scores))
		for k, v := range sections.Skills.Scores {
			out.Skills.Scores[k] = v
		}
	}
	if sections.JobKeywords != nil {
		out.JobKeywords = make(map[string][]string, len(sections.JobKeywords))
		for k, v := range sections.JobKeywords {
			out.JobKeywords[k] = append([]string(nil), v...)
		}
	}

	return out
}
