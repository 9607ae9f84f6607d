package alignment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/danielh/resume-optimizer/internal/keywords"
	"github.com/danielh/resume-optimizer/internal/types"
)

// yearRangePattern matches explicit duration fields like "2019-2024".
var yearRangePattern = regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4})`)

// yearsPerEntry is the rough tenure assumed for entries without an explicit
// duration, and defaultYears covers profiles with no experience at all.
const (
	yearsPerEntry = 2
	defaultYears  = 3
)

// GenerateSummary builds a deterministic professional summary aligned with
// the job: a years-of-experience estimate, the top matching skills, the job
// title, and a specialization phrase derived from the job keywords.
func (e *Engine) GenerateSummary(profile *types.CandidateProfile, job *types.JobDescription, jobKeywords *keywords.JobKeywords) string {
	years := EstimateYearsOfExperience(profile.Experience)
	topSkills := e.topMatchingSkills(profile.Skills, jobKeywords)

	var parts []string
	if len(topSkills) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Experienced professional with %d+ years of expertise in %s",
			years, strings.Join(topSkills, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf(
			"Experienced professional with %d+ years in the field", years))
	}

	if job.Title != "" {
		parts = append(parts, fmt.Sprintf("Seeking to contribute as %s", job.Title))
	}

	parts = append(parts, specializationPhrase(jobKeywords.All))
	parts = append(parts, "Demonstrated ability to work in collaborative environments and drive project success")

	return strings.Join(parts, ". ") + "."
}

// topMatchingSkills returns up to TopSummarySkills candidate skills that
// overlap the job keywords, in descending relevance order.
func (e *Engine) topMatchingSkills(skills []string, jobKeywords *keywords.JobKeywords) []string {
	aligned := e.AlignSkills(skills, jobKeywords)

	var top []string
	for _, skill := range aligned.AlignedSkills {
		if aligned.Scores[skill] <= 0 && !e.skillMatchesAny(skill, jobKeywords.All) {
			continue
		}
		top = append(top, skill)
		if len(top) >= e.topSummarySkills {
			break
		}
	}
	return top
}

// specializationPhrase picks a focus sentence from the dominant theme of the
// job keywords.
func specializationPhrase(jobKeywords keywords.Set) string {
	switch {
	case jobKeywords.Has("machine") || jobKeywords.Has("learning"):
		return "Specialized in developing and deploying machine learning solutions"
	case jobKeywords.Has("web") || jobKeywords.Has("frontend"):
		return "Focused on building scalable web applications and user interfaces"
	case jobKeywords.Has("devops") || jobKeywords.Has("infrastructure"):
		return "Expert in cloud infrastructure and DevOps practices"
	default:
		return "Proven track record of delivering high-quality technical solutions"
	}
}

// EstimateYearsOfExperience derives a years figure from experience entries.
// Explicit "YYYY-YYYY" duration fields are summed when present; entries
// without one count as yearsPerEntry. An empty history yields defaultYears.
func EstimateYearsOfExperience(entries []types.ExperienceEntry) int {
	if len(entries) == 0 {
		return defaultYears
	}

	total := 0
	for _, entry := range entries {
		if m := yearRangePattern.FindStringSubmatch(entry.Duration); m != nil {
			start, _ := strconv.Atoi(m[1])
			end, _ := strconv.Atoi(m[2])
			if end >= start {
				total += end - start
				continue
			}
		}
		total += yearsPerEntry
	}

	if total == 0 {
		total = yearsPerEntry
	}
	return total
}
