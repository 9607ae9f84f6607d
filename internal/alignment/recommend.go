package alignment

import (
	"fmt"
	"strings"

	"github.com/danielh/resume-optimizer/internal/keywords"
	"github.com/danielh/resume-optimizer/internal/types"
)

// Recommendation thresholds.
const (
	lowSkillsAlignment  = 0.4
	strongEntryScore    = 0.5
	minExperienceCount  = 2
	maxKeywordsInAdvice = 5
)

// recommendations generates human-readable improvement advice from alignment
// gaps. Ordering is by severity: skills gaps first, then experience gaps,
// then the general assessment.
func (e *Engine) recommendations(overall float64, skillsAlignment types.SkillsAlignment, experiences []types.ScoredExperience, jobKeywords *keywords.JobKeywords) []string {
	var recs []string

	// Skills gaps.
	if skillsAlignment.Score < lowSkillsAlignment {
		recs = append(recs, "Add more technical skills that match the job requirements")
	}
	if missing := e.missingHighValueKeywords(skillsAlignment, jobKeywords); len(missing) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Consider incorporating these job keywords: %s", strings.Join(missing, ", ")))
	}

	// Experience gaps.
	if !hasStrongExperience(experiences) {
		recs = append(recs, "Rephrase experience descriptions to better match job keywords")
	}
	if len(experiences) < minExperienceCount {
		recs = append(recs, "Include more relevant work experiences")
	}

	// General assessment.
	switch {
	case overall < 0.3:
		recs = append(recs, "Consider emphasizing more relevant skills and experiences")
	case overall < 0.6:
		recs = append(recs, "Good alignment - consider quantifying achievements")
	default:
		recs = append(recs, "Excellent alignment with job requirements")
	}

	return recs
}

// missingHighValueKeywords returns up to maxKeywordsInAdvice job skill
// keywords that no candidate skill covers, in sorted order for determinism.
func (e *Engine) missingHighValueKeywords(skillsAlignment types.SkillsAlignment, jobKeywords *keywords.JobKeywords) []string {
	covered := e.extractor.Extract(strings.Join(skillsAlignment.AlignedSkills, " "))
	missing := jobKeywords.Skills.Subtract(covered).Sorted()
	if len(missing) > maxKeywordsInAdvice {
		missing = missing[:maxKeywordsInAdvice]
	}
	return missing
}

func hasStrongExperience(experiences []types.ScoredExperience) bool {
	for _, exp := range experiences {
		if exp.AlignmentScore > strongEntryScore {
			return true
		}
	}
	return false
}
