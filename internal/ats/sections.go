package ats

import (
	"sort"
	"strings"

	"github.com/danielh/resume-optimizer/internal/types"
)

// Required resume section names, and the canonical headers a rendered
// document should carry for them.
var (
	RequiredSections = []string{"education", "experience", "skills", "summary"}

	CanonicalHeaders = map[string]string{
		"summary":    "Professional Summary",
		"skills":     "Skills",
		"experience": "Experience",
		"education":  "Education",
	}
)

// CheckSectionPresence checks the four required resume sections. A section
// counts as present only when it holds non-empty content: a non-blank
// summary string, a non-empty skills list, at least one experience entry,
// at least one education entry.
func (o *Optimizer) CheckSectionPresence(sections types.AlignedSections) types.SectionAnalysis {
	present := map[string]bool{
		"summary":    strings.TrimSpace(sections.Summary) != "",
		"skills":     len(sections.Skills.AlignedSkills) > 0,
		"experience": len(sections.Experience) > 0,
		"education":  len(sections.Education) > 0,
	}

	var presentNames, missingNames []string
	for _, name := range RequiredSections {
		if present[name] {
			presentNames = append(presentNames, name)
		} else {
			missingNames = append(missingNames, name)
		}
	}
	sort.Strings(presentNames)
	sort.Strings(missingNames)

	return types.SectionAnalysis{
		Score:           float64(len(presentNames)) / float64(len(RequiredSections)),
		PresentSections: presentNames,
		MissingSections: missingNames,
		PresentCount:    len(presentNames),
		TotalRequired:   len(RequiredSections),
	}
}
