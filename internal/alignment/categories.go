package alignment

import (
	"strings"

	"github.com/danielh/resume-optimizer/internal/types"
)

// Category keyword lists. A skill belongs to the first category whose list
// contains a substring of the lowercased skill; unmatched skills fall into
// the "other" bucket.
var (
	technicalKeywords = []string{
		"python", "java", "javascript", "typescript", "golang", "react",
		"node", "sql", "aws", "docker", "kubernetes", "terraform",
	}
	toolKeywords = []string{
		"git", "jenkins", "jira", "confluence", "slack", "trello",
	}
	softKeywords = []string{
		"leadership", "communication", "teamwork", "problem", "analytical",
		"mentoring",
	}
)

// CategorizeSkill assigns a skill to one of the fixed categories:
// technical, tools, soft, or other. First matching category wins.
func CategorizeSkill(skill string) string {
	lower := strings.ToLower(skill)

	for _, kw := range technicalKeywords {
		if strings.Contains(lower, kw) {
			return types.CategoryTechnical
		}
	}
	for _, kw := range toolKeywords {
		if strings.Contains(lower, kw) {
			return types.CategoryTools
		}
	}
	for _, kw := range softKeywords {
		if strings.Contains(lower, kw) {
			return types.CategorySoft
		}
	}
	return types.CategoryOther
}
