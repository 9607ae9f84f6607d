package alignment

import "strings"

// Achievement clauses appended when a description carries no quantifiable
// evidence. The pass is append-only: existing sentences are never rewritten.
const (
	buildClause = " resulting in improved system performance and efficiency"
	leadClause  = " leading to successful project delivery and team productivity gains"
)

// HasQuantifiableEvidence reports whether the text already contains numeric
// markers (digits or percent signs) that indicate a measured achievement.
func HasQuantifiableEvidence(text string) bool {
	for _, r := range text {
		if r >= '0' && r <= '9' || r == '%' {
			return true
		}
	}
	return false
}

// EnhanceDescription appends a generic achievement clause to a description
// that lacks quantifiable evidence. This is best-effort text augmentation
// with a narrow contract: the original text is always preserved as a prefix
// of the result, and descriptions that already carry numeric evidence are
// returned unchanged.
func EnhanceDescription(description string) string {
	if description == "" || HasQuantifiableEvidence(description) {
		return description
	}

	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "developed") || strings.Contains(lower, "built") || strings.Contains(lower, "delivered"):
		return description + buildClause
	case strings.Contains(lower, "managed") || strings.Contains(lower, "led"):
		return description + leadClause
	default:
		return description
	}
}
