package types

// ATSAnalysis holds the composite compliance score for a resume.
// Computed fresh on each scoring pass and never mutated; a post-fix pass
// produces a new value.
type ATSAnalysis struct {
	Score       int            `json:"ats_score"` // 0-100
	Category    string         `json:"category"`  // Excellent, Good, Fair, Poor
	Status      string         `json:"status"`
	Breakdown   ScoreBreakdown `json:"score_breakdown"`
	MeetsTarget bool           `json:"meets_target"`
}

// ScoreBreakdown reports the three component scores on a 0-100 scale.
type ScoreBreakdown struct {
	Keyword    int `json:"keyword_score"`
	Section    int `json:"section_score"`
	Formatting int `json:"formatting_score"`
}

// Score category names mapped from fixed thresholds.
const (
	CategoryExcellent = "Excellent" // >= 90
	CategoryGood      = "Good"      // 80-89
	CategoryFair      = "Fair"      // 70-79
	CategoryPoor      = "Poor"      // < 70
)

// KeywordAnalysis reports how many job keywords the resume covers.
type KeywordAnalysis struct {
	DensityScore     float64  `json:"density_score"` // [0,1]
	MatchingKeywords []string `json:"matching_keywords"`
	MissingKeywords  []string `json:"missing_keywords"`
	TotalJobKeywords int      `json:"total_job_keywords"`
	MatchedCount     int      `json:"matched_count"`
}

// SectionAnalysis reports which of the required resume sections are present
// with non-empty content.
type SectionAnalysis struct {
	Score           float64  `json:"section_score"` // present/required
	PresentSections []string `json:"present_sections"`
	MissingSections []string `json:"missing_sections"`
	PresentCount    int      `json:"present_count"`
	TotalRequired   int      `json:"total_required"`
}

// FormattingAnalysis reports violations of the ATS formatting checklist.
type FormattingAnalysis struct {
	Score       float64           `json:"formatting_score"` // 1 - issues/checks
	Issues      []FormattingIssue `json:"formatting_issues"`
	TotalChecks int               `json:"total_checks"`
	ATSFriendly bool              `json:"ats_friendly"`
}

// FormattingIssue describes one violated formatting rule.
type FormattingIssue struct {
	Rule        string `json:"rule"`
	Description string `json:"description"`
	Severity    string `json:"severity"` // high, medium, low
}

// Suggestion is one prioritized improvement recommendation.
type Suggestion struct {
	Category    string `json:"category"` // Keywords, Sections, Formatting, General
	Priority    string `json:"priority"` // High, Medium, Low
	Issue       string `json:"issue"`
	Suggestion  string `json:"suggestion"`
	AutoFixable bool   `json:"auto_fixable"`
}

// Suggestion category and priority values.
const (
	SuggestionKeywords   = "Keywords"
	SuggestionSections   = "Sections"
	SuggestionFormatting = "Formatting"
	SuggestionGeneral    = "General"

	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// AutoFixResult records the additive fixes applied to raise the ATS score.
// Fixes never remove or reorder existing content, so Improvement is
// non-negative by construction; it is still computed from a full rescore
// rather than assumed.
type AutoFixResult struct {
	FixedSections AlignedSections `json:"fixed_content"`
	FixesApplied  []string        `json:"fixes_applied"`
	FixCount      int             `json:"fix_count"`
	UpdatedScore  int             `json:"updated_ats_score"`
	Improvement   int             `json:"score_improvement"`
}

// OptimizationResult is the full output of one ATS optimization pass.
type OptimizationResult struct {
	ProfileID   string             `json:"profile_id"`
	JobTitle    string             `json:"job_title"`
	Analysis    ATSAnalysis        `json:"ats_analysis"`
	Keywords    KeywordAnalysis    `json:"keyword_analysis"`
	Sections    SectionAnalysis    `json:"section_analysis"`
	Formatting  FormattingAnalysis `json:"formatting_analysis"`
	Suggestions []Suggestion       `json:"suggestions"`
	AutoFix     *AutoFixResult     `json:"auto_fix_results,omitempty"`
}
