package types

// AlignedResume is the output of the alignment engine: the candidate's
// content reordered and enhanced to emphasize overlap with the job posting.
type AlignedResume struct {
	ProfileID       string            `json:"profile_id"`
	JobTitle        string            `json:"job_title"`
	Metadata        AlignmentMetadata `json:"alignment_metadata"`
	Sections        AlignedSections   `json:"aligned_sections"`
	Recommendations []string          `json:"recommendations"`
}

// AlignmentMetadata summarizes how well the profile matches the job.
// OverallScore is a normalized weighted combination of SkillsScore and
// ExperienceScore and always lies in [0,1].
type AlignmentMetadata struct {
	OverallScore     float64  `json:"overall_alignment_score"`
	SkillsScore      float64  `json:"skills_alignment_score"`
	ExperienceScore  float64  `json:"experience_alignment_score"`
	JobKeywordCount  int      `json:"job_keyword_count"`
	MatchingKeywords []string `json:"matching_keywords"`
}

// AlignedSections holds the resume content sections after alignment.
// This is also the record shape the ATS engine scores and auto-fixes.
type AlignedSections struct {
	Summary     string              `json:"summary"`
	Skills      SkillsAlignment     `json:"skills"`
	Experience  []ScoredExperience  `json:"experience"`
	Education   []EducationEntry    `json:"education,omitempty"`
	Projects    []ProjectEntry      `json:"projects,omitempty"`
	JobKeywords map[string][]string `json:"job_keywords,omitempty"`
}

// SkillsAlignment holds the candidate's skills scored and ordered against
// the job keywords. AlignedSkills is sorted by descending relevance with
// ties broken by original input order.
type SkillsAlignment struct {
	AlignedSkills  []string            `json:"aligned_skills"`
	MatchingSkills []string            `json:"matching_skills"`
	Categories     map[string][]string `json:"skill_categories"`
	Scores         map[string]float64  `json:"skill_scores"`
	Score          float64             `json:"alignment_score"`
}

// Skill category names used by SkillsAlignment.Categories.
const (
	CategoryTechnical = "technical"
	CategoryTools     = "tools"
	CategorySoft      = "soft"
	CategoryOther     = "other"
)

// ScoredExperience is an experience entry annotated with its alignment
// against the job keywords. AlignedDescription may carry an append-only
// enhancement of the original description; the original text is preserved.
type ScoredExperience struct {
	ExperienceEntry
	AlignmentScore     float64  `json:"alignment_score"`
	MatchingKeywords   []string `json:"matching_keywords"`
	AlignedDescription string   `json:"aligned_description,omitempty"`
}

// EffectiveDescription returns the enhanced description when present,
// falling back to the original.
func (s *ScoredExperience) EffectiveDescription() string {
	if s.AlignedDescription != "" {
		return s.AlignedDescription
	}
	return s.Description
}
