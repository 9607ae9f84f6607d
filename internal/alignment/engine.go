// Package alignment implements the keyword-alignment engine: it turns a job
// description and a candidate profile into a scored, reordered,
// content-enhanced aligned resume. The engine is a stateless, pure transform;
// concurrent callers may share one instance.
package alignment

import (
	"sort"
	"strings"

	"github.com/danielh/resume-optimizer/internal/keywords"
	"github.com/danielh/resume-optimizer/internal/types"
)

// Default engine options.
const (
	DefaultSkillsWeight     = 0.5
	DefaultExperienceWeight = 0.5
	DefaultTopSummarySkills = 5
	DefaultMaxExperiences   = 5

	// descriptionWeight doubles the description's contribution relative to
	// the title when scoring an experience entry.
	descriptionWeight = 2.0
)

// Options configures an alignment Engine. Zero values select defaults.
type Options struct {
	SkillsWeight     float64 // relative weight of the skills score
	ExperienceWeight float64 // relative weight of the experience score
	MinKeywordLength int     // minimum keyword token length
	TopSummarySkills int     // matching skills mentioned in the summary
	MaxExperiences   int     // experience entries kept in the aligned output
}

// Engine aligns candidate content with job requirements.
type Engine struct {
	extractor        *keywords.Extractor
	skillsWeight     float64
	experienceWeight float64
	topSummarySkills int
	maxExperiences   int
}

// NewEngine creates an Engine, validating and normalizing the weights so the
// overall alignment score always stays in [0,1]. Negative weights or a zero
// weight sum are configuration errors.
func NewEngine(opts Options) (*Engine, error) {
	if opts.SkillsWeight < 0 {
		return nil, &ConfigurationError{Option: "SkillsWeight", Message: "must be non-negative"}
	}
	if opts.ExperienceWeight < 0 {
		return nil, &ConfigurationError{Option: "ExperienceWeight", Message: "must be non-negative"}
	}

	skillsW := opts.SkillsWeight
	expW := opts.ExperienceWeight
	if skillsW == 0 && expW == 0 {
		skillsW = DefaultSkillsWeight
		expW = DefaultExperienceWeight
	}

	// Normalize at configuration time so the weighted combination is a
	// convex blend regardless of the raw values supplied.
	sum := skillsW + expW
	skillsW /= sum
	expW /= sum

	topSkills := opts.TopSummarySkills
	if topSkills <= 0 {
		topSkills = DefaultTopSummarySkills
	}
	maxExp := opts.MaxExperiences
	if maxExp <= 0 {
		maxExp = DefaultMaxExperiences
	}

	return &Engine{
		extractor:        keywords.NewExtractor(opts.MinKeywordLength),
		skillsWeight:     skillsW,
		experienceWeight: expW,
		topSummarySkills: topSkills,
		maxExperiences:   maxExp,
	}, nil
}

// AlignContent produces an AlignedResume for the given job and profile.
// Missing optional profile fields are treated as empty, never as errors.
func (e *Engine) AlignContent(job *types.JobDescription, profile *types.CandidateProfile) (*types.AlignedResume, error) {
	if job == nil {
		return nil, &ValidationError{Field: "job", Message: "job description is required"}
	}
	if profile == nil {
		return nil, &ValidationError{Field: "profile", Message: "candidate profile is required"}
	}

	jobKeywords := e.extractor.ExtractJobKeywords(job)

	skillsAlignment := e.AlignSkills(profile.Skills, jobKeywords)
	experiences := e.HighlightExperiences(profile.Experience, jobKeywords)

	expScore := averageExperienceScore(experiences)
	overall := e.skillsWeight*skillsAlignment.Score + e.experienceWeight*expScore

	summary := e.GenerateSummary(profile, job, jobKeywords)

	// Keywords the candidate's skills already cover.
	skillText := strings.Join(profile.Skills, " ")
	matching := e.extractor.Extract(skillText).Intersect(jobKeywords.All)

	kept := experiences
	if len(kept) > e.maxExperiences {
		kept = kept[:e.maxExperiences]
	}

	return &types.AlignedResume{
		ProfileID: profile.ProfileID,
		JobTitle:  job.Title,
		Metadata: types.AlignmentMetadata{
			OverallScore:     overall,
			SkillsScore:      skillsAlignment.Score,
			ExperienceScore:  expScore,
			JobKeywordCount:  len(jobKeywords.All),
			MatchingKeywords: matching.Sorted(),
		},
		Sections: types.AlignedSections{
			Summary:     summary,
			Skills:      skillsAlignment,
			Experience:  kept,
			Education:   profile.Education,
			Projects:    profile.Projects,
			JobKeywords: jobKeywords.BySection(),
		},
		Recommendations: e.recommendations(overall, skillsAlignment, experiences, jobKeywords),
	}, nil
}

// AlignSkills scores each candidate skill against the job keywords,
// categorizes it, and orders skills by descending relevance. Ties keep the
// original input order (stable sort), so repeated calls with identical input
// produce identical output.
func (e *Engine) AlignSkills(skills []string, jobKeywords *keywords.JobKeywords) types.SkillsAlignment {
	alignment := types.SkillsAlignment{
		AlignedSkills:  []string{},
		MatchingSkills: []string{},
		Categories:     map[string][]string{},
		Scores:         map[string]float64{},
	}
	if len(skills) == 0 {
		return alignment
	}

	var matching []string
	for _, skill := range skills {
		score := e.extractor.AlignmentScore(skill, jobKeywords.All)
		alignment.Scores[skill] = score

		if score > 0 || e.skillMatchesAny(skill, jobKeywords.All) {
			matching = append(matching, skill)
		}
	}

	aligned := make([]string, len(skills))
	copy(aligned, skills)
	sort.SliceStable(aligned, func(i, j int) bool {
		return alignment.Scores[aligned[i]] > alignment.Scores[aligned[j]]
	})

	categories := map[string][]string{}
	for _, skill := range aligned {
		cat := CategorizeSkill(skill)
		categories[cat] = append(categories[cat], skill)
	}

	var total float64
	for _, score := range alignment.Scores {
		total += score
	}

	alignment.AlignedSkills = aligned
	alignment.MatchingSkills = matching
	alignment.Categories = categories
	alignment.Score = total / float64(len(skills))
	return alignment
}

// skillMatchesAny reports whether any token of the skill appears in the job
// keyword set. Catches multi-word skills whose score rounds to zero.
func (e *Engine) skillMatchesAny(skill string, jobKeywords keywords.Set) bool {
	for token := range e.extractor.Extract(skill) {
		if jobKeywords.Has(token) {
			return true
		}
	}
	return false
}

// HighlightExperiences scores every experience entry against the job
// keywords and returns the entries sorted by descending combined score
// (description weighted double), stable on ties.
func (e *Engine) HighlightExperiences(entries []types.ExperienceEntry, jobKeywords *keywords.JobKeywords) []types.ScoredExperience {
	scored := make([]types.ScoredExperience, 0, len(entries))

	for _, entry := range entries {
		titleScore := e.extractor.AlignmentScore(entry.Title, jobKeywords.All)
		descScore := e.extractor.AlignmentScore(entry.Description, jobKeywords.All)
		combined := (titleScore + descriptionWeight*descScore) / (1 + descriptionWeight)

		entryKeywords := e.extractor.Extract(entry.Title + " " + entry.Description)
		matching := entryKeywords.Intersect(jobKeywords.All)

		se := types.ScoredExperience{
			ExperienceEntry:  entry,
			AlignmentScore:   combined,
			MatchingKeywords: matching.Sorted(),
		}
		if entry.Description != "" {
			se.AlignedDescription = EnhanceDescription(entry.Description)
		}
		scored = append(scored, se)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].AlignmentScore > scored[j].AlignmentScore
	})

	return scored
}

// averageExperienceScore returns the mean alignment score, 0.0 when there
// are no entries.
func averageExperienceScore(entries []types.ScoredExperience) float64 {
	if len(entries) == 0 {
		return 0.0
	}
	var total float64
	for _, entry := range entries {
		total += entry.AlignmentScore
	}
	return total / float64(len(entries))
}
