// Package ats implements the ATS scoring and auto-fix engine: it computes a
// composite compliance score for an aligned resume against configurable
// keyword, section, and formatting rules, produces prioritized suggestions,
// and applies safe additive fixes to raise low scores. Like the alignment
// engine, the optimizer is a stateless transform safe for concurrent use.
package ats

import (
	"math"

	"github.com/danielh/resume-optimizer/internal/keywords"
	"github.com/danielh/resume-optimizer/internal/types"
)

// Default optimizer options.
const (
	DefaultTargetScore        = 90
	DefaultKeywordWeight      = 0.4
	DefaultSectionWeight      = 0.3
	DefaultFormattingWeight   = 0.3
	DefaultMinKeywordDensity  = 0.7
	DefaultMaxSummaryKeywords = 5
	DefaultMaxSkillsKeywords  = 10
	DefaultFriendlyThreshold  = 0.8

	// weightEpsilon is the tolerance for the weights-sum-to-one check.
	weightEpsilon = 1e-6
)

// Options configures an Optimizer. Zero values select defaults; the three
// scoring weights must be supplied together and sum to 1.0.
type Options struct {
	TargetScore        int     // ATS score that counts as "meets target"
	KeywordWeight      float64 // weight of keyword density
	SectionWeight      float64 // weight of section presence
	FormattingWeight   float64 // weight of formatting compliance
	MinKeywordDensity  float64 // density below this is a High-priority gap
	MaxSummaryKeywords int     // keyword injection cap for the summary
	MaxSkillsKeywords  int     // keyword injection cap for the skills list
	FriendlyThreshold  float64 // formatting score that counts as ATS friendly
}

// Optimizer scores resumes against ATS heuristics and applies auto-fixes.
type Optimizer struct {
	targetScore        int
	keywordWeight      float64
	sectionWeight      float64
	formattingWeight   float64
	minKeywordDensity  float64
	maxSummaryKeywords int
	maxSkillsKeywords  int
	friendlyThreshold  float64
}

// NewOptimizer creates an Optimizer, failing fast on weights outside their
// expected ranges. Supplied weights must sum to 1.0 within a small epsilon.
func NewOptimizer(opts Options) (*Optimizer, error) {
	kw, sw, fw := opts.KeywordWeight, opts.SectionWeight, opts.FormattingWeight
	if kw == 0 && sw == 0 && fw == 0 {
		kw, sw, fw = DefaultKeywordWeight, DefaultSectionWeight, DefaultFormattingWeight
	}
	if kw < 0 || sw < 0 || fw < 0 {
		return nil, &ConfigurationError{Option: "weights", Message: "must be non-negative"}
	}
	if math.Abs(kw+sw+fw-1.0) > weightEpsilon {
		return nil, &ConfigurationError{Option: "weights", Message: "keyword, section, and formatting weights must sum to 1.0"}
	}

	target := opts.TargetScore
	if target <= 0 {
		target = DefaultTargetScore
	}
	if target > 100 {
		return nil, &ConfigurationError{Option: "TargetScore", Message: "must be at most 100"}
	}

	minDensity := opts.MinKeywordDensity
	if minDensity == 0 {
		minDensity = DefaultMinKeywordDensity
	}
	if minDensity < 0 || minDensity > 1 {
		return nil, &ConfigurationError{Option: "MinKeywordDensity", Message: "must be in [0,1]"}
	}

	maxSummary := opts.MaxSummaryKeywords
	if maxSummary <= 0 {
		maxSummary = DefaultMaxSummaryKeywords
	}
	maxSkills := opts.MaxSkillsKeywords
	if maxSkills <= 0 {
		maxSkills = DefaultMaxSkillsKeywords
	}

	threshold := opts.FriendlyThreshold
	if threshold == 0 {
		threshold = DefaultFriendlyThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, &ConfigurationError{Option: "FriendlyThreshold", Message: "must be in [0,1]"}
	}

	return &Optimizer{
		targetScore:        target,
		keywordWeight:      kw,
		sectionWeight:      sw,
		formattingWeight:   fw,
		minKeywordDensity:  minDensity,
		maxSummaryKeywords: maxSummary,
		maxSkillsKeywords:  maxSkills,
		friendlyThreshold:  threshold,
	}, nil
}

// TargetScore returns the configured target ATS score.
func (o *Optimizer) TargetScore() int {
	return o.targetScore
}

// CalculateATSScore combines the three component analyses into a single
// 0-100 score with a category and target check. Pure function: identical
// inputs always yield identical results.
func (o *Optimizer) CalculateATSScore(keyword types.KeywordAnalysis, section types.SectionAnalysis, formatting types.FormattingAnalysis) types.ATSAnalysis {
	raw := o.keywordWeight*keyword.DensityScore +
		o.sectionWeight*section.Score +
		o.formattingWeight*formatting.Score

	score := int(math.Round(raw * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	category, status := categorize(score)

	return types.ATSAnalysis{
		Score:    score,
		Category: category,
		Status:   status,
		Breakdown: types.ScoreBreakdown{
			Keyword:    int(math.Round(keyword.DensityScore * 100)),
			Section:    int(math.Round(section.Score * 100)),
			Formatting: int(math.Round(formatting.Score * 100)),
		},
		MeetsTarget: score >= o.targetScore,
	}
}

// categorize maps a score to its fixed category band.
func categorize(score int) (category, status string) {
	switch {
	case score >= 90:
		return types.CategoryExcellent, "ATS Optimized"
	case score >= 80:
		return types.CategoryGood, "Minor Improvements Needed"
	case score >= 70:
		return types.CategoryFair, "Moderate Improvements Needed"
	default:
		return types.CategoryPoor, "Major Improvements Required"
	}
}

// OptimizeResume runs the full score -> (maybe fix) -> rescore sequence for
// an aligned resume. Auto-fix runs only when the initial score is below the
// target; the returned result then carries the fixed content and the
// recomputed score.
func (o *Optimizer) OptimizeResume(aligned *types.AlignedResume) (*types.OptimizationResult, error) {
	if aligned == nil {
		return nil, &ValidationError{Field: "aligned", Message: "aligned resume is required"}
	}

	jobKeywords := keywords.NewSet(aligned.Sections.JobKeywords["all"]...)
	resumeKeywords := ExtractResumeKeywords(aligned.Sections)

	keywordAnalysis := o.CalculateKeywordDensity(resumeKeywords, jobKeywords)
	sectionAnalysis := o.CheckSectionPresence(aligned.Sections)
	formattingAnalysis := o.CheckFormattingRules(aligned.Sections)

	analysis := o.CalculateATSScore(keywordAnalysis, sectionAnalysis, formattingAnalysis)
	suggestions := o.GenerateSuggestions(analysis.Score, keywordAnalysis, sectionAnalysis, formattingAnalysis)

	result := &types.OptimizationResult{
		ProfileID:   aligned.ProfileID,
		JobTitle:    aligned.JobTitle,
		Analysis:    analysis,
		Keywords:    keywordAnalysis,
		Sections:    sectionAnalysis,
		Formatting:  formattingAnalysis,
		Suggestions: suggestions,
	}

	if analysis.Score >= o.targetScore {
		return result, nil
	}

	fix := o.AutoFixIssues(aligned.Sections, keywordAnalysis, sectionAnalysis)
	if fix.FixCount > 0 {
		// Rescore the fixed content through the same pipeline; the
		// improvement is computed, never assumed.
		fixedKeywords := ExtractResumeKeywords(fix.FixedSections)
		updatedKeyword := o.CalculateKeywordDensity(fixedKeywords, jobKeywords)
		updatedSection := o.CheckSectionPresence(fix.FixedSections)
		updatedFormatting := o.CheckFormattingRules(fix.FixedSections)

		updated := o.CalculateATSScore(updatedKeyword, updatedSection, updatedFormatting)
		fix.UpdatedScore = updated.Score
		fix.Improvement = updated.Score - analysis.Score
	}
	result.AutoFix = &fix

	return result, nil
}
