package ats

import (
	"strings"

	"github.com/danielh/resume-optimizer/internal/keywords"
	"github.com/danielh/resume-optimizer/internal/types"
)

// ExtractResumeKeywords collects every lowercase alphabetic word from the
// resume's sections. Unlike job-keyword extraction, no stop-word or length
// filtering applies: density is measured against the already-filtered job
// set, so extra words on the resume side cannot inflate the score.
func ExtractResumeKeywords(sections types.AlignedSections) keywords.Set {
	result := make(keywords.Set)

	addWords(result, sections.Summary)
	for _, skill := range sections.Skills.AlignedSkills {
		addWords(result, skill)
	}
	for _, exp := range sections.Experience {
		addWords(result, exp.Title)
		addWords(result, exp.EffectiveDescription())
	}
	for _, edu := range sections.Education {
		addWords(result, edu.Degree)
		addWords(result, edu.Field)
		addWords(result, edu.Institution)
	}
	for _, proj := range sections.Projects {
		addWords(result, proj.Name)
		addWords(result, proj.Description)
		addWords(result, proj.Technologies)
	}

	return result
}

// addWords splits text into lowercase alphabetic runs and adds them to the set.
func addWords(s keywords.Set, text string) {
	if text == "" {
		return
	}
	lower := strings.ToLower(text)
	start := -1
	for i, r := range lower {
		if r >= 'a' && r <= 'z' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			s.Add(lower[start:i])
			start = -1
		}
	}
	if start >= 0 {
		s.Add(lower[start:])
	}
}

// CalculateKeywordDensity measures what fraction of the job keywords appear
// anywhere in the resume. An empty job set yields a zero score, never an
// error.
func (o *Optimizer) CalculateKeywordDensity(resumeKeywords, jobKeywords keywords.Set) types.KeywordAnalysis {
	if len(jobKeywords) == 0 {
		return types.KeywordAnalysis{
			MatchingKeywords: []string{},
			MissingKeywords:  []string{},
		}
	}

	matching := resumeKeywords.Intersect(jobKeywords)
	missing := jobKeywords.Subtract(resumeKeywords)

	return types.KeywordAnalysis{
		DensityScore:     float64(len(matching)) / float64(len(jobKeywords)),
		MatchingKeywords: matching.Sorted(),
		MissingKeywords:  missing.Sorted(),
		TotalJobKeywords: len(jobKeywords),
		MatchedCount:     len(matching),
	}
}

// resumeToText flattens the resume sections into plain text for the
// formatting checks.
func resumeToText(sections types.AlignedSections) string {
	var parts []string

	if sections.Summary != "" {
		parts = append(parts, sections.Summary)
	}
	parts = append(parts, sections.Skills.AlignedSkills...)
	for _, exp := range sections.Experience {
		if exp.Title != "" {
			parts = append(parts, exp.Title)
		}
		if desc := exp.EffectiveDescription(); desc != "" {
			parts = append(parts, desc)
		}
	}
	for _, edu := range sections.Education {
		for _, field := range []string{edu.Degree, edu.Field, edu.Institution} {
			if field != "" {
				parts = append(parts, field)
			}
		}
	}

	return strings.Join(parts, "\n")
}
