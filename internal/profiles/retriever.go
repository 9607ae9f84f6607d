package profiles

import (
	"math"
	"sort"
	"strings"

	"github.com/danielh/resume-optimizer/internal/types"
)

// Retriever defaults.
const (
	DefaultSimilarityThreshold = 0.7
	DefaultMaxFragments        = 10
)

// Fragment kinds.
const (
	FragmentSkill      = "skill"
	FragmentExperience = "experience"
	FragmentEducation  = "education"
	FragmentProject    = "project"
)

// Fragment is one retrievable chunk of a candidate profile.
type Fragment struct {
	Kind  string  `json:"kind"`
	Index int     `json:"index"` // position within the source section
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Retriever selects the profile fragments most relevant to a job
// description using cosine similarity of term-frequency vectors. The scorer
// is deterministic: identical inputs produce identical fragment sets.
type Retriever struct {
	threshold    float64
	maxFragments int
}

// NewRetriever creates a Retriever. Zero options select defaults.
func NewRetriever(threshold float64, maxFragments int) *Retriever {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	if maxFragments <= 0 {
		maxFragments = DefaultMaxFragments
	}
	return &Retriever{threshold: threshold, maxFragments: maxFragments}
}

// Fragments splits a profile into retrievable text chunks: one per skill,
// experience entry, education entry, and project.
func Fragments(profile *types.CandidateProfile) []Fragment {
	if profile == nil {
		return nil
	}
	var fragments []Fragment
	for i, skill := range profile.Skills {
		fragments = append(fragments, Fragment{Kind: FragmentSkill, Index: i, Text: skill})
	}
	for i, exp := range profile.Experience {
		text := strings.TrimSpace(exp.Title + " " + exp.Company + " " + exp.Description)
		fragments = append(fragments, Fragment{Kind: FragmentExperience, Index: i, Text: text})
	}
	for i, edu := range profile.Education {
		text := strings.TrimSpace(edu.Degree + " " + edu.Field + " " + edu.Institution)
		fragments = append(fragments, Fragment{Kind: FragmentEducation, Index: i, Text: text})
	}
	for i, proj := range profile.Projects {
		text := strings.TrimSpace(proj.Name + " " + proj.Description + " " + proj.Technologies)
		fragments = append(fragments, Fragment{Kind: FragmentProject, Index: i, Text: text})
	}
	return fragments
}

// Retrieve scores every profile fragment against the job query and returns
// those meeting the similarity threshold, best first, capped at the
// configured maximum. Ties keep the original fragment order.
func (r *Retriever) Retrieve(profile *types.CandidateProfile, job *types.JobDescription) []Fragment {
	query := termFrequencies(jobQuery(job))
	fragments := Fragments(profile)

	var selected []Fragment
	for _, fragment := range fragments {
		fragment.Score = cosineSimilarity(query, termFrequencies(fragment.Text))
		if fragment.Score >= r.threshold {
			selected = append(selected, fragment)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Score > selected[j].Score
	})
	if len(selected) > r.maxFragments {
		selected = selected[:r.maxFragments]
	}
	return selected
}

// RelevantProfile returns a view of the profile reduced to the fragments
// the retriever selected. When nothing clears the threshold, the full
// profile is returned unchanged so downstream stages always have content.
func (r *Retriever) RelevantProfile(profile *types.CandidateProfile, job *types.JobDescription) *types.CandidateProfile {
	if profile == nil {
		return nil
	}
	selected := r.Retrieve(profile, job)
	if len(selected) == 0 {
		return profile
	}

	view := &types.CandidateProfile{
		ProfileID: profile.ProfileID,
		Name:      profile.Name,
		Email:     profile.Email,
		Phone:     profile.Phone,
	}
	for _, fragment := range selected {
		switch fragment.Kind {
		case FragmentSkill:
			view.Skills = append(view.Skills, profile.Skills[fragment.Index])
		case FragmentExperience:
			view.Experience = append(view.Experience, profile.Experience[fragment.Index])
		case FragmentEducation:
			view.Education = append(view.Education, profile.Education[fragment.Index])
		case FragmentProject:
			view.Projects = append(view.Projects, profile.Projects[fragment.Index])
		}
	}

	// Education rarely scores against a skills-heavy query; keep it rather
	// than dropping the section from the rendered resume.
	if len(view.Education) == 0 {
		view.Education = profile.Education
	}
	return view
}

// jobQuery flattens a job description into the retrieval query.
func jobQuery(job *types.JobDescription) string {
	if job == nil {
		return ""
	}
	parts := []string{job.Title}
	parts = append(parts, job.Skills...)
	parts = append(parts, job.Requirements...)
	parts = append(parts, job.Responsibilities...)
	return strings.Join(parts, " ")
}

// termFrequencies counts lowercase alphabetic words.
func termFrequencies(text string) map[string]float64 {
	freq := make(map[string]float64)
	var word strings.Builder
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			word.WriteRune(r)
			continue
		}
		if word.Len() > 0 {
			freq[word.String()]++
			word.Reset()
		}
	}
	if word.Len() > 0 {
		freq[word.String()]++
	}
	return freq
}

// cosineSimilarity computes the cosine of two term-frequency vectors.
// Either vector being empty yields 0.
func cosineSimilarity(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, count := range a {
		normA += count * count
		if other, ok := b[term]; ok {
			dot += count * other
		}
	}
	for _, count := range b {
		normB += count * count
	}
	if dot == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
