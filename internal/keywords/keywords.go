// Package keywords provides keyword extraction and alignment scoring against
// job-posting text. All operations are deterministic, pure functions over
// their inputs.
package keywords

import (
	"sort"
	"strings"

	"github.com/danielh/resume-optimizer/internal/types"
)

// DefaultMinLength is the minimum token length kept during extraction.
const DefaultMinLength = 3

// stopWords are excluded from keyword matching.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "that": {}, "the": {}, "to": {},
	"was": {}, "will": {}, "with": {}, "or": {}, "but": {}, "not": {},
	"this": {}, "have": {}, "had": {}, "what": {}, "when": {}, "where": {},
	"who": {}, "which": {}, "why": {}, "how": {},
}

// Set is an unordered collection of normalized keywords.
type Set map[string]struct{}

// NewSet builds a Set from the given words.
func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the word.
func (s Set) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Add inserts a word into the set.
func (s Set) Add(word string) {
	s[word] = struct{}{}
}

// AddAll inserts every word from other into the set.
func (s Set) AddAll(other Set) {
	for w := range other {
		s[w] = struct{}{}
	}
}

// Intersect returns the words present in both sets.
func (s Set) Intersect(other Set) Set {
	result := make(Set)
	for w := range s {
		if other.Has(w) {
			result[w] = struct{}{}
		}
	}
	return result
}

// Subtract returns the words in s that are not in other.
func (s Set) Subtract(other Set) Set {
	result := make(Set)
	for w := range s {
		if !other.Has(w) {
			result[w] = struct{}{}
		}
	}
	return result
}

// Sorted returns the set's words in ascending order.
// Map iteration is unordered, so any serialized view goes through here.
func (s Set) Sorted() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// JobKeywords holds keyword sets extracted per job-posting section.
// All is the union of the section sets.
type JobKeywords struct {
	Title            Set
	Skills           Set
	Requirements     Set
	Responsibilities Set
	All              Set
}

// BySection returns the per-section keyword lists keyed by section name,
// each sorted for deterministic serialization.
func (jk *JobKeywords) BySection() map[string][]string {
	return map[string][]string{
		"title":            jk.Title.Sorted(),
		"skills":           jk.Skills.Sorted(),
		"requirements":     jk.Requirements.Sorted(),
		"responsibilities": jk.Responsibilities.Sorted(),
		"all":              jk.All.Sorted(),
	}
}

// Extractor tokenizes text into normalized keywords.
type Extractor struct {
	minLength int
}

// NewExtractor creates an Extractor with the given minimum token length.
// Non-positive values fall back to DefaultMinLength.
func NewExtractor(minLength int) *Extractor {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	return &Extractor{minLength: minLength}
}

// Extract returns the normalized keywords found in text: lowercase alphabetic
// runs, with stop words and tokens shorter than the minimum length dropped.
func (e *Extractor) Extract(text string) Set {
	result := make(Set)
	if text == "" {
		return result
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
			e.keep(result, lower[start:i])
			start = -1
		}
	}
	if start >= 0 {
		e.keep(result, lower[start:])
	}

	return result
}

func (e *Extractor) keep(s Set, word string) {
	if len(word) < e.minLength {
		return
	}
	if _, stop := stopWords[word]; stop {
		return
	}
	s[word] = struct{}{}
}

// ExtractJobKeywords extracts keywords from each section of a job
// description independently and computes the union. Empty sections yield
// empty sets, never an error.
func (e *Extractor) ExtractJobKeywords(job *types.JobDescription) *JobKeywords {
	jk := &JobKeywords{
		Title:            make(Set),
		Skills:           make(Set),
		Requirements:     make(Set),
		Responsibilities: make(Set),
		All:              make(Set),
	}
	if job == nil {
		return jk
	}

	jk.Title = e.Extract(job.Title)
	jk.Skills = e.Extract(strings.Join(job.Skills, " "))
	jk.Requirements = e.Extract(strings.Join(job.Requirements, " "))
	jk.Responsibilities = e.Extract(strings.Join(job.Responsibilities, " "))

	jk.All.AddAll(jk.Title)
	jk.All.AddAll(jk.Skills)
	jk.All.AddAll(jk.Requirements)
	jk.All.AddAll(jk.Responsibilities)

	return jk
}

// AlignmentScore returns the fraction of jobKeywords found in text.
// Defined as 0.0 when jobKeywords is empty to avoid division by zero.
func (e *Extractor) AlignmentScore(text string, jobKeywords Set) float64 {
	if len(jobKeywords) == 0 || text == "" {
		return 0.0
	}

	textKeywords := e.Extract(text)
	if len(textKeywords) == 0 {
		return 0.0
	}

	matching := textKeywords.Intersect(jobKeywords)
	score := float64(len(matching)) / float64(len(jobKeywords))
	if score > 1.0 {
		score = 1.0
	}
	return score
}
