package keywords

import (
	"testing"

	"github.com/danielh/resume-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_LowercasesAndFiltersStopWords(t *testing.T) {
	e := NewExtractor(0)

	got := e.Extract("Developed scalable APIs with Python and Django")

	assert.True(t, got.Has("developed"))
	assert.True(t, got.Has("scalable"))
	assert.True(t, got.Has("python"))
	assert.True(t, got.Has("django"))
	assert.False(t, got.Has("and"), "stop words should be dropped")
	assert.False(t, got.Has("with"), "stop words should be dropped")
}

func TestExtract_DropsShortTokens(t *testing.T) {
	e := NewExtractor(3)

	got := e.Extract("Go is my go-to: ML, AI and SQL")

	assert.False(t, got.Has("go"), "tokens below min length should be dropped")
	assert.False(t, got.Has("ml"))
	assert.True(t, got.Has("sql"))
}

func TestExtract_SplitsOnNonAlphabetic(t *testing.T) {
	e := NewExtractor(0)

	got := e.Extract("CI/CD pipelines, node.js v18")

	assert.True(t, got.Has("pipelines"))
	assert.True(t, got.Has("node"))
	assert.False(t, got.Has("v18"), "digits never form part of a token")
}

func TestExtract_EmptyText(t *testing.T) {
	e := NewExtractor(0)
	assert.Empty(t, e.Extract(""))
}

func TestExtractJobKeywords_PerSectionAndUnion(t *testing.T) {
	e := NewExtractor(0)
	job := &types.JobDescription{
		Title:            "Senior Python Developer",
		Skills:           []string{"Python", "Django", "AWS"},
		Requirements:     []string{"Experience with PostgreSQL"},
		Responsibilities: []string{"Design REST APIs"},
	}

	jk := e.ExtractJobKeywords(job)

	assert.True(t, jk.Title.Has("python"))
	assert.True(t, jk.Skills.Has("django"))
	assert.True(t, jk.Requirements.Has("postgresql"))
	assert.True(t, jk.Responsibilities.Has("rest"))

	// Union contains every section's keywords
	for _, w := range []string{"senior", "python", "django", "aws", "postgresql", "design", "rest", "apis"} {
		assert.True(t, jk.All.Has(w), "union should contain %q", w)
	}
}

func TestExtractJobKeywords_EmptySectionsYieldEmptySets(t *testing.T) {
	e := NewExtractor(0)

	jk := e.ExtractJobKeywords(&types.JobDescription{Title: "Engineer"})

	assert.Empty(t, jk.Skills)
	assert.Empty(t, jk.Requirements)
	assert.Empty(t, jk.Responsibilities)
	assert.True(t, jk.All.Has("engineer"))
}

func TestExtractJobKeywords_NilJob(t *testing.T) {
	e := NewExtractor(0)

	jk := e.ExtractJobKeywords(nil)

	require.NotNil(t, jk)
	assert.Empty(t, jk.All)
}

func TestAlignmentScore_FractionOfJobKeywords(t *testing.T) {
	e := NewExtractor(0)
	jobKw := NewSet("python", "django", "aws")

	score := e.AlignmentScore("Built services in Python using Django", jobKw)

	assert.InDelta(t, 2.0/3.0, score, 1e-9)
}

func TestAlignmentScore_EmptyJobKeywordsIsZero(t *testing.T) {
	e := NewExtractor(0)
	assert.Equal(t, 0.0, e.AlignmentScore("anything at all", NewSet()))
}

func TestAlignmentScore_EmptyTextIsZero(t *testing.T) {
	e := NewExtractor(0)
	assert.Equal(t, 0.0, e.AlignmentScore("", NewSet("python")))
}

func TestAlignmentScore_FullCoverageIsOne(t *testing.T) {
	e := NewExtractor(0)
	jobKw := NewSet("python", "django")

	score := e.AlignmentScore("python django expert", jobKw)

	assert.Equal(t, 1.0, score)
}

func TestSet_Operations(t *testing.T) {
	a := NewSet("python", "django", "aws")
	b := NewSet("python", "django")

	assert.ElementsMatch(t, []string{"python", "django"}, a.Intersect(b).Sorted())
	assert.ElementsMatch(t, []string{"aws"}, a.Subtract(b).Sorted())
	assert.Equal(t, []string{"aws", "django", "python"}, a.Sorted(), "Sorted is deterministic")
}

func TestBySection_SortedLists(t *testing.T) {
	e := NewExtractor(0)
	jk := e.ExtractJobKeywords(&types.JobDescription{
		Title:  "Backend Engineer",
		Skills: []string{"Go", "Kubernetes", "Docker"},
	})

	sections := jk.BySection()

	assert.Equal(t, []string{"backend", "engineer"}, sections["title"])
	assert.Equal(t, []string{"docker", "kubernetes"}, sections["skills"])
	assert.Contains(t, sections, "all")
}
