package alignment

import (
	"strings"
	"testing"

	"github.com/danielh/resume-optimizer/internal/keywords"
	"github.com/danielh/resume-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleJob() *types.JobDescription {
	return &types.JobDescription{
		Title:  "Senior Python Developer",
		Skills: []string{"Python", "Django", "PostgreSQL", "AWS", "Docker"},
		Requirements: []string{
			"5+ years Python development experience",
			"Experience with web frameworks like Django",
		},
		Responsibilities: []string{
			"Develop scalable web applications using Python",
			"Design and implement REST APIs",
		},
	}
}

func sampleProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		ProfileID: "jane_doe_2024",
		Name:      "Jane Doe",
		Skills:    []string{"Python", "Django", "AWS", "Git", "Leadership"},
		Experience: []types.ExperienceEntry{
			{
				Title:       "Senior Software Engineer",
				Company:     "TechCorp",
				Duration:    "2021-2024",
				Description: "Led development of web applications using Python and Django on AWS",
			},
			{
				Title:       "QA Analyst",
				Company:     "OtherCo",
				Duration:    "2019-2021",
				Description: "Wrote manual test plans for desktop software",
			},
		},
		Education: []types.EducationEntry{
			{Degree: "BSc", Field: "Computer Science", Institution: "State University"},
		},
	}
}

func mustEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := NewEngine(opts)
	require.NoError(t, err)
	return e
}

func TestNewEngine_NormalizesWeights(t *testing.T) {
	e := mustEngine(t, Options{SkillsWeight: 1.2, ExperienceWeight: 1.5})

	assert.InDelta(t, 1.2/2.7, e.skillsWeight, 1e-9)
	assert.InDelta(t, 1.5/2.7, e.experienceWeight, 1e-9)
	assert.InDelta(t, 1.0, e.skillsWeight+e.experienceWeight, 1e-9)
}

func TestNewEngine_ZeroWeightsUseDefaults(t *testing.T) {
	e := mustEngine(t, Options{})

	assert.InDelta(t, 0.5, e.skillsWeight, 1e-9)
	assert.InDelta(t, 0.5, e.experienceWeight, 1e-9)
}

func TestNewEngine_NegativeWeightFailsFast(t *testing.T) {
	_, err := NewEngine(Options{SkillsWeight: -0.1, ExperienceWeight: 0.5})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "SkillsWeight", cfgErr.Option)
}

func TestAlignContent_NilInputsAreValidationErrors(t *testing.T) {
	e := mustEngine(t, Options{})

	_, err := e.AlignContent(nil, sampleProfile())
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "job", valErr.Field)

	_, err = e.AlignContent(sampleJob(), nil)
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "profile", valErr.Field)
}

func TestAlignContent_OverallScoreInRange(t *testing.T) {
	e := mustEngine(t, Options{SkillsWeight: 1.2, ExperienceWeight: 1.5})

	aligned, err := e.AlignContent(sampleJob(), sampleProfile())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, aligned.Metadata.OverallScore, 0.0)
	assert.LessOrEqual(t, aligned.Metadata.OverallScore, 1.0)
	assert.Equal(t, "jane_doe_2024", aligned.ProfileID)
	assert.Equal(t, "Senior Python Developer", aligned.JobTitle)
}

func TestAlignContent_ExperienceSortedDescending(t *testing.T) {
	e := mustEngine(t, Options{})

	aligned, err := e.AlignContent(sampleJob(), sampleProfile())
	require.NoError(t, err)

	exps := aligned.Sections.Experience
	require.Len(t, exps, 2)
	assert.Equal(t, "Senior Software Engineer", exps[0].Title,
		"the entry matching the job must come first")
	assert.Greater(t, exps[0].AlignmentScore, exps[1].AlignmentScore)
}

func TestAlignContent_CarriesEducationAndJobKeywords(t *testing.T) {
	e := mustEngine(t, Options{})

	aligned, err := e.AlignContent(sampleJob(), sampleProfile())
	require.NoError(t, err)

	require.Len(t, aligned.Sections.Education, 1)
	assert.Contains(t, aligned.Sections.JobKeywords["all"], "python")
	assert.Contains(t, aligned.Sections.JobKeywords["skills"], "django")
}

func TestAlignContent_Deterministic(t *testing.T) {
	e := mustEngine(t, Options{})

	first, err := e.AlignContent(sampleJob(), sampleProfile())
	require.NoError(t, err)
	second, err := e.AlignContent(sampleJob(), sampleProfile())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAlignSkills_SortedByScoreStable(t *testing.T) {
	e := mustEngine(t, Options{})
	jk := keywords.NewExtractor(0).ExtractJobKeywords(sampleJob())

	alignment := e.AlignSkills([]string{"Cooking", "Python", "Gardening", "Django"}, jk)

	// Matching skills float to the top; non-matching keep input order.
	assert.Equal(t, []string{"Python", "Django", "Cooking", "Gardening"}, alignment.AlignedSkills)
	assert.ElementsMatch(t, []string{"Python", "Django"}, alignment.MatchingSkills)
}

func TestAlignSkills_Categorization(t *testing.T) {
	e := mustEngine(t, Options{})
	jk := keywords.NewExtractor(0).ExtractJobKeywords(sampleJob())

	alignment := e.AlignSkills([]string{"Python", "Git", "Leadership", "Cooking"}, jk)

	assert.Contains(t, alignment.Categories[types.CategoryTechnical], "Python")
	assert.Contains(t, alignment.Categories[types.CategoryTools], "Git")
	assert.Contains(t, alignment.Categories[types.CategorySoft], "Leadership")
	assert.Contains(t, alignment.Categories[types.CategoryOther], "Cooking")
}

func TestAlignSkills_EmptyInput(t *testing.T) {
	e := mustEngine(t, Options{})
	jk := keywords.NewExtractor(0).ExtractJobKeywords(sampleJob())

	alignment := e.AlignSkills(nil, jk)

	assert.Empty(t, alignment.AlignedSkills)
	assert.Equal(t, 0.0, alignment.Score)
}

func TestHighlightExperiences_DescriptionWeightedDouble(t *testing.T) {
	e := mustEngine(t, Options{})
	ext := keywords.NewExtractor(0)
	jk := ext.ExtractJobKeywords(sampleJob())

	entries := []types.ExperienceEntry{
		{Title: "Python Developer", Description: "Maintained legacy spreadsheets"},
	}
	scored := e.HighlightExperiences(entries, jk)

	require.Len(t, scored, 1)
	titleScore := ext.AlignmentScore("Python Developer", jk.All)
	descScore := ext.AlignmentScore("Maintained legacy spreadsheets", jk.All)
	expected := (titleScore + 2*descScore) / 3
	assert.InDelta(t, expected, scored[0].AlignmentScore, 1e-9)
}

func TestHighlightExperiences_TieKeepsInputOrder(t *testing.T) {
	e := mustEngine(t, Options{})
	jk := keywords.NewExtractor(0).ExtractJobKeywords(&types.JobDescription{Title: "Gardener"})

	entries := []types.ExperienceEntry{
		{Title: "First", Description: "irrelevant text"},
		{Title: "Second", Description: "also irrelevant"},
	}
	scored := e.HighlightExperiences(entries, jk)

	require.Len(t, scored, 2)
	assert.Equal(t, "First", scored[0].Title)
	assert.Equal(t, "Second", scored[1].Title)
}

func TestEnhanceDescription_AppendOnly(t *testing.T) {
	original := "Developed internal tooling for deployment"

	enhanced := EnhanceDescription(original)

	assert.True(t, strings.HasPrefix(enhanced, original),
		"enhancement must never rewrite existing text")
	assert.Greater(t, len(enhanced), len(original))
}

func TestEnhanceDescription_SkipsQuantifiedText(t *testing.T) {
	quantified := "Developed pipeline cutting costs by 40%"
	assert.Equal(t, quantified, EnhanceDescription(quantified))

	numeric := "Managed a team of 12 engineers"
	assert.Equal(t, numeric, EnhanceDescription(numeric))
}

func TestEnhanceDescription_NoVerbMatchLeavesUnchanged(t *testing.T) {
	text := "Responsible for documentation upkeep"
	assert.Equal(t, text, EnhanceDescription(text))
}

func TestGenerateSummary_MentionsTopSkillsAndTitle(t *testing.T) {
	e := mustEngine(t, Options{})
	ext := keywords.NewExtractor(0)
	job := sampleJob()
	profile := sampleProfile()

	summary := e.GenerateSummary(profile, job, ext.ExtractJobKeywords(job))

	assert.Contains(t, summary, "Python")
	assert.Contains(t, summary, "Senior Python Developer")
	assert.Contains(t, summary, "5+ years", "explicit durations 2021-2024 and 2019-2021 sum to 5")
}

func TestGenerateSummary_Deterministic(t *testing.T) {
	e := mustEngine(t, Options{})
	ext := keywords.NewExtractor(0)
	job := sampleJob()
	profile := sampleProfile()
	jk := ext.ExtractJobKeywords(job)

	assert.Equal(t, e.GenerateSummary(profile, job, jk), e.GenerateSummary(profile, job, jk))
}

func TestEstimateYearsOfExperience(t *testing.T) {
	assert.Equal(t, 3, EstimateYearsOfExperience(nil), "no history falls back to default")

	entries := []types.ExperienceEntry{
		{Duration: "2019-2024"},
		{Duration: "unknown"},
	}
	assert.Equal(t, 7, EstimateYearsOfExperience(entries), "5 explicit + 2 assumed")
}

func TestRecommendations_SeverityOrdering(t *testing.T) {
	e := mustEngine(t, Options{})

	// A profile with nothing in common with the job triggers every gap rule.
	job := sampleJob()
	profile := &types.CandidateProfile{
		ProfileID: "p1",
		Skills:    []string{"Cooking"},
		Experience: []types.ExperienceEntry{
			{Title: "Chef", Description: "Prepared meals"},
		},
	}

	aligned, err := e.AlignContent(job, profile)
	require.NoError(t, err)

	recs := aligned.Recommendations
	require.NotEmpty(t, recs)
	assert.Contains(t, recs[0], "technical skills", "skills gaps come first")
	assert.Contains(t, recs[len(recs)-1], "emphasizing", "general assessment comes last")
}
