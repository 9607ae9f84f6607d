package rendering

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielh/resume-optimizer/internal/types"
)

func renderableResume() *types.AlignedResume {
	return &types.AlignedResume{
		ProfileID: "p1",
		JobTitle:  "Backend Engineer",
		Sections: types.AlignedSections{
			Summary: "Engineer with 5+ years of experience.",
			Skills: types.SkillsAlignment{
				AlignedSkills: []string{"Go", "PostgreSQL", "Leadership"},
				Categories: map[string][]string{
					types.CategoryTechnical: {"Go", "PostgreSQL"},
					types.CategorySoft:      {"Leadership"},
				},
			},
			Experience: []types.ScoredExperience{
				{ExperienceEntry: types.ExperienceEntry{
					Title:       "Senior Engineer",
					Company:     "Initech & Co",
					Duration:    "2019-2024",
					Description: "Built billing services. Reduced costs by 30%.",
				}},
			},
			Education: []types.EducationEntry{
				{Degree: "BSc", Field: "Computer Science", Institution: "State University", Year: "2018"},
			},
			Projects: []types.ProjectEntry{
				{Name: "CLI Tool", Description: "A deployment helper", Technologies: "Go, Docker"},
			},
		},
	}
}

func TestRenderLaTeXDefaultTemplate(t *testing.T) {
	contact := Contact{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0100"}

	tex, err := RenderLaTeX(nil, renderableResume(), contact, "")
	require.NoError(t, err)

	assert.Contains(t, tex, `\documentclass`)
	assert.Contains(t, tex, "Jane Doe")
	assert.Contains(t, tex, "jane@example.com")
	assert.Contains(t, tex, "Engineer with 5+ years of experience.")
	assert.Contains(t, tex, "Go, PostgreSQL")
	assert.Contains(t, tex, "Senior Engineer")
	assert.Contains(t, tex, `Initech \& Co`)
	assert.Contains(t, tex, "2019 -- 2024")
	assert.Contains(t, tex, "Built billing services")
	assert.Contains(t, tex, `Reduced costs by 30\%`)
	assert.Contains(t, tex, "State University")
	assert.Contains(t, tex, "CLI Tool")
	assert.Empty(t, CheckCompatibility(tex))
}

func TestRenderLaTeXUsesPlaceholderContact(t *testing.T) {
	tex, err := RenderLaTeX(nil, renderableResume(), Contact{}, "")
	require.NoError(t, err)

	assert.Contains(t, tex, placeholderName)
	assert.Contains(t, tex, placeholderEmail)
}

func TestRenderLaTeXNilResume(t *testing.T) {
	_, err := RenderLaTeX(nil, nil, Contact{}, "")

	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestRenderLaTeXPrefersFixedSections(t *testing.T) {
	aligned := renderableResume()
	fixed := aligned.Sections
	fixed.Summary = "Fixed summary with injected keywords."
	result := &types.OptimizationResult{
		AutoFix: &types.AutoFixResult{
			FixedSections: fixed,
			FixCount:      1,
		},
	}

	tex, err := RenderLaTeX(result, aligned, Contact{Name: "Jane"}, "")
	require.NoError(t, err)
	assert.Contains(t, tex, "Fixed summary with injected keywords.")
	assert.NotContains(t, tex, "Engineer with 5+ years of experience.")
}

func TestRenderLaTeXCustomTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.tex")
	custom := `\documentclass{article}
\begin{document}
{{ escape .Name }} -- {{ .Summary }}
\end{document}`
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	tex, err := RenderLaTeX(nil, renderableResume(), Contact{Name: "A_B"}, path)
	require.NoError(t, err)
	// Name passes through the template's own escape call on the already
	// escaped value.
	assert.Contains(t, tex, "A")
	assert.Contains(t, tex, "B")
}

func TestRenderLaTeXMissingTemplate(t *testing.T) {
	_, err := RenderLaTeX(nil, renderableResume(), Contact{}, filepath.Join(t.TempDir(), "nope.tex"))

	var tmplErr *TemplateError
	assert.ErrorAs(t, err, &tmplErr)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2019 -- 2024", formatDuration("2019-2024"))
	assert.Equal(t, "2019 -- Present", formatDuration("2019 - present"))
	assert.Equal(t, "Summer 2020", formatDuration("Summer 2020"))
	assert.Equal(t, "", formatDuration(""))
}

func TestDescriptionBullets(t *testing.T) {
	bullets := descriptionBullets("Built services. Cut costs by 30%. ")
	assert.Equal(t, []string{"Built services", `Cut costs by 30\%`}, bullets)

	assert.Nil(t, descriptionBullets("  "))
}

func TestBuildSkillGroupsWithoutCategories(t *testing.T) {
	groups := buildSkillGroups(types.SkillsAlignment{AlignedSkills: []string{"Go", "SQL"}})
	require.Len(t, groups, 1)
	assert.Equal(t, "Go, SQL", groups[0].Skills)
}

func TestCheckCompatibility(t *testing.T) {
	good := `\documentclass{article}\begin{document}hello \{escaped\}\end{document}`
	assert.Empty(t, CheckCompatibility(good))

	issues := CheckCompatibility(`\begin{document} {unclosed`)
	require.NotEmpty(t, issues)
	joined := strings.Join(issues, "; ")
	assert.Contains(t, joined, `\documentclass`)
	assert.Contains(t, joined, "unclosed")
	assert.Contains(t, joined, `\end{document}`)
}
