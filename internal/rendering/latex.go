package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/danielh/resume-optimizer/internal/types"
)

//go:embed templates/resume.tex
var defaultTemplate string

// Placeholder contact values used when the profile carries none.
const (
	placeholderName  = "Your Name"
	placeholderEmail = "your.email@example.com"
)

// TemplateData is the structure passed to the LaTeX template. All string
// fields arrive already escaped.
type TemplateData struct {
	Name        string
	Email       string
	Phone       string
	Summary     string
	SkillGroups []SkillGroup
	Experiences []ExperienceSection
	Education   []EducationSection
	Projects    []ProjectSection
}

// SkillGroup is one category of skills rendered as a single line.
type SkillGroup struct {
	Category string
	Skills   string // comma-joined
}

// ExperienceSection is one rendered experience entry.
type ExperienceSection struct {
	Title    string
	Company  string
	Duration string
	Bullets  []string
}

// EducationSection is one rendered education entry.
type EducationSection struct {
	Degree      string
	Field       string
	Institution string
	Year        string
}

// ProjectSection is one rendered project entry.
type ProjectSection struct {
	Name         string
	Description  string
	Technologies string
}

// Contact carries the candidate's personal details for the document header.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// RenderLaTeX renders an optimized resume as a LaTeX document. An empty
// templatePath selects the built-in template. When auto-fix ran, the fixed
// sections are rendered; otherwise the aligned sections are.
func RenderLaTeX(result *types.OptimizationResult, aligned *types.AlignedResume, contact Contact, templatePath string) (string, error) {
	if aligned == nil {
		return "", &RenderError{Message: "aligned resume is required"}
	}

	sections := aligned.Sections
	if result != nil && result.AutoFix != nil && result.AutoFix.FixCount > 0 {
		sections = result.AutoFix.FixedSections
	}

	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	data := buildTemplateData(sections, contact)

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}

// parseTemplate loads a template file, or the built-in template when path
// is empty.
func parseTemplate(templatePath string) (*template.Template, error) {
	content := defaultTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &TemplateError{Message: fmt.Sprintf("template file not found: %s", templatePath), Cause: err}
			}
			return nil, &TemplateError{Message: fmt.Sprintf("failed to read template file: %s", templatePath), Cause: err}
		}
		content = string(raw)
	}

	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

// buildTemplateData escapes and structures the resume sections for the
// template.
func buildTemplateData(sections types.AlignedSections, contact Contact) *TemplateData {
	if contact.Name == "" {
		contact.Name = placeholderName
	}
	if contact.Email == "" {
		contact.Email = placeholderEmail
	}

	data := &TemplateData{
		Name:    EscapeLaTeX(contact.Name),
		Email:   EscapeLaTeX(contact.Email),
		Phone:   EscapeLaTeX(contact.Phone),
		Summary: EscapeLaTeX(sections.Summary),
	}

	data.SkillGroups = buildSkillGroups(sections.Skills)

	for _, exp := range sections.Experience {
		data.Experiences = append(data.Experiences, ExperienceSection{
			Title:    EscapeLaTeX(exp.Title),
			Company:  EscapeLaTeX(exp.Company),
			Duration: formatDuration(exp.Duration),
			Bullets:  descriptionBullets(exp.EffectiveDescription()),
		})
	}

	for _, edu := range sections.Education {
		data.Education = append(data.Education, EducationSection{
			Degree:      EscapeLaTeX(edu.Degree),
			Field:       EscapeLaTeX(edu.Field),
			Institution: EscapeLaTeX(edu.Institution),
			Year:        EscapeLaTeX(edu.Year),
		})
	}

	for _, proj := range sections.Projects {
		data.Projects = append(data.Projects, ProjectSection{
			Name:         EscapeLaTeX(proj.Name),
			Description:  EscapeLaTeX(proj.Description),
			Technologies: EscapeLaTeX(proj.Technologies),
		})
	}

	return data
}

// skillCategoryOrder fixes the rendering order of skill categories.
var skillCategoryOrder = []string{
	types.CategoryTechnical,
	types.CategoryTools,
	types.CategorySoft,
	types.CategoryOther,
}

// categoryLabels maps category names to their rendered headings.
var categoryLabels = map[string]string{
	types.CategoryTechnical: "Technical",
	types.CategoryTools:     "Tools",
	types.CategorySoft:      "Soft Skills",
	types.CategoryOther:     "Other",
}

// buildSkillGroups renders skills grouped by category in a fixed order.
// Skills without category information render as a single unlabeled group.
func buildSkillGroups(skills types.SkillsAlignment) []SkillGroup {
	if len(skills.Categories) == 0 {
		if len(skills.AlignedSkills) == 0 {
			return nil
		}
		return []SkillGroup{{
			Category: "Skills",
			Skills:   EscapeLaTeX(strings.Join(skills.AlignedSkills, ", ")),
		}}
	}

	var groups []SkillGroup
	for _, category := range skillCategoryOrder {
		names := skills.Categories[category]
		if len(names) == 0 {
			continue
		}
		groups = append(groups, SkillGroup{
			Category: categoryLabels[category],
			Skills:   EscapeLaTeX(strings.Join(names, ", ")),
		})
	}
	return groups
}

var durationRangePattern = regexp.MustCompile(`^\s*(\S+)\s*[-–]\s*(\S+)\s*$`)

// formatDuration renders a duration like "2019-2024" as "2019 -- 2024",
// passing anything unrecognized through escaped.
func formatDuration(duration string) string {
	if duration == "" {
		return ""
	}
	if m := durationRangePattern.FindStringSubmatch(duration); m != nil {
		end := m[2]
		if strings.EqualFold(end, "present") {
			end = "Present"
		}
		return EscapeLaTeX(m[1]) + " -- " + EscapeLaTeX(end)
	}
	return EscapeLaTeX(duration)
}

// descriptionBullets splits a description into sentence bullets.
func descriptionBullets(description string) []string {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil
	}

	var bullets []string
	for _, sentence := range strings.Split(description, ". ") {
		sentence = strings.TrimSpace(strings.TrimSuffix(sentence, "."))
		if sentence != "" {
			bullets = append(bullets, EscapeLaTeX(sentence))
		}
	}
	return bullets
}
