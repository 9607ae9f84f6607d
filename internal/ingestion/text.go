package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/danielh/resume-optimizer/internal/types"
)

var (
	multiSpacePattern = regexp.MustCompile(`\s+`)
	blankLinesPattern = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes a posting's text while preserving its structure:
// line endings become LF, trailing whitespace is trimmed, headings and
// bullets keep their markers, and runs of blank lines collapse to two.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLinesPattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans one line, preserving heading and bullet markers.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	if isBulletLine(line) {
		indent := len(line) - len(trimmed)
		if indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	leading := len(line) - len(trimmed)
	content := multiSpacePattern.ReplaceAllString(strings.TrimSpace(line), " ")
	if leading > 0 {
		return strings.Repeat(" ", leading) + content
	}
	return content
}

func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// stripBullet removes a leading bullet marker from a line.
func stripBullet(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(trimmed[len(marker):])
		}
	}
	return strings.TrimSpace(trimmed)
}

// Section heading keywords mapped to job description fields.
var sectionKeywords = map[string]string{
	"skills":              "skills",
	"technologies":        "skills",
	"tech stack":          "skills",
	"requirements":        "requirements",
	"qualifications":      "requirements",
	"what you bring":      "requirements",
	"responsibilities":    "responsibilities",
	"what you will do":    "responsibilities",
	"what you'll do":      "responsibilities",
	"about the role":      "responsibilities",
	"duties":              "responsibilities",
	"nice to have":        "",
	"benefits":            "",
	"about us":            "",
	"about the company":   "",
	"equal opportunity":   "",
	"how to apply":        "",
	"compensation":        "",
	"salary":              "",
	"application":         "",
	"interview process":   "",
	"company description": "",
}

// matchSection maps a candidate heading line to a section name. The second
// return is false when the line is not a recognized heading at all; an empty
// section name with true means a recognized heading we deliberately skip.
func matchSection(line string) (string, bool) {
	candidate := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":")))
	candidate = strings.TrimLeft(candidate, "# ")
	if candidate == "" {
		return "", false
	}
	for keyword, section := range sectionKeywords {
		if candidate == keyword || strings.HasPrefix(candidate, keyword) {
			return section, true
		}
	}
	return "", false
}

// labeledLinePattern matches single-line labeled lists, e.g.
// "Skills: Python, AWS, Docker".
var labeledLinePattern = regexp.MustCompile(`(?i)^(skills|requirements|responsibilities|title|company)\s*:\s*(.+)$`)

// ParseJobText extracts a structured job description from cleaned plain
// text. Headings and labeled lines select sections; bullet and plain lines
// fill the active section up to its cap.
func ParseJobText(text string) *types.JobDescription {
	job := &types.JobDescription{}
	section := ""

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if m := labeledLinePattern.FindStringSubmatch(line); m != nil {
			label := strings.ToLower(m[1])
			value := strings.TrimSpace(m[2])
			switch label {
			case "title":
				if job.Title == "" {
					job.Title = value
				}
			case "company":
				if job.Company == "" {
					job.Company = value
				}
			case "skills":
				appendItems(&job.Skills, splitList(value), MaxSkills)
			case "requirements":
				appendItems(&job.Requirements, splitList(value), MaxRequirements)
			case "responsibilities":
				appendItems(&job.Responsibilities, splitList(value), MaxResponsibilities)
			}
			section = ""
			continue
		}

		if name, ok := matchSection(line); ok {
			section = name
			continue
		}

		if job.Title == "" && section == "" && !isBulletLine(rawLine) && len(line) <= 80 {
			job.Title = line
			continue
		}

		item := stripBullet(rawLine)
		switch section {
		case "skills":
			appendItems(&job.Skills, splitList(item), MaxSkills)
		case "requirements":
			appendItems(&job.Requirements, []string{item}, MaxRequirements)
		case "responsibilities":
			appendItems(&job.Responsibilities, []string{item}, MaxResponsibilities)
		}
	}

	return job
}

// splitList splits a comma- or semicolon-separated list into trimmed items.
func splitList(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// appendItems adds items to dst up to cap, skipping duplicates
// case-insensitively.
func appendItems(dst *[]string, items []string, max int) {
	for _, item := range items {
		if len(*dst) >= max {
			return
		}
		if item == "" || containsFold(*dst, item) {
			continue
		}
		*dst = append(*dst, item)
	}
}

func containsFold(list []string, item string) bool {
	for _, existing := range list {
		if strings.EqualFold(existing, item) {
			return true
		}
	}
	return false
}

// IngestFromFile reads a posting from a text file and parses it.
func IngestFromFile(path string) (*types.JobDescription, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleaned := CleanText(string(content))
	if cleaned == "" {
		return nil, nil, ErrEmptyPosting
	}

	job := ParseJobText(cleaned)
	return job, NewMetadata(cleaned, ""), nil
}
