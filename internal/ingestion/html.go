package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/danielh/resume-optimizer/internal/types"
)

// ExtractFromHTML parses a job posting page into a structured job
// description. The title comes from the first h1 (falling back to the page
// title); list sections are collected from headings followed by bullet
// lists. Text parsing of the page body fills any section the markup did not
// yield.
func ExtractFromHTML(html string) (*types.JobDescription, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	job := &types.JobDescription{}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		job.Title = h1
	} else if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		job.Title = title
	}

	doc.Find("h2, h3, h4").Each(func(_ int, heading *goquery.Selection) {
		section, ok := matchSection(heading.Text())
		if !ok || section == "" {
			return
		}

		items := headingListItems(heading)
		switch section {
		case "skills":
			for _, item := range items {
				appendItems(&job.Skills, splitList(item), MaxSkills)
			}
		case "requirements":
			appendItems(&job.Requirements, items, MaxRequirements)
		case "responsibilities":
			appendItems(&job.Responsibilities, items, MaxResponsibilities)
		}
	})

	// Fall back to text parsing for anything the markup pass missed.
	if len(job.Skills) == 0 && len(job.Requirements) == 0 && len(job.Responsibilities) == 0 {
		doc.Find("nav, footer, header, script, style, noscript").Remove()
		parsed := ParseJobText(CleanText(doc.Find("body").Text()))
		if job.Title == "" {
			job.Title = parsed.Title
		}
		job.Company = parsed.Company
		job.Skills = parsed.Skills
		job.Requirements = parsed.Requirements
		job.Responsibilities = parsed.Responsibilities
	}

	return job, nil
}

// headingListItems collects the li texts of the list that follows a heading,
// stopping at the next heading.
func headingListItems(heading *goquery.Selection) []string {
	var items []string
	heading.NextUntil("h1, h2, h3, h4").Filter("ul, ol").Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := strings.TrimSpace(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	if len(items) > 0 {
		return items
	}
	// Some boards nest the list one level deeper.
	heading.NextUntil("h1, h2, h3, h4").Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := strings.TrimSpace(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}
