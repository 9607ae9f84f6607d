// Package ingestion turns raw job postings (URLs, HTML, or plain text) into
// structured job descriptions. Extraction is deterministic: section headings
// and labeled lines drive the parse, with per-section caps so a noisy page
// cannot flood the downstream engines.
package ingestion

import "fmt"

var (
	// ErrHTTPRequestFailed wraps fetch failures during URL ingestion.
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed wraps HTML parsing or extraction failures.
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
	// ErrEmptyPosting is returned when no usable content survives cleaning.
	ErrEmptyPosting = fmt.Errorf("job posting is empty")
)

// Per-section item caps applied during extraction.
const (
	MaxSkills           = 20
	MaxRequirements     = 15
	MaxResponsibilities = 15
)
