package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/danielh/resume-optimizer/internal/fetch"
	"github.com/danielh/resume-optimizer/internal/types"
)

// IngestFromURL fetches a job posting URL and extracts a structured job
// description. Platform detection drives the extraction selectors; the
// headless-browser fallback fires automatically when fetch options allow it.
func IngestFromURL(ctx context.Context, urlStr string, opts *fetch.Options) (*types.JobDescription, *Metadata, error) {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[INGEST] url=%s platform=%s", urlStr, platform)
	}

	result, err := fetch.JobPage(ctx, urlStr, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if opts.Verbose {
		log.Printf("[INGEST] fetched %d bytes (rendered=%t)", len(result.HTML), result.Rendered)
	}

	job, err := ExtractFromHTML(result.HTML)
	if err != nil {
		return nil, nil, err
	}
	job.URL = urlStr

	cleaned := CleanText(result.Text)
	if cleaned == "" && job.IsEmpty() {
		return nil, nil, ErrEmptyPosting
	}

	// The visible text often carries sections the markup pass missed.
	if len(job.Skills) == 0 || len(job.Requirements) == 0 || len(job.Responsibilities) == 0 {
		parsed := ParseJobText(cleaned)
		if len(job.Skills) == 0 {
			job.Skills = parsed.Skills
		}
		if len(job.Requirements) == 0 {
			job.Requirements = parsed.Requirements
		}
		if len(job.Responsibilities) == 0 {
			job.Responsibilities = parsed.Responsibilities
		}
		if job.Company == "" {
			job.Company = parsed.Company
		}
	}

	metadata := NewMetadata(cleaned, urlStr)
	metadata.Platform = string(platform)
	metadata.Rendered = result.Rendered

	return job, metadata, nil
}
