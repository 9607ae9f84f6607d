package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielh/resume-optimizer/internal/config"
	"github.com/danielh/resume-optimizer/internal/fetch"
	"github.com/danielh/resume-optimizer/internal/schemas"
	"github.com/danielh/resume-optimizer/internal/types"
)

// loadJobJSON reads a job description artifact, validating it against the
// schema before decoding.
func loadJobJSON(path string) (*types.JobDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}
	if err := schemas.ValidateJobDescription(data); err != nil {
		return nil, fmt.Errorf("invalid job description: %w", err)
	}

	var job types.JobDescription
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}
	return &job, nil
}

// loadJSONFile decodes an arbitrary JSON artifact into dst.
func loadJSONFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSONOutput marshals v with indentation to the given path, or stdout
// when the path is empty.
func writeJSONOutput(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// fetchOptions builds fetcher options from resolved configuration.
func fetchOptions(cfg *config.Config) *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.BrowserEnabled = cfg.UseBrowser
	opts.AllowedDomains = cfg.AllowedDomains
	opts.Verbose = cfg.Verbose
	return opts
}
