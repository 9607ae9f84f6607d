// Package types provides type definitions for structured data used throughout the resume-optimizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobDescription represents a structured job posting extracted from a web page.
// The record is immutable once built; derived keyword sets are computed by the
// keywords package rather than stored here.
type JobDescription struct {
	Title            string   `json:"job_title"`
	URL              string   `json:"url,omitempty"`
	Company          string   `json:"company,omitempty"`
	Skills           []string `json:"skills"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
}

// IsEmpty reports whether no usable content was extracted from the posting.
func (j *JobDescription) IsEmpty() bool {
	return j.Title == "" &&
		len(j.Skills) == 0 &&
		len(j.Requirements) == 0 &&
		len(j.Responsibilities) == 0
}
