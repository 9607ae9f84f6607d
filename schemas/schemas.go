// Package schemas ships the JSON Schemas for the documents crossing the
// CLI and HTTP boundaries. The schema files are embedded so validation works
// regardless of the process working directory.
package schemas

import _ "embed"

// CandidateProfile is the schema for uploaded candidate profile documents.
//
//go:embed candidate_profile.schema.json
var CandidateProfile []byte

// JobDescription is the schema for job description artifacts.
//
//go:embed job_description.schema.json
var JobDescription []byte
