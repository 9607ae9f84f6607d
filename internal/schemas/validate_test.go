package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielh/resume-optimizer/internal/types"
)

func TestValidateCandidateProfileValid(t *testing.T) {
	doc := `{
		"profile_id": "p1",
		"name": "Jane Doe",
		"skills": ["Go", "PostgreSQL"],
		"experience": [
			{"title": "Engineer", "company": "Initech", "duration": "2019-2024", "description": "Built services."}
		],
		"education": [{"degree": "BSc", "field": "CS"}]
	}`

	assert.NoError(t, ValidateCandidateProfile([]byte(doc)))
}

func TestValidateCandidateProfileMissingID(t *testing.T) {
	err := ValidateCandidateProfile([]byte(`{"name": "Jane"}`))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, validationErr.Error(), "profile_id")
}

func TestValidateCandidateProfileUnknownField(t *testing.T) {
	err := ValidateCandidateProfile([]byte(`{"profile_id": "p1", "unknown_field": 1}`))

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateCandidateProfileWrongType(t *testing.T) {
	err := ValidateCandidateProfile([]byte(`{"profile_id": "p1", "skills": "Go"}`))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "skills")
}

func TestValidateCandidateProfileMalformedDocument(t *testing.T) {
	err := ValidateCandidateProfile([]byte(`{not json`))

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJobDescription(t *testing.T) {
	assert.NoError(t, ValidateJobDescription([]byte(`{"job_title": "Backend Engineer", "skills": ["Go"]}`)))

	err := ValidateJobDescription([]byte(`{"skills": ["Go"]}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "job_title")
}

// The struct encodings and the schemas must agree: a marshaled struct always
// passes validation.
func TestSchemaAcceptsMarshaledTypes(t *testing.T) {
	profile := types.CandidateProfile{
		ProfileID: "p1",
		Skills:    []string{"Go"},
		Experience: []types.ExperienceEntry{
			{Title: "Engineer", Description: "Built things."},
		},
		Projects: []types.ProjectEntry{{Name: "CLI", Technologies: "Go"}},
	}
	data, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NoError(t, ValidateCandidateProfile(data))

	job := types.JobDescription{Title: "Engineer", Skills: []string{"Go"}}
	data, err = json.Marshal(job)
	require.NoError(t, err)
	assert.NoError(t, ValidateJobDescription(data))

	// Nil slices marshal as null, which the schemas accept.
	data, err = json.Marshal(types.JobDescription{Title: "Engineer"})
	require.NoError(t, err)
	assert.NoError(t, ValidateJobDescription(data))
}
