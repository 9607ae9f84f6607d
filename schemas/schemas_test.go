package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestEmbeddedSchemasAreValidJSON(t *testing.T) {
	for name, data := range map[string][]byte{
		"candidate_profile": CandidateProfile,
		"job_description":   JobDescription,
	} {
		t.Run(name, func(t *testing.T) {
			var doc map[string]any
			require.NoError(t, json.Unmarshal(data, &doc))
			assert.Contains(t, doc, "$schema")
			assert.Contains(t, doc, "properties")
		})
	}
}

func TestEmbeddedSchemasCompile(t *testing.T) {
	for name, data := range map[string][]byte{
		"candidate_profile": CandidateProfile,
		"job_description":   JobDescription,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			assert.NoError(t, err)
		})
	}
}
