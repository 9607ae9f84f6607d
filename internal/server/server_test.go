package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielh/resume-optimizer/internal/server/ratelimit"
)

const testPosting = `Senior Backend Engineer

Company: Initech

Skills:
- Go
- PostgreSQL
- Docker

Requirements:
- 5+ years of backend experience
`

const testProfileJSON = `{
	"profile_id": "p1",
	"name": "Jane Doe",
	"email": "jane@example.com",
	"skills": ["Go", "PostgreSQL", "Leadership"],
	"experience": [
		{"title": "Senior Engineer", "company": "Hooli", "duration": "2019-2024",
		 "description": "Built Go backend services on PostgreSQL."}
	],
	"education": [{"degree": "BSc", "field": "Computer Science"}]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(context.Background(), Config{
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.rateLimiter.Stop() })
	return s
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func writeTestPosting(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte(testPosting), 0644))
	return path
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProfileCRUD(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/profiles", testProfileJSON)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "p1")

	rec = doJSON(t, s, http.MethodGet, "/profiles/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jane Doe")

	rec = doJSON(t, s, http.MethodGet, "/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)

	rec = doJSON(t, s, http.MethodDelete, "/profiles/p1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/profiles/p1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveProfileSchemaRejection(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/profiles", `{"name": "No ID"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "schema validation")
	assert.Contains(t, rec.Body.String(), "profile_id")
}

func TestSaveProfileRejectsInvalidEmail(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/profiles", `{"profile_id": "p9", "email": "not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
}

func TestSaveProfileMalformedJSON(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/profiles", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRetrieveProfile(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/profiles", testProfileJSON)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := `{
		"job_description": {"job_title": "Backend Engineer", "skills": ["Go", "PostgreSQL"]},
		"similarity_threshold": 0.1
	}`
	rec = doJSON(t, s, http.MethodPost, "/profiles/p1/retrieve", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ProfileID string           `json:"profile_id"`
		Fragments []map[string]any `json:"fragments"`
		Relevant  map[string]any   `json:"relevant_profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "p1", resp.ProfileID)
	assert.NotEmpty(t, resp.Fragments)
	assert.NotNil(t, resp.Relevant)
}

func TestRetrieveProfileRequiresJob(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/profiles", testProfileJSON)

	rec := doJSON(t, s, http.MethodPost, "/profiles/p1/retrieve", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "job_description is required")
}

func TestOptimizeInlineProfile(t *testing.T) {
	s := newTestServer(t)

	body := fmt.Sprintf(`{"job": %q, "profile": %s}`, writeTestPosting(t), testProfileJSON)
	rec := doJSON(t, s, http.MethodPost, "/optimize", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Job struct {
			Title string `json:"job_title"`
		} `json:"job_description"`
		Optimization struct {
			Analysis struct {
				Score int `json:"ats_score"`
			} `json:"ats_analysis"`
		} `json:"optimization"`
		LaTeX string `json:"resume_tex"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Senior Backend Engineer", result.Job.Title)
	assert.Greater(t, result.Optimization.Analysis.Score, 0)
	assert.Contains(t, result.LaTeX, `\documentclass`)
}

func TestOptimizeStoredProfile(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/profiles", testProfileJSON)

	body := fmt.Sprintf(`{"job": %q, "profile_id": "p1"}`, writeTestPosting(t))
	rec := doJSON(t, s, http.MethodPost, "/optimize", body)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptimizeUnknownProfile(t *testing.T) {
	s := newTestServer(t)

	body := fmt.Sprintf(`{"job": %q, "profile_id": "missing"}`, writeTestPosting(t))
	rec := doJSON(t, s, http.MethodPost, "/optimize", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOptimizeMissingProfile(t *testing.T) {
	s := newTestServer(t)

	body := fmt.Sprintf(`{"job": %q}`, writeTestPosting(t))
	rec := doJSON(t, s, http.MethodPost, "/optimize", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "profile")
}

func TestOptimizeMissingJobSource(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/optimize", fmt.Sprintf(`{"profile": %s}`, testProfileJSON))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "job")
}

func TestOptimizeStream(t *testing.T) {
	s := newTestServer(t)

	body := fmt.Sprintf(`{"job": %q, "profile": %s}`, writeTestPosting(t), testProfileJSON)
	rec := doJSON(t, s, http.MethodPost, "/optimize/stream", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	out := rec.Body.String()
	assert.Contains(t, out, "event: step")
	assert.Contains(t, out, "aligned_resume")
	assert.True(t, strings.Contains(out, "event: complete"), "stream ends with a complete event")
}

func TestRunHistoryWithoutDatabase(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/runs", "/runs/00000000-0000-0000-0000-000000000000"} {
		rec := doJSON(t, s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestRateLimiting(t *testing.T) {
	s, err := New(context.Background(), Config{
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  100,
			DefaultWindow: time.Minute,
			Allowlist:     map[string]bool{},
			Endpoints: []ratelimit.EndpointConfig{
				{Path: "/optimize", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
			},
		},
	})
	require.NoError(t, err)
	defer s.rateLimiter.Stop()

	body := fmt.Sprintf(`{"job": %q, "profile": %s}`, writeTestPosting(t), testProfileJSON)

	rec := doJSON(t, s, http.MethodPost, "/optimize", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))

	rec = doJSON(t, s, http.MethodPost, "/optimize", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/profiles", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
