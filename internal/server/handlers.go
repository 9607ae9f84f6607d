package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielh/resume-optimizer/internal/ats"
	"github.com/danielh/resume-optimizer/internal/db"
	"github.com/danielh/resume-optimizer/internal/pipeline"
	"github.com/danielh/resume-optimizer/internal/profiles"
	"github.com/danielh/resume-optimizer/internal/types"
)

// OptimizeRequest represents the request body for /optimize. The candidate
// is given either inline or by stored profile id.
type OptimizeRequest struct {
	JobURL    string                  `json:"job_url,omitempty"`
	JobPath   string                  `json:"job,omitempty"`
	ProfileID string                  `json:"profile_id,omitempty"`
	Profile   *types.CandidateProfile `json:"profile,omitempty"`

	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Template    string `json:"template,omitempty"`
	TargetScore int    `json:"target_score,omitempty"`
}

// resolveProfile returns the inline profile when given, otherwise loads the
// stored one.
func (s *Server) resolveProfile(r *http.Request, req *OptimizeRequest) (*types.CandidateProfile, error) {
	if req.Profile != nil {
		return req.Profile, nil
	}
	if req.ProfileID == "" {
		return nil, &ErrValidation{Field: "profile", Message: "either profile or profile_id is required"}
	}
	return s.store.Get(r.Context(), req.ProfileID)
}

// runOptions translates an optimize request into pipeline options.
func (s *Server) runOptions(req *OptimizeRequest, profile *types.CandidateProfile, out io.Writer) pipeline.RunOptions {
	template := req.Template
	if template == "" {
		template = s.cfg.TemplatePath
	}
	return pipeline.RunOptions{
		JobURL:         req.JobURL,
		JobPath:        req.JobPath,
		Profile:        profile,
		CandidateName:  req.Name,
		CandidateEmail: req.Email,
		CandidatePhone: req.Phone,
		TemplatePath:   template,
		ATS:            ats.Options{TargetScore: req.TargetScore},
		UseBrowser:     s.cfg.UseBrowser,
		AllowedDomains: s.cfg.AllowedDomains,
		Verbose:        false,
		DatabaseURL:    s.cfg.DatabaseURL,
		Out:            out,
	}
}

// handleOptimize runs the full pipeline synchronously and returns the run
// result: the aligned resume, the ATS analysis, and the rendered document.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := s.resolveProfile(r, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	opts := s.runOptions(&req, profile, io.Discard)
	if err := pipeline.ValidateInputs(opts); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := pipeline.RunPipeline(r.Context(), opts)
	if err != nil {
		log.Printf("Pipeline run failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleOptimizeStream runs the pipeline and streams progress via SSE,
// finishing with a complete event carrying the result.
func (s *Server) handleOptimizeStream(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := s.resolveProfile(r, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	opts := s.runOptions(&req, profile, io.Discard)
	if err := pipeline.ValidateInputs(opts); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	result, err := pipeline.RunPipeline(r.Context(), opts)
	if err != nil {
		log.Printf("Pipeline run failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(result)
}

// handleListRuns lists stored runs, optionally filtered by profile_id and
// status query parameters.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history requires a configured database")
		return
	}

	filters := db.RunFilters{
		ProfileID: r.URL.Query().Get("profile_id"),
		Status:    r.URL.Query().Get("status"),
	}
	runs, err := s.db.ListRuns(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

func (s *Server) runID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history requires a configured database")
		return uuid.Nil, false
	}
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return uuid.Nil, false
	}
	return runID, true
}

// handleGetRun returns one run's status record.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runID(w, r)
	if !ok {
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}

// handleDeleteRun removes a run and its artifacts.
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runID(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteRun(r.Context(), runID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleRunArtifacts lists the artifacts stored for a run.
func (s *Server) handleRunArtifacts(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runID(w, r)
	if !ok {
		return
	}

	artifacts, err := s.db.ListArtifacts(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"run_id": runID, "artifacts": artifacts})
}

// handleRunArtifact returns one artifact's JSON content.
func (s *Server) handleRunArtifact(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runID(w, r)
	if !ok {
		return
	}

	content, err := s.db.GetArtifact(r.Context(), runID, r.PathValue("step"))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "Artifact not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// handleRunResumeTex returns the rendered LaTeX document for a run.
func (s *Server) handleRunResumeTex(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runID(w, r)
	if !ok {
		return
	}

	tex, err := s.db.GetTextArtifact(r.Context(), runID, db.StepResumeTex)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if tex == "" {
		s.errorResponse(w, http.StatusNotFound, "Rendered resume not found")
		return
	}

	w.Header().Set("Content-Type", "application/x-tex")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(tex))
}

// notFoundStatus maps a store lookup error to 404 when it is the sentinel.
func notFoundStatus(err error) int {
	if errors.Is(err, profiles.ErrProfileNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
