package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/danielh/resume-optimizer/internal/profiles"
	"github.com/danielh/resume-optimizer/internal/schemas"
	"github.com/danielh/resume-optimizer/internal/types"
)

// maxProfileBodyBytes caps uploaded profile documents.
const maxProfileBodyBytes = 1 << 20

// handleSaveProfile validates an uploaded profile document against the JSON
// schema and stores it. Saving an existing profile id overwrites it.
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxProfileBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidateCandidateProfile(body); err != nil {
		s.schemaErrorResponse(w, err)
		return
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid profile document: "+err.Error())
		return
	}
	if err := profile.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid profile document: "+err.Error())
		return
	}

	if err := s.store.Save(r.Context(), &profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"profile_id": profile.ProfileID})
}

// handleListProfiles returns all stored profiles.
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"profiles": list, "count": len(list)})
}

// handleGetProfile returns one stored profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, notFoundStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleDeleteProfile removes a stored profile.
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.errorResponse(w, notFoundStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RetrieveRequest is the body for /profiles/{id}/retrieve: a job description
// to rank the profile's fragments against.
type RetrieveRequest struct {
	Job       *types.JobDescription `json:"job_description"`
	Threshold float64               `json:"similarity_threshold,omitempty"`
	MaxItems  int                   `json:"max_fragments,omitempty"`
}

// handleRetrieveProfile ranks a stored profile's content fragments against a
// job description and returns both the scored fragments and the merged
// relevant-profile view.
func (s *Server) handleRetrieveProfile(w http.ResponseWriter, r *http.Request) {
	var req RetrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Job == nil {
		s.errorResponse(w, http.StatusBadRequest, "job_description is required")
		return
	}

	profile, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, notFoundStatus(err), err.Error())
		return
	}

	retriever := profiles.NewRetriever(req.Threshold, req.MaxItems)
	fragments := retriever.Retrieve(profile, req.Job)
	relevant := retriever.RelevantProfile(profile, req.Job)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"profile_id":       profile.ProfileID,
		"fragments":        fragments,
		"relevant_profile": relevant,
	})
}

// schemaErrorResponse renders schema validation failures as a structured
// field-error list.
func (s *Server) schemaErrorResponse(w http.ResponseWriter, err error) {
	if validationErr, ok := err.(*schemas.ValidationError); ok {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":  "profile document failed schema validation",
			"fields": validationErr.Errors,
		})
		return
	}
	s.errorResponse(w, http.StatusBadRequest, err.Error())
}
