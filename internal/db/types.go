package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents one optimization pipeline run.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	ProfileID   string     `json:"profile_id"`
	JobTitle    string     `json:"job_title"`
	JobURL      string     `json:"job_url"`
	Status      string     `json:"status"`
	ATSScore    *int       `json:"ats_score,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status values.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact step names for the pipeline's persisted outputs.
const (
	StepJobDescription  = "job_description"
	StepJobMetadata     = "job_metadata"
	StepRelevantProfile = "relevant_profile"
	StepAlignedResume   = "aligned_resume"
	StepOptimization    = "optimization"
	StepResumeTex       = "resume_tex"
)
