package types

import "github.com/go-playground/validator/v10"

// CandidateProfile represents a stored applicant profile.
// Supplied externally (upload or store retrieval) and treated as read-only
// input by the alignment and scoring engines. Optional fields degrade to
// empty values, never errors.
type CandidateProfile struct {
	ProfileID  string            `json:"profile_id" validate:"required"`
	Name       string            `json:"name,omitempty"`
	Email      string            `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string            `json:"phone,omitempty"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education,omitempty"`
	Projects   []ProjectEntry    `json:"projects,omitempty"`
}

// Validate validates the profile using the struct tags.
func (p *CandidateProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// ExperienceEntry represents one position in the candidate's work history.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"` // e.g., "2021-2024"
	Description string `json:"description"`
}

// EducationEntry represents one degree or qualification.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ProjectEntry represents a personal or professional project.
type ProjectEntry struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
}
