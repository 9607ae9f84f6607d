package profiles

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielh/resume-optimizer/internal/types"
)

// LoadFromFile reads and validates a candidate profile from a JSON file.
func LoadFromFile(path string) (*types.CandidateProfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal(content, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	return &profile, nil
}
