package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danielh/resume-optimizer/internal/types"
)

// SaveProfile upserts a candidate profile as JSONB keyed by its profile ID.
func (db *DB) SaveProfile(ctx context.Context, profile *types.CandidateProfile) error {
	if profile == nil || profile.ProfileID == "" {
		return fmt.Errorf("profile with a profile_id is required")
	}

	jsonBytes, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (profile_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (profile_id) DO UPDATE SET content = $2, updated_at = NOW()`,
		profile.ProfileID, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profile.ProfileID, err)
	}
	return nil
}

// GetProfile retrieves a candidate profile by ID. Returns nil without error
// when the profile does not exist.
func (db *DB) GetProfile(ctx context.Context, profileID string) (*types.CandidateProfile, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM profiles WHERE profile_id = $1`,
		profileID,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", profileID, err)
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal(content, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", profileID, err)
	}
	return &profile, nil
}

// ListProfiles retrieves all stored profiles ordered by profile ID.
func (db *DB) ListProfiles(ctx context.Context) ([]types.CandidateProfile, error) {
	rows, err := db.pool.Query(ctx, `SELECT content FROM profiles ORDER BY profile_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []types.CandidateProfile
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		var profile types.CandidateProfile
		if err := json.Unmarshal(content, &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// DeleteProfile removes a profile by ID.
func (db *DB) DeleteProfile(ctx context.Context, profileID string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM profiles WHERE profile_id = $1`, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", profileID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", profileID)
	}
	return nil
}
