// Package profiles manages candidate profile storage and retrieval. Two
// Store implementations are provided: an in-memory store for tests and
// single-shot CLI use, and a PostgreSQL store for the server. The Retriever
// ranks stored profiles against a job description using term-frequency
// cosine similarity.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/danielh/resume-optimizer/internal/db"
	"github.com/danielh/resume-optimizer/internal/types"
)

// ErrProfileNotFound is returned when a profile ID has no stored profile.
var ErrProfileNotFound = errors.New("profile not found")

// Store persists candidate profiles.
type Store interface {
	Save(ctx context.Context, profile *types.CandidateProfile) error
	Get(ctx context.Context, profileID string) (*types.CandidateProfile, error)
	List(ctx context.Context) ([]types.CandidateProfile, error)
	Delete(ctx context.Context, profileID string) error
}

// MemoryStore is an in-memory Store safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]types.CandidateProfile
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]types.CandidateProfile)}
}

// Save stores a copy of the profile keyed by its profile ID.
func (s *MemoryStore) Save(_ context.Context, profile *types.CandidateProfile) error {
	if profile == nil || profile.ProfileID == "" {
		return fmt.Errorf("profile with a profile_id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ProfileID] = *profile
	return nil
}

// Get retrieves a profile by ID.
func (s *MemoryStore) Get(_ context.Context, profileID string) (*types.CandidateProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[profileID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, profileID)
	}
	return &profile, nil
}

// List returns all profiles sorted by profile ID.
func (s *MemoryStore) List(_ context.Context) ([]types.CandidateProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]types.CandidateProfile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		result = append(result, profile)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProfileID < result[j].ProfileID
	})
	return result, nil
}

// Delete removes a profile by ID.
func (s *MemoryStore) Delete(_ context.Context, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profileID]; !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, profileID)
	}
	delete(s.profiles, profileID)
	return nil
}

// PostgresStore is a Store backed by the database layer.
type PostgresStore struct {
	db *db.DB
}

// NewPostgresStore wraps a database handle as a Store.
func NewPostgresStore(database *db.DB) *PostgresStore {
	return &PostgresStore{db: database}
}

func (s *PostgresStore) Save(ctx context.Context, profile *types.CandidateProfile) error {
	return s.db.SaveProfile(ctx, profile)
}

func (s *PostgresStore) Get(ctx context.Context, profileID string) (*types.CandidateProfile, error) {
	profile, err := s.db.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, profileID)
	}
	return profile, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]types.CandidateProfile, error) {
	return s.db.ListProfiles(ctx)
}

func (s *PostgresStore) Delete(ctx context.Context, profileID string) error {
	return s.db.DeleteProfile(ctx, profileID)
}
