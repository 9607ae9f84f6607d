package pipeline

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/danielh/resume-optimizer/internal/db"
	"github.com/danielh/resume-optimizer/internal/types"
)

// DefaultBatchConcurrency caps how many profiles are processed at once.
const DefaultBatchConcurrency = 4

// BatchItem holds the outcome for one profile in a batch run.
type BatchItem struct {
	ProfileID string  `json:"profile_id"`
	Result    *Result `json:"result,omitempty"`
	Err       error   `json:"-"`
}

// RunBatch runs the pipeline for several candidate profiles against a single
// job posting. The posting is ingested once; the per-profile steps fan out
// concurrently. Profile failures are recorded per item rather than aborting
// the whole batch; the returned error covers ingestion and cancellation only.
func RunBatch(ctx context.Context, opts RunOptions, candidates []*types.CandidateProfile, concurrency int) ([]BatchItem, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidate profiles provided")
	}
	for i, profile := range candidates {
		probe := opts
		probe.Profile = profile
		if err := ValidateInputs(probe); err != nil {
			return nil, fmt.Errorf("invalid pipeline inputs for candidate %d: %w", i, err)
		}
	}
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	var database *db.DB
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Fprintf(out, "Warning: Failed to connect to database: %v\n", err)
			fmt.Fprintf(out, "Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
		}
	}

	job, metadata, err := ingestJob(ctx, &opts, out, "")
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Processing %d candidate profiles...\n", len(candidates))

	items := make([]BatchItem, len(candidates))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, profile := range candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				items[i] = BatchItem{ProfileID: profile.ProfileID, Err: err}
				return err
			}

			// Each goroutine gets its own options copy so progress prefixes
			// and the profile do not race.
			runOpts := opts
			runOpts.Profile = profile
			prefix := fmt.Sprintf("[%s] ", profile.ProfileID)

			result, err := processProfile(gCtx, &runOpts, database, out, prefix, job, metadata, profile)
			items[i] = BatchItem{ProfileID: profile.ProfileID, Result: result, Err: err}
			if err != nil {
				fmt.Fprintf(out, "%sFailed: %v\n", prefix, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}
