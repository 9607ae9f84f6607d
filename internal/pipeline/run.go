// Package pipeline provides the high-level orchestration for the resume
// optimization process.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/google/uuid"

	"github.com/danielh/resume-optimizer/internal/alignment"
	"github.com/danielh/resume-optimizer/internal/ats"
	"github.com/danielh/resume-optimizer/internal/db"
	"github.com/danielh/resume-optimizer/internal/fetch"
	"github.com/danielh/resume-optimizer/internal/ingestion"
	"github.com/danielh/resume-optimizer/internal/observability"
	"github.com/danielh/resume-optimizer/internal/profiles"
	"github.com/danielh/resume-optimizer/internal/rendering"
	"github.com/danielh/resume-optimizer/internal/types"
)

// Step categories reported in progress events.
const (
	CategoryIngestion    = "ingestion"
	CategoryRetrieval    = "retrieval"
	CategoryAlignment    = "alignment"
	CategoryOptimization = "optimization"
	CategoryRendering    = "rendering"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	JobPath string // path to a job posting text file
	JobURL  string // URL to fetch the posting from

	Profile *types.CandidateProfile // Required: direct data injection

	CandidateName  string
	CandidateEmail string
	CandidatePhone string
	TemplatePath   string

	Alignment alignment.Options
	ATS       ats.Options

	SimilarityThreshold float64 // fragment retrieval threshold; 0 uses the default
	MaxFragments        int     // fragment retrieval cap; 0 uses the default

	UseBrowser     bool
	AllowedDomains []string
	Verbose        bool
	DatabaseURL    string
	OnProgress     ProgressCallback

	// Out receives step progress output. Defaults to os.Stdout.
	Out io.Writer
}

// Result holds the artifacts produced by one pipeline run.
type Result struct {
	RunID        uuid.UUID                 `json:"run_id,omitempty"`
	Job          *types.JobDescription     `json:"job_description"`
	Metadata     *ingestion.Metadata       `json:"job_metadata,omitempty"`
	Aligned      *types.AlignedResume      `json:"aligned_resume"`
	Optimization *types.OptimizationResult `json:"optimization"`
	LaTeX        string                    `json:"resume_tex"`
}

// FinalScore returns the ATS score after auto-fixing, falling back to the
// initial analysis score when no fixes were applied.
func (r *Result) FinalScore() int {
	if r.Optimization == nil {
		return 0
	}
	if r.Optimization.AutoFix != nil && r.Optimization.AutoFix.FixCount > 0 {
		return r.Optimization.AutoFix.UpdatedScore
	}
	return r.Optimization.Analysis.Score
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID uuid.UUID, step, category, message string, content any) {
	if opts.OnProgress == nil {
		return
	}
	event := ProgressEvent{
		Step:     step,
		Category: category,
		Message:  message,
		Content:  content,
	}
	if runID != uuid.Nil {
		event.RunID = runID.String()
	}
	opts.OnProgress(event)
}

// ValidateInputs checks the run options before any work starts. Exactly one
// job source must be set, the URL must be well formed, and the profile must
// carry an identifier.
func ValidateInputs(opts RunOptions) error {
	if opts.JobPath == "" && opts.JobURL == "" {
		return fmt.Errorf("either a job posting file or a job URL is required")
	}
	if opts.JobPath != "" && opts.JobURL != "" {
		return fmt.Errorf("job posting file and job URL are mutually exclusive")
	}
	if opts.JobURL != "" {
		parsed, err := url.Parse(opts.JobURL)
		if err != nil {
			return fmt.Errorf("invalid job URL: %w", err)
		}
		if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("invalid job URL: %q must be an absolute http(s) URL", opts.JobURL)
		}
	}
	if opts.Profile == nil {
		return fmt.Errorf("candidate profile is required")
	}
	if opts.Profile.ProfileID == "" {
		return fmt.Errorf("candidate profile is missing a profile_id")
	}
	return nil
}

// RunPipeline orchestrates the full resume optimization pipeline: ingest the
// job posting, retrieve the relevant slice of the candidate profile, align,
// score and auto-fix, then render LaTeX.
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {
	if err := ValidateInputs(opts); err != nil {
		return nil, fmt.Errorf("invalid pipeline inputs: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	// Initialize database connection if configured
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
			if opts.Verbose {
				fmt.Fprintf(out, "[VERBOSE] Connected to database\n")
			}
		}
	}

	job, metadata, err := ingestJob(ctx, &opts, out, "")
	if err != nil {
		return nil, err
	}

	return processProfile(ctx, &opts, database, out, "", job, metadata, opts.Profile)
}

// ingestJob runs step 1: loading and parsing the job posting from its
// configured source.
func ingestJob(ctx context.Context, opts *RunOptions, out io.Writer, prefix string) (*types.JobDescription, *ingestion.Metadata, error) {
	var job *types.JobDescription
	var metadata *ingestion.Metadata
	var err error

	if opts.JobURL != "" {
		fmt.Fprintf(out, "%sStep 1/5: Ingesting job posting from URL: %s...\n", prefix, opts.JobURL)
		fetchOpts := fetch.DefaultOptions()
		fetchOpts.BrowserEnabled = opts.UseBrowser
		fetchOpts.AllowedDomains = opts.AllowedDomains
		fetchOpts.Verbose = opts.Verbose
		job, metadata, err = ingestion.IngestFromURL(ctx, opts.JobURL, fetchOpts)
		if err != nil {
			return nil, nil, fmt.Errorf("job ingestion from URL failed: %w", err)
		}
	} else {
		fmt.Fprintf(out, "%sStep 1/5: Ingesting job posting from file: %s...\n", prefix, opts.JobPath)
		job, metadata, err = ingestion.IngestFromFile(opts.JobPath)
		if err != nil {
			return nil, nil, fmt.Errorf("job ingestion from file failed: %w", err)
		}
	}

	emitProgress(opts, uuid.Nil, db.StepJobDescription, CategoryIngestion,
		fmt.Sprintf("Ingested job posting: %s", job.Title), job)
	return job, metadata, nil
}

// processProfile runs steps 2-5 for a single candidate profile against an
// already ingested job. Persistence is best-effort: artifact save failures
// never abort the run.
func processProfile(ctx context.Context, opts *RunOptions, database *db.DB, out io.Writer, prefix string, job *types.JobDescription, metadata *ingestion.Metadata, profile *types.CandidateProfile) (*Result, error) {
	printer := observability.NewPrinter(out)

	var runID uuid.UUID
	if database != nil {
		var err error
		runID, err = database.CreateRun(ctx, profile.ProfileID, job.Title, opts.JobURL)
		if err != nil {
			fmt.Fprintf(out, "%sWarning: Failed to create database run: %v\n", prefix, err)
			runID = uuid.Nil
		} else {
			if opts.Verbose {
				fmt.Fprintf(out, "%s[VERBOSE] Created database run: %s\n", prefix, runID)
			}
			_ = database.SaveArtifact(ctx, runID, db.StepJobDescription, job)
			_ = database.SaveArtifact(ctx, runID, db.StepJobMetadata, metadata)
		}
	}

	fail := func(err error) (*Result, error) {
		if database != nil && runID != uuid.Nil {
			_ = database.CompleteRun(ctx, runID, db.StatusFailed, nil)
		}
		return nil, err
	}

	if opts.Verbose {
		printer.PrintJobDescription(job)
	}

	// Step 2: Retrieve the profile fragments relevant to this job
	fmt.Fprintf(out, "%sStep 2/5: Retrieving relevant profile content...\n", prefix)
	retriever := profiles.NewRetriever(opts.SimilarityThreshold, opts.MaxFragments)
	relevant := retriever.RelevantProfile(profile, job)
	emitProgress(opts, runID, db.StepRelevantProfile, CategoryRetrieval,
		fmt.Sprintf("Selected %d skills and %d experience entries", len(relevant.Skills), len(relevant.Experience)), nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepRelevantProfile, relevant)
	}

	// Step 3: Align the profile content with the job keywords
	fmt.Fprintf(out, "%sStep 3/5: Aligning resume content with job keywords...\n", prefix)
	engine, err := alignment.NewEngine(opts.Alignment)
	if err != nil {
		return fail(fmt.Errorf("configuring alignment engine failed: %w", err))
	}
	aligned, err := engine.AlignContent(job, relevant)
	if err != nil {
		return fail(fmt.Errorf("content alignment failed: %w", err))
	}
	if opts.Verbose {
		printer.PrintAlignment(aligned)
	}
	emitProgress(opts, runID, db.StepAlignedResume, CategoryAlignment,
		fmt.Sprintf("Aligned content: overall score %.2f", aligned.Metadata.OverallScore), aligned)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepAlignedResume, aligned)
	}

	// Step 4: Score against ATS heuristics and auto-fix below-target resumes
	fmt.Fprintf(out, "%sStep 4/5: Scoring and optimizing for ATS compliance...\n", prefix)
	optimizer, err := ats.NewOptimizer(opts.ATS)
	if err != nil {
		return fail(fmt.Errorf("configuring ATS optimizer failed: %w", err))
	}
	optimization, err := optimizer.OptimizeResume(aligned)
	if err != nil {
		return fail(fmt.Errorf("ATS optimization failed: %w", err))
	}
	if opts.Verbose {
		printer.PrintOptimization(optimization)
		printer.PrintSuggestions(optimization.Suggestions)
	}
	emitProgress(opts, runID, db.StepOptimization, CategoryOptimization,
		fmt.Sprintf("ATS score %d (%s)", optimization.Analysis.Score, optimization.Analysis.Category), optimization)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepOptimization, optimization)
	}

	// Step 5: Render the LaTeX resume
	fmt.Fprintf(out, "%sStep 5/5: Rendering LaTeX resume...\n", prefix)
	contact := rendering.Contact{
		Name:  opts.CandidateName,
		Email: opts.CandidateEmail,
		Phone: opts.CandidatePhone,
	}
	if contact.Name == "" {
		contact.Name = profile.Name
	}
	if contact.Email == "" {
		contact.Email = profile.Email
	}
	if contact.Phone == "" {
		contact.Phone = profile.Phone
	}
	latex, err := rendering.RenderLaTeX(optimization, aligned, contact, opts.TemplatePath)
	if err != nil {
		return fail(fmt.Errorf("rendering latex failed: %w", err))
	}
	if issues := rendering.CheckCompatibility(latex); len(issues) > 0 {
		fmt.Fprintf(out, "%sWarning: rendered document has %d compatibility issues\n", prefix, len(issues))
	}
	emitProgress(opts, runID, db.StepResumeTex, CategoryRendering, "Rendered LaTeX resume", nil)

	result := &Result{
		RunID:        runID,
		Job:          job,
		Metadata:     metadata,
		Aligned:      aligned,
		Optimization: optimization,
		LaTeX:        latex,
	}

	if database != nil && runID != uuid.Nil {
		_ = database.SaveTextArtifact(ctx, runID, db.StepResumeTex, latex)
		score := result.FinalScore()
		_ = database.CompleteRun(ctx, runID, db.StatusCompleted, &score)
	}

	fmt.Fprintf(out, "%sDone! Final ATS score: %d\n", prefix, result.FinalScore())
	return result, nil
}
