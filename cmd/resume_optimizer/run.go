package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danielh/resume-optimizer/internal/alignment"
	"github.com/danielh/resume-optimizer/internal/ats"
	"github.com/danielh/resume-optimizer/internal/config"
	"github.com/danielh/resume-optimizer/internal/pipeline"
	"github.com/danielh/resume-optimizer/internal/profiles"
	"github.com/danielh/resume-optimizer/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full optimization pipeline end-to-end",
	Long: `Orchestrates the entire optimization process: job ingestion -> profile retrieval -> content alignment -> ATS scoring and auto-fix -> LaTeX rendering.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runJob         string
	runJobURL      string
	runProfiles    []string
	runName        string
	runEmail       string
	runPhone       string
	runTemplate    string
	runTargetScore int
	runOut         string
	runUseBrowser  bool
	runVerbose     bool
	runDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	runCommand.Flags().StringVar(&runJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	runCommand.Flags().StringSliceVarP(&runProfiles, "profile", "p", nil, "Path to candidate profile JSON (repeat for batch runs)")
	runCommand.Flags().StringVarP(&runName, "name", "n", "", "Candidate name (defaults to the profile's)")
	runCommand.Flags().StringVar(&runEmail, "email", "", "Candidate email (defaults to the profile's)")
	runCommand.Flags().StringVar(&runPhone, "phone", "", "Candidate phone (defaults to the profile's)")
	runCommand.Flags().StringVarP(&runTemplate, "template", "t", "", "Path to LaTeX template (defaults to the built-in template)")
	runCommand.Flags().IntVar(&runTargetScore, "target-score", 0, "ATS score that counts as meeting the target")
	runCommand.Flags().StringVarP(&runOut, "out", "o", "resume.tex", "Output .tex path (a directory for batch runs)")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

// resolveRunConfig merges the config file, explicit flags, environment, and
// defaults, in that priority order.
func resolveRunConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if runVerbose {
			fmt.Printf("Loaded config from: %s\n", runConfigPath)
		}
	}

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("job") {
		cfg.Job = runJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = runJobURL
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = runTemplate
	}
	if cmd.Flags().Changed("target-score") {
		cfg.TargetScore = runTargetScore
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	cfg.FromEnv()

	cfg = cfg.MergeWithDefaults(config.Config{
		TargetScore:       ats.DefaultTargetScore,
		KeywordWeight:     ats.DefaultKeywordWeight,
		SectionWeight:     ats.DefaultSectionWeight,
		FormattingWeight:  ats.DefaultFormattingWeight,
		MinKeywordDensity: ats.DefaultMinKeywordDensity,
		SkillsWeight:      alignment.DefaultSkillsWeight,
		ExperienceWeight:  alignment.DefaultExperienceWeight,
		MaxExperiences:    alignment.DefaultMaxExperiences,
	})

	if cfg.Job == "" && cfg.JobURL == "" {
		return cfg, fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return cfg, fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	return cfg, nil
}

// pipelineOptions builds RunOptions for a resolved config.
func pipelineOptions(cfg config.Config) pipeline.RunOptions {
	return pipeline.RunOptions{
		JobPath:        cfg.Job,
		JobURL:         cfg.JobURL,
		CandidateName:  runName,
		CandidateEmail: runEmail,
		CandidatePhone: runPhone,
		TemplatePath:   cfg.Template,
		Alignment: alignment.Options{
			SkillsWeight:     cfg.SkillsWeight,
			ExperienceWeight: cfg.ExperienceWeight,
			MaxExperiences:   cfg.MaxExperiences,
		},
		ATS: ats.Options{
			TargetScore:       cfg.TargetScore,
			KeywordWeight:     cfg.KeywordWeight,
			SectionWeight:     cfg.SectionWeight,
			FormattingWeight:  cfg.FormattingWeight,
			MinKeywordDensity: cfg.MinKeywordDensity,
		},
		UseBrowser:     cfg.UseBrowser,
		AllowedDomains: cfg.AllowedDomains,
		Verbose:        cfg.Verbose,
		DatabaseURL:    cfg.DatabaseURL,
	}
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveRunConfig(cmd)
	if err != nil {
		return err
	}

	profilePaths := runProfiles
	if len(profilePaths) == 0 && cfg.Profile != "" {
		profilePaths = []string{cfg.Profile}
	}
	if len(profilePaths) == 0 {
		return fmt.Errorf("at least one --profile is required (via flag or config)")
	}

	candidates := make([]*types.CandidateProfile, 0, len(profilePaths))
	for _, path := range profilePaths {
		profile, err := profiles.LoadFromFile(path)
		if err != nil {
			return err
		}
		candidates = append(candidates, profile)
	}

	opts := pipelineOptions(cfg)

	if len(candidates) == 1 {
		opts.Profile = candidates[0]
		result, err := pipeline.RunPipeline(ctx, opts)
		if err != nil {
			return err
		}
		if err := os.WriteFile(runOut, []byte(result.LaTeX), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", runOut, err)
		}
		fmt.Printf("Wrote %s (ATS score %d)\n", runOut, result.FinalScore())
		return nil
	}

	// Batch: one rendered resume per profile, written into the out directory.
	if err := os.MkdirAll(runOut, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", runOut, err)
	}

	items, err := pipeline.RunBatch(ctx, opts, candidates, 0)
	if err != nil {
		return err
	}

	var failures int
	for _, item := range items {
		if item.Err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "%s: %v\n", item.ProfileID, item.Err)
			continue
		}
		outPath := filepath.Join(runOut, item.ProfileID+".tex")
		if err := os.WriteFile(outPath, []byte(item.Result.LaTeX), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		fmt.Printf("Wrote %s (ATS score %d)\n", outPath, item.Result.FinalScore())
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d profiles failed", failures, len(items))
	}
	return nil
}
