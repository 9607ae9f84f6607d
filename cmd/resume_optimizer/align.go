package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielh/resume-optimizer/internal/alignment"
	"github.com/danielh/resume-optimizer/internal/observability"
	"github.com/danielh/resume-optimizer/internal/profiles"
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Align a candidate profile with a job description",
	Long:  `Scores and reorders the candidate's skills and experience against an extracted job description, producing the aligned resume JSON.`,
	RunE:  runAlign,
}

var (
	alignJobPath     string
	alignProfilePath string
	alignOut         string
	alignSkillsW     float64
	alignExperienceW float64
	alignMaxExp      int
	alignVerbose     bool
)

func init() {
	alignCmd.Flags().StringVarP(&alignJobPath, "job", "j", "", "Path to job description JSON (from 'ingest')")
	alignCmd.Flags().StringVarP(&alignProfilePath, "profile", "p", "", "Path to candidate profile JSON")
	alignCmd.Flags().StringVarP(&alignOut, "out", "o", "", "Output JSON path (defaults to stdout)")
	alignCmd.Flags().Float64Var(&alignSkillsW, "skills-weight", 0, "Relative weight of the skills score")
	alignCmd.Flags().Float64Var(&alignExperienceW, "experience-weight", 0, "Relative weight of the experience score")
	alignCmd.Flags().IntVar(&alignMaxExp, "max-experiences", 0, "Experience entries kept in the aligned output")
	alignCmd.Flags().BoolVarP(&alignVerbose, "verbose", "v", false, "Print the alignment summary")

	_ = alignCmd.MarkFlagRequired("job")
	_ = alignCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(alignCmd)
}

func runAlign(_ *cobra.Command, _ []string) error {
	job, err := loadJobJSON(alignJobPath)
	if err != nil {
		return err
	}
	profile, err := profiles.LoadFromFile(alignProfilePath)
	if err != nil {
		return err
	}

	engine, err := alignment.NewEngine(alignment.Options{
		SkillsWeight:     alignSkillsW,
		ExperienceWeight: alignExperienceW,
		MaxExperiences:   alignMaxExp,
	})
	if err != nil {
		return err
	}

	aligned, err := engine.AlignContent(job, profile)
	if err != nil {
		return fmt.Errorf("alignment failed: %w", err)
	}

	if alignVerbose {
		observability.NewPrinter(os.Stdout).PrintAlignment(aligned)
	}

	return writeJSONOutput(alignOut, aligned)
}
