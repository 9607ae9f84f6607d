package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielh/resume-optimizer/internal/ats"
	"github.com/danielh/resume-optimizer/internal/observability"
	"github.com/danielh/resume-optimizer/internal/types"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Score an aligned resume against ATS heuristics",
	Long:  `Computes the composite ATS compliance score for an aligned resume, generates prioritized suggestions, and applies additive auto-fixes when the score falls short of the target.`,
	RunE:  runOptimize,
}

var (
	optimizeAlignedPath string
	optimizeOut         string
	optimizeTarget      int
	optimizeVerbose     bool
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeAlignedPath, "aligned", "a", "", "Path to aligned resume JSON (from 'align')")
	optimizeCmd.Flags().StringVarP(&optimizeOut, "out", "o", "", "Output JSON path (defaults to stdout)")
	optimizeCmd.Flags().IntVar(&optimizeTarget, "target-score", 0, "ATS score that counts as meeting the target")
	optimizeCmd.Flags().BoolVarP(&optimizeVerbose, "verbose", "v", false, "Print the score breakdown and suggestions")

	_ = optimizeCmd.MarkFlagRequired("aligned")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(_ *cobra.Command, _ []string) error {
	var aligned types.AlignedResume
	if err := loadJSONFile(optimizeAlignedPath, &aligned); err != nil {
		return err
	}

	optimizer, err := ats.NewOptimizer(ats.Options{TargetScore: optimizeTarget})
	if err != nil {
		return err
	}

	result, err := optimizer.OptimizeResume(&aligned)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	if optimizeVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintOptimization(result)
		printer.PrintSuggestions(result.Suggestions)
	}

	return writeJSONOutput(optimizeOut, result)
}
