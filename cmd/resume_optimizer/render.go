package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielh/resume-optimizer/internal/rendering"
	"github.com/danielh/resume-optimizer/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an aligned resume to LaTeX",
	Long:  `Renders the aligned resume (optionally with auto-fixed content from 'optimize') through the LaTeX template and checks the output for Overleaf compatibility.`,
	RunE:  runRender,
}

var (
	renderAlignedPath      string
	renderOptimizationPath string
	renderTemplatePath     string
	renderOut              string
	renderName             string
	renderEmail            string
	renderPhone            string
)

func init() {
	renderCmd.Flags().StringVarP(&renderAlignedPath, "aligned", "a", "", "Path to aligned resume JSON (from 'align')")
	renderCmd.Flags().StringVar(&renderOptimizationPath, "optimization", "", "Path to optimization JSON (from 'optimize'); its fixed content wins when present")
	renderCmd.Flags().StringVarP(&renderTemplatePath, "template", "t", "", "Path to LaTeX template (defaults to the built-in template)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "resume.tex", "Output .tex path")
	renderCmd.Flags().StringVarP(&renderName, "name", "n", "", "Candidate name")
	renderCmd.Flags().StringVar(&renderEmail, "email", "", "Candidate email")
	renderCmd.Flags().StringVar(&renderPhone, "phone", "", "Candidate phone")

	_ = renderCmd.MarkFlagRequired("aligned")

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	var aligned types.AlignedResume
	if err := loadJSONFile(renderAlignedPath, &aligned); err != nil {
		return err
	}

	var optimization *types.OptimizationResult
	if renderOptimizationPath != "" {
		optimization = &types.OptimizationResult{}
		if err := loadJSONFile(renderOptimizationPath, optimization); err != nil {
			return err
		}
	}

	contact := rendering.Contact{Name: renderName, Email: renderEmail, Phone: renderPhone}
	latex, err := rendering.RenderLaTeX(optimization, &aligned, contact, renderTemplatePath)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	if issues := rendering.CheckCompatibility(latex); len(issues) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d compatibility issues:\n", len(issues))
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
	}

	if err := os.WriteFile(renderOut, []byte(latex), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOut, err)
	}
	fmt.Printf("Wrote %s\n", renderOut)
	return nil
}
