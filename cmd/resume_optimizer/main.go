// Package main provides the resume optimizer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_optimizer",
	Short: "ATS resume optimizer",
	Long:  "Resume Optimizer tailors a candidate profile to a job posting: it extracts job keywords, aligns resume content, scores ATS compliance with auto-fixes, and renders a LaTeX resume.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
