package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielh/resume-optimizer/internal/config"
	"github.com/danielh/resume-optimizer/internal/ingestion"
	"github.com/danielh/resume-optimizer/internal/observability"
	"github.com/danielh/resume-optimizer/internal/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract a structured job description from a posting",
	Long:  `Fetches a job posting (URL or text file), extracts the title, company, skills, requirements, and responsibilities, and writes the job description JSON.`,
	RunE:  runIngest,
}

var (
	ingestJobPath    string
	ingestJobURL     string
	ingestOut        string
	ingestDomains    []string
	ingestUseBrowser bool
	ingestVerbose    bool
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestJobPath, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	ingestCmd.Flags().StringVar(&ingestJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Output JSON path (defaults to stdout)")
	ingestCmd.Flags().StringSliceVar(&ingestDomains, "allowed-domains", nil, "Domain allowlist for URL fetching")
	ingestCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print the extracted job description")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	if ingestJobPath == "" && ingestJobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if ingestJobPath != "" && ingestJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	var job *types.JobDescription
	var metadata *ingestion.Metadata
	var err error

	if ingestJobURL != "" {
		cfg := config.Config{
			UseBrowser:     ingestUseBrowser,
			AllowedDomains: ingestDomains,
			Verbose:        ingestVerbose,
		}
		job, metadata, err = ingestion.IngestFromURL(context.Background(), ingestJobURL, fetchOptions(&cfg))
	} else {
		job, metadata, err = ingestion.IngestFromFile(ingestJobPath)
	}
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if ingestVerbose {
		observability.NewPrinter(os.Stdout).PrintJobDescription(job)
		fmt.Printf("Source hash: %s\n", metadata.Hash)
	}

	return writeJSONOutput(ingestOut, job)
}
