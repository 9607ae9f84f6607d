package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielh/resume-optimizer/internal/config"
	"github.com/danielh/resume-optimizer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running the optimization pipeline and managing candidate profiles.`,
	RunE:  runServe,
}

var (
	serveConfigPath string
	serveAddr       string
	serveUseBrowser bool
	serveTemplate   string
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().StringVar(&serveAddr, "listen", "", "Listen address (e.g. :8080)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	serveCmd.Flags().StringVarP(&serveTemplate, "template", "t", "", "Path to LaTeX template (defaults to the built-in template)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("listen") {
		cfg.ListenAddr = serveAddr
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = serveUseBrowser
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = serveTemplate
	}

	cfg.FromEnv()
	cfg = cfg.MergeWithDefaults(config.Config{ListenAddr: ":8080"})

	srv, err := server.New(context.Background(), server.Config{
		ListenAddr:     cfg.ListenAddr,
		DatabaseURL:    cfg.DatabaseURL,
		TemplatePath:   cfg.Template,
		AllowedDomains: cfg.AllowedDomains,
		UseBrowser:     cfg.UseBrowser,
		Verbose:        cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
