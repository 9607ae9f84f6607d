// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents settings loadable from a JSON file. All fields are
// optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Job      string `json:"job,omitempty"`      // path to a job posting text file
	JobURL   string `json:"job_url,omitempty"`  // URL to fetch the posting from
	Profile  string `json:"profile,omitempty"`  // path to a candidate profile JSON file
	Template string `json:"template,omitempty"` // path to a LaTeX template

	// Alignment engine
	SkillsWeight     float64 `json:"skills_weight,omitempty"`
	ExperienceWeight float64 `json:"experience_weight,omitempty"`
	MaxExperiences   int     `json:"max_experiences,omitempty"`

	// ATS engine
	TargetScore       int     `json:"target_score,omitempty"`
	KeywordWeight     float64 `json:"keyword_weight,omitempty"`
	SectionWeight     float64 `json:"section_weight,omitempty"`
	FormattingWeight  float64 `json:"formatting_weight,omitempty"`
	MinKeywordDensity float64 `json:"min_keyword_density,omitempty"`

	// Behavior
	UseBrowser     bool     `json:"use_browser,omitempty"`     // headless browser fallback for SPA job boards
	AllowedDomains []string `json:"allowed_domains,omitempty"` // fetch domain allowlist
	Verbose        bool     `json:"verbose,omitempty"`
	DatabaseURL    string   `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP listen address, e.g. ":8080"
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv overlays environment variables onto the config. Environment
// values win over file values so deployments can override without editing
// files.
func (c *Config) FromEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("ALLOWED_DOMAINS"); v != "" {
		c.AllowedDomains = splitDomains(v)
	}
}

func splitDomains(value string) []string {
	parts := strings.Split(value, ",")
	domains := make([]string, 0, len(parts))
	for _, part := range parts {
		if domain := strings.TrimSpace(part); domain != "" {
			domains = append(domains, domain)
		}
	}
	return domains
}

// Validate checks the configuration values. Required fields are not checked
// here; CLI flag validation handles those after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.TargetScore < 0 || c.TargetScore > 100 {
		return fmt.Errorf("config error: 'target_score' must be in [0,100]")
	}
	for name, w := range map[string]float64{
		"skills_weight":       c.SkillsWeight,
		"experience_weight":   c.ExperienceWeight,
		"keyword_weight":      c.KeywordWeight,
		"section_weight":      c.SectionWeight,
		"formatting_weight":   c.FormattingWeight,
		"min_keyword_density": c.MinKeywordDensity,
	} {
		if w < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", name)
		}
	}
	if c.MaxExperiences < 0 {
		return fmt.Errorf("config error: 'max_experiences' must be non-negative")
	}

	for name, path := range map[string]string{
		"template": c.Template,
		"job":      c.Job,
		"profile":  c.Profile,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. Config file values act as defaults for CLI flags; bools are not
// merged since unset and false are indistinguishable.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if len(result.AllowedDomains) == 0 {
		result.AllowedDomains = defaults.AllowedDomains
	}

	if result.TargetScore == 0 {
		result.TargetScore = defaults.TargetScore
	}
	if result.MaxExperiences == 0 {
		result.MaxExperiences = defaults.MaxExperiences
	}

	for dst, def := range map[*float64]float64{
		&result.SkillsWeight:      defaults.SkillsWeight,
		&result.ExperienceWeight:  defaults.ExperienceWeight,
		&result.KeywordWeight:     defaults.KeywordWeight,
		&result.SectionWeight:     defaults.SectionWeight,
		&result.FormattingWeight:  defaults.FormattingWeight,
		&result.MinKeywordDensity: defaults.MinKeywordDensity,
	} {
		if *dst == 0 {
			*dst = def
		}
	}

	return result
}
