package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"job_url": "https://boards.greenhouse.io/acme/jobs/1",
		"target_score": 85,
		"allowed_domains": ["greenhouse.io"],
		"database_url": "postgres://localhost/optimizer"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/1", cfg.JobURL)
	assert.Equal(t, 85, cfg.TargetScore)
	assert.Equal(t, []string{"greenhouse.io"}, cfg.AllowedDomains)
	assert.Equal(t, "postgres://localhost/optimizer", cfg.DatabaseURL)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigMalformedJSON(t *testing.T) {
	path := writeConfig(t, `{not valid`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidateMutuallyExclusiveJobSources(t *testing.T) {
	cfg := &Config{Job: "job.txt", JobURL: "https://example.com/job"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidateTargetScoreRange(t *testing.T) {
	cfg := &Config{TargetScore: 150}
	assert.Error(t, cfg.Validate())

	cfg.TargetScore = 90
	assert.NoError(t, cfg.Validate())
}

func TestValidateNegativeWeight(t *testing.T) {
	cfg := &Config{KeywordWeight: -0.1}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyword_weight")
}

func TestValidateMissingTemplateFile(t *testing.T) {
	cfg := &Config{Template: filepath.Join(t.TempDir(), "missing.tex")}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template file not found")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{JobURL: "https://example.com/job"}
	defaults := Config{
		JobURL:        "https://default.example.com",
		TargetScore:   90,
		KeywordWeight: 0.4,
		ListenAddr:    ":8080",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "https://example.com/job", merged.JobURL, "set values win")
	assert.Equal(t, 90, merged.TargetScore)
	assert.Equal(t, 0.4, merged.KeywordWeight)
	assert.Equal(t, ":8080", merged.ListenAddr)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("ALLOWED_DOMAINS", "greenhouse.io, lever.co")

	cfg := &Config{DatabaseURL: "postgres://file/db"}
	cfg.FromEnv()

	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, []string{"greenhouse.io", "lever.co"}, cfg.AllowedDomains)
}
