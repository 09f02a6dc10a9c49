package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for classpulse.
type Config struct {
	// Database connection
	Database DatabaseConfig `koanf:"database"`

	// GitHub API access
	GitHub GitHubConfig `koanf:"github"`

	// Commit sync job
	Sync SyncConfig `koanf:"sync"`

	// Analyzer thresholds
	Analysis AnalysisConfig `koanf:"analysis"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// DatabaseConfig points at the postgres instance holding commit history.
type DatabaseConfig struct {
	DSN string `koanf:"dsn"`
}

// GitHubConfig controls the commit source.
type GitHubConfig struct {
	Token      string `koanf:"token"`
	BaseURL    string `koanf:"base_url"`
	MaxCommits int    `koanf:"max_commits"`
	PerPage    int    `koanf:"per_page"`
}

// SyncConfig controls the periodic fetch job.
type SyncConfig struct {
	IntervalMinutes int `koanf:"interval_minutes"`
	ChunkSize       int `koanf:"chunk_size"`
	Workers         int `koanf:"workers"`
}

// AnalysisConfig defines analyzer thresholds.
type AnalysisConfig struct {
	WindowDays           int     `koanf:"window_days"`
	CrammingWindowHours  int     `koanf:"cramming_window_hours"`
	CrammingThresholdPct float64 `koanf:"cramming_threshold_pct"`
	HugeCommitLines      int     `koanf:"huge_commit_lines"`
	MinMessageLength     int     `koanf:"min_message_length"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// Interval returns the sync interval as a duration.
func (s SyncConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

// CrammingWindow returns the cramming window as a duration.
func (a AnalysisConfig) CrammingWindow() time.Duration {
	return time.Duration(a.CrammingWindowHours) * time.Hour
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN: "host=localhost user=classpulse password=classpulse dbname=classpulse port=5432 sslmode=disable",
		},
		GitHub: GitHubConfig{
			BaseURL:    "https://api.github.com",
			MaxCommits: 1000,
			PerPage:    100,
		},
		Sync: SyncConfig{
			IntervalMinutes: 360,
			ChunkSize:       100,
			Workers:         4,
		},
		Analysis: AnalysisConfig{
			WindowDays:           60,
			CrammingWindowHours:  48,
			CrammingThresholdPct: 50,
			HugeCommitLines:      500,
			MinMessageLength:     5,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	// Load the config file
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	// Unmarshal into config struct
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// The token may arrive from the environment rather than the file.
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	// Standard config file names to search for
	configNames := []string{
		"classpulse.toml",
		"classpulse.yaml",
		"classpulse.yml",
		"classpulse.json",
		".classpulse.toml",
		".classpulse.yaml",
		".classpulse.yml",
		".classpulse.json",
	}

	// Search in current directory and .classpulse directory
	searchDirs := []string{".", ".classpulse"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	cfg := DefaultConfig()
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	return cfg
}
