package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/internal/store"
	"github.com/avelora/classpulse/pkg/analyzer/consistency"
	"github.com/avelora/classpulse/pkg/analyzer/quality"
	"github.com/avelora/classpulse/pkg/config"
	"github.com/avelora/classpulse/pkg/models"
)

// loadConfig resolves the --config flag, falling back to the search path.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// newLogger builds the CLI logger. Quiet by default so report output stays
// clean; --verbose opens it up.
func newLogger(c *cli.Context, cfg *config.Config) zerolog.Logger {
	level := zerolog.WarnLevel
	if c.Bool("verbose") || cfg.Output.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().
		Logger()
}

func openStore(cfg *config.Config) (*store.Store, error) {
	return store.Open(cfg.Database.DSN, store.WithChunkSize(cfg.Sync.ChunkSize))
}

// newFormatter resolves the output format from the --format flag, then the
// config file, then the text default.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := c.String("format")
	if format == "" {
		format = cfg.Output.Format
	}
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), cfg.Output.Color)
}

// qualityAnalyzer builds a quality analyzer from configured thresholds.
func qualityAnalyzer(cfg *config.Config) *quality.Analyzer {
	return quality.New(
		quality.WithHugeCommitLines(cfg.Analysis.HugeCommitLines),
		quality.WithMinMessageLength(cfg.Analysis.MinMessageLength),
	)
}

// consistencyAnalyzer builds a consistency analyzer from configured
// thresholds.
func consistencyAnalyzer(cfg *config.Config) *consistency.Analyzer {
	return consistency.New(
		consistency.WithWindowDays(cfg.Analysis.WindowDays),
		consistency.WithCrammingWindow(cfg.Analysis.CrammingWindow()),
		consistency.WithCrammingThreshold(float64(cfg.Analysis.CrammingThresholdPct)),
	)
}

// parseID reads positional argument pos as an entity id.
func parseID(c *cli.Context, pos int, what string) (uint, error) {
	arg := c.Args().Get(pos)
	if arg == "" {
		return 0, fmt.Errorf("missing %s argument", what)
	}
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", what, arg)
	}
	return uint(id), nil
}

// parseMilestone parses a "YYYY-MM-DD:required:name" flag value. The name
// comes last so it may contain colons.
func parseMilestone(s string) (models.Milestone, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return models.Milestone{}, fmt.Errorf("invalid milestone %q: want DATE:COMMITS:NAME", s)
	}
	date, err := time.Parse("2006-01-02", parts[0])
	if err != nil {
		return models.Milestone{}, fmt.Errorf("invalid milestone date %q: %w", parts[0], err)
	}
	required, err := strconv.Atoi(parts[1])
	if err != nil || required <= 0 {
		return models.Milestone{}, fmt.Errorf("invalid milestone commit count %q", parts[1])
	}
	name := strings.TrimSpace(parts[2])
	if name == "" {
		return models.Milestone{}, fmt.Errorf("invalid milestone %q: empty name", s)
	}
	return models.Milestone{Name: name, Date: date.UTC(), RequiredCommits: required}, nil
}

// dataset is the full working set most analytics commands need.
type dataset struct {
	students []models.Student
	repos    []models.Repository
	commits  []models.Commit
}

func loadDataset(ctx context.Context, st *store.Store) (*dataset, error) {
	students, err := st.Students(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading students: %w", err)
	}
	repos, err := st.Repositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading repositories: %w", err)
	}
	commits, err := st.Commits(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading commits: %w", err)
	}
	return &dataset{students: students, repos: repos, commits: commits}, nil
}

// gradeCell colors a letter grade for table display.
func gradeCell(g quality.Grade) string {
	return output.GradeColor(string(g), string(g))
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
