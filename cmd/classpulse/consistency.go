package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
)

func consistencyCmd() *cli.Command {
	return &cli.Command{
		Name:      "consistency",
		Usage:     "Analyze commit consistency and cramming for a repository",
		ArgsUsage: "<repo-id>",
		Action:    runConsistency,
	}
}

func runConsistency(c *cli.Context) error {
	repoID, err := parseID(c, 0, "repo id")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	repo, err := st.Repository(c.Context, repoID)
	if err != nil {
		return err
	}
	commits, err := st.CommitsByRepo(c.Context, repoID)
	if err != nil {
		return fmt.Errorf("loading commits: %w", err)
	}

	report := consistencyAnalyzer(cfg).Analyze(commits, time.Now().UTC())

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	cramming := "no"
	if report.IsCramming {
		cramming = color.RedString("yes (%d%% in last %dh)", report.CrammingPercentage, cfg.Analysis.CrammingWindowHours)
	}

	rows := [][]string{
		{"Consistency Score", fmt.Sprintf("%d", report.ConsistencyScore)},
		{"Active Days", fmt.Sprintf("%d of %d", report.ActiveDays, cfg.Analysis.WindowDays)},
		{"Activity Rate", fmt.Sprintf("%d%%", report.ActivityRate)},
		{"Avg/Active Day", fmt.Sprintf("%.1f", report.AvgPerActiveDay)},
		{"Recent Commits", fmt.Sprintf("%d", report.RecentCommits)},
		{"Cramming", cramming},
	}

	table := output.NewTable(
		fmt.Sprintf("Consistency: %s", repo.FullName()),
		[]string{"Metric", "Value"},
		rows,
		[]string{fmt.Sprintf("Commits: %d", report.TotalCommits), ""},
		report,
	)

	return formatter.Output(table)
}
