package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
)

func qualityCmd() *cli.Command {
	return &cli.Command{
		Name:      "quality",
		Aliases:   []string{"q"},
		Usage:     "Grade commit quality for a repository",
		ArgsUsage: "<repo-id>",
		Action:    runQuality,
	}
}

func runQuality(c *cli.Context) error {
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

	report := qualityAnalyzer(cfg).Analyze(commits)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rows := [][]string{
		{"Grade", gradeCell(report.Grade)},
		{"Overall Score", fmt.Sprintf("%d", report.OverallScore)},
		{"Message Quality", fmt.Sprintf("%d", report.MessageQualityScore)},
		{"Commit Size", fmt.Sprintf("%d", report.CommitSizeScore)},
		{"Good Messages", fmt.Sprintf("%d", report.GoodMessages)},
		{"Bad Messages", fmt.Sprintf("%d", report.BadMessages)},
		{"Huge Commits", fmt.Sprintf("%d", report.HugeCommits)},
		{"Avg Lines/Commit", fmt.Sprintf("%d", report.AvgLinesPerCommit)},
	}

	table := output.NewTable(
		fmt.Sprintf("Commit Quality: %s", repo.FullName()),
		[]string{"Metric", "Value"},
		rows,
		[]string{fmt.Sprintf("Commits: %d", report.TotalCommits), ""},
		report,
	)

	return formatter.Output(table)
}
