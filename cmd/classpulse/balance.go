package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/pkg/analyzer/balance"
)

func balanceCmd() *cli.Command {
	return &cli.Command{
		Name:      "balance",
		Usage:     "Analyze contribution balance for a group repository",
		ArgsUsage: "<repo-id>",
		Action:    runBalance,
	}
}

func runBalance(c *cli.Context) error {
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

	report := balance.Analyze(commits)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if report == nil {
		formatter.Warning("No commits recorded for %s", repo.FullName())
		return nil
	}

	var rows [][]string
	for _, contributor := range report.Contributors {
		share := fmt.Sprintf("%d%%", contributor.Percentage)
		if report.Dominant != nil && contributor.Author == report.Dominant.Author && report.HasSlackerWarning {
			share = color.RedString(share)
		}
		rows = append(rows, []string{
			contributor.Author,
			fmt.Sprintf("%d", contributor.CommitCount),
			share,
		})
	}

	status := output.StatusColor(string(report.BalanceStatus), string(report.BalanceStatus))

	table := output.NewTable(
		fmt.Sprintf("Contribution Balance: %s", repo.FullName()),
		[]string{"Author", "Commits", "Share"},
		rows,
		[]string{
			fmt.Sprintf("Gini: %.2f", report.GiniCoefficient),
			fmt.Sprintf("Total: %d", report.TotalCommits),
			fmt.Sprintf("Status: %s", status),
		},
		report,
	)

	if err := formatter.Output(table); err != nil {
		return err
	}

	if report.HasSlackerWarning && formatter.Format() == output.FormatText {
		fmt.Println()
		color.Yellow("Warning: %s has made %d%% of all commits",
			report.Dominant.Author, report.Dominant.Percentage)
	}

	return nil
}
