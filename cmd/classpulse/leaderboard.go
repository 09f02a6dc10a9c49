package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/pkg/analyzer/leaderboard"
)

func leaderboardCmd() *cli.Command {
	return &cli.Command{
		Name:    "leaderboard",
		Aliases: []string{"lb"},
		Usage:   "Rank students by composite engagement score",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "period",
				Aliases: []string{"p"},
				Value:   "all",
				Usage:   "Ranking period: all, weekly, monthly",
			},
		},
		Action: runLeaderboard,
	}
}

func parsePeriod(s string) (leaderboard.Period, error) {
	switch leaderboard.Period(s) {
	case leaderboard.PeriodAll, leaderboard.PeriodWeekly, leaderboard.PeriodMonthly:
		return leaderboard.Period(s), nil
	default:
		return "", fmt.Errorf("invalid period %q: want all, weekly, or monthly", s)
	}
}

func runLeaderboard(c *cli.Context) error {
	period, err := parsePeriod(c.String("period"))
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

	data, err := loadDataset(c.Context, st)
	if err != nil {
		return err
	}

	analyzer := leaderboard.New(
		leaderboard.WithQuality(qualityAnalyzer(cfg)),
		leaderboard.WithConsistency(consistencyAnalyzer(cfg)),
	)
	report := analyzer.Analyze(period, data.students, data.repos, data.commits, time.Now().UTC())

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	trendArrows := map[leaderboard.Trend]string{
		leaderboard.TrendUp:     "↑",
		leaderboard.TrendDown:   "↓",
		leaderboard.TrendStable: "→",
	}

	var rows [][]string
	for _, r := range report.Rankings {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Rank),
			r.Name,
			fmt.Sprintf("%d", r.OverallScore),
			fmt.Sprintf("%d", r.TotalCommits),
			gradeCell(r.QualityGrade),
			fmt.Sprintf("%d", r.ActiveDays),
			fmt.Sprintf("%d", r.CurrentStreak),
			trendArrows[r.Trend],
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Leaderboard (%s)", period),
		[]string{"Rank", "Student", "Score", "Commits", "Grade", "Active Days", "Streak", "Trend"},
		rows,
		[]string{
			fmt.Sprintf("Students: %d", report.Stats.TotalStudents),
			"",
			fmt.Sprintf("Avg: %d", report.Stats.AvgScore),
			fmt.Sprintf("Total: %d", report.Stats.TotalCommits),
			"", "", "", "",
		},
		report,
	)

	return formatter.Output(table)
}
