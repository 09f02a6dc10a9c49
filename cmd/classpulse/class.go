package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/internal/progress"
	"github.com/avelora/classpulse/pkg/analyzer/classreport"
)

func classCmd() *cli.Command {
	return &cli.Command{
		Name:  "class",
		Usage: "Generate the class-wide analytics report",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent repository analyses (0 uses all CPUs)",
			},
		},
		Action: runClass,
	}
}

func runClass(c *cli.Context) error {
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

	tracker := progress.NewTracker("Analyzing class...", len(data.repos))
	opts := []classreport.Option{
		classreport.WithQuality(qualityAnalyzer(cfg)),
		classreport.WithConsistency(consistencyAnalyzer(cfg)),
		classreport.WithProgress(tracker.Tick),
	}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, classreport.WithWorkers(workers))
	}

	report := classreport.New(opts...).Analyze(data.students, data.repos, data.commits, time.Now().UTC())
	tracker.FinishSuccess()

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, row := range report.Students {
		cramming := ""
		if row.IsCramming {
			cramming = color.RedString("cramming")
		}
		slacker := ""
		if row.HasSlackerWarning {
			slacker = color.YellowString("unbalanced")
		}
		rows = append(rows, []string{
			row.StudentName,
			row.RepoName,
			fmt.Sprintf("%d", row.ConsistencyScore),
			gradeCell(row.QualityGrade),
			fmt.Sprintf("%d", row.TotalCommits),
			cramming,
			slacker,
		})
	}

	table := output.NewTable(
		"Class Analytics",
		[]string{"Student", "Repository", "Consistency", "Grade", "Commits", "Cramming", "Balance"},
		rows,
		[]string{
			fmt.Sprintf("Students: %d", report.Summary.TotalStudents),
			fmt.Sprintf("Repos: %d", report.Summary.TotalRepositories),
			fmt.Sprintf("Avg Consistency: %d", report.Summary.AvgConsistencyScore),
			fmt.Sprintf("Avg Quality: %d", report.Summary.AvgQualityScore),
			fmt.Sprintf("Commits: %d", report.TotalCommits),
			fmt.Sprintf("Alerts: %d", report.Summary.CrammingAlerts),
			fmt.Sprintf("Warnings: %d", report.Summary.SlackerWarnings),
		},
		report,
	)

	if err := formatter.Output(table); err != nil {
		return err
	}

	if len(report.CrammingAlerts) > 0 && formatter.Format() == output.FormatText {
		fmt.Println()
		color.Yellow("Cramming alerts (%d):", len(report.CrammingAlerts))
		for _, alert := range report.CrammingAlerts {
			fmt.Printf("  - %s / %s: %d%% of commits in the recent window\n",
				alert.Student, alert.Repo, alert.Percentage)
		}
	}

	return nil
}
