package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/pkg/analyzer/badges"
)

func badgesCmd() *cli.Command {
	return &cli.Command{
		Name:      "badges",
		Usage:     "Show earned and locked achievement badges for a student",
		ArgsUsage: "<student-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Include locked badges",
			},
		},
		Action: runBadges,
	}
}

func runBadges(c *cli.Context) error {
	studentID, err := parseID(c, 0, "student id")
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

	student, err := st.Student(c.Context, studentID)
	if err != nil {
		return err
	}
	commits, err := st.CommitsByStudent(c.Context, studentID)
	if err != nil {
		return fmt.Errorf("loading commits: %w", err)
	}

	analyzer := badges.New(
		badges.WithQuality(qualityAnalyzer(cfg)),
		badges.WithConsistency(consistencyAnalyzer(cfg)),
	)
	report := analyzer.Analyze(*student, commits, time.Now().UTC())

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, b := range report.Earned {
		rows = append(rows, []string{b.Icon, b.Name, b.Description, "earned"})
	}
	if c.Bool("all") {
		for _, b := range report.Locked {
			rows = append(rows, []string{b.Icon, b.Name, b.Requirement, "locked"})
		}
	}

	table := output.NewTable(
		fmt.Sprintf("Badges: %s", report.StudentName),
		[]string{"", "Badge", "Details", "Status"},
		rows,
		[]string{
			"",
			fmt.Sprintf("Earned: %d/%d", report.TotalEarned, report.TotalPossible),
			"", "",
		},
		report,
	)

	return formatter.Output(table)
}
