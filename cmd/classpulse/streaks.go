package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/pkg/analyzer/streak"
)

func streaksCmd() *cli.Command {
	return &cli.Command{
		Name:      "streaks",
		Usage:     "Show daily commit streaks for a student",
		ArgsUsage: "<student-id>",
		Action:    runStreaks,
	}
}

func runStreaks(c *cli.Context) error {
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

	report := streak.Calculate(commits, time.Now().UTC())

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	longest := fmt.Sprintf("%d days", report.LongestStreak)
	if report.LongestStart != "" && report.LongestStart != report.LongestEnd {
		longest = fmt.Sprintf("%d days (%s to %s)", report.LongestStreak, report.LongestStart, report.LongestEnd)
	}

	rows := [][]string{
		{"Current Streak", fmt.Sprintf("%d days", report.CurrentStreak)},
		{"Longest Streak", longest},
		{"Total Active Days", fmt.Sprintf("%d", report.TotalActiveDays)},
	}

	table := output.NewTable(
		fmt.Sprintf("Commit Streaks: %s", student.Name),
		[]string{"Metric", "Value"},
		rows,
		nil,
		report,
	)

	return formatter.Output(table)
}
