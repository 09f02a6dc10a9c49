package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/pkg/analyzer/compare"
)

func compareCmd() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Compare two students side by side",
		ArgsUsage: "<student-id> <student-id>",
		Action:    runCompare,
	}
}

func runCompare(c *cli.Context) error {
	id1, err := parseID(c, 0, "first student id")
	if err != nil {
		return err
	}
	id2, err := parseID(c, 1, "second student id")
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

	analyzer := compare.New(
		compare.WithQuality(qualityAnalyzer(cfg)),
		compare.WithConsistency(consistencyAnalyzer(cfg)),
	)
	report, err := analyzer.Analyze(id1, id2, data.students, data.repos, data.commits, time.Now().UTC())
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	s1, s2 := report.Student1, report.Student2
	rows := [][]string{
		{"Total Commits", fmt.Sprintf("%d", s1.Metrics.TotalCommits), fmt.Sprintf("%d", s2.Metrics.TotalCommits)},
		{"Repositories", fmt.Sprintf("%d", s1.Metrics.RepoCount), fmt.Sprintf("%d", s2.Metrics.RepoCount)},
		{"Active Days", fmt.Sprintf("%d", s1.Metrics.ActiveDays), fmt.Sprintf("%d", s2.Metrics.ActiveDays)},
		{"Avg Commits/Day", fmt.Sprintf("%.1f", s1.Metrics.AvgCommitsPerDay), fmt.Sprintf("%.1f", s2.Metrics.AvgCommitsPerDay)},
		{"Quality Grade", gradeCell(s1.Metrics.QualityGrade), gradeCell(s2.Metrics.QualityGrade)},
		{"Quality Score", fmt.Sprintf("%d", s1.Metrics.QualityScore), fmt.Sprintf("%d", s2.Metrics.QualityScore)},
		{"Current Streak", fmt.Sprintf("%d", s1.Metrics.CurrentStreak), fmt.Sprintf("%d", s2.Metrics.CurrentStreak)},
		{"Work Pattern", s1.Patterns.WorkPattern, s2.Patterns.WorkPattern},
		{"Peak Hour", fmt.Sprintf("%02d:00", s1.Patterns.PeakHour), fmt.Sprintf("%02d:00", s2.Patterns.PeakHour)},
		{"Tech Stack", strings.Join(s1.TechStack, ", "), strings.Join(s2.TechStack, ", ")},
		{"Strengths", strings.Join(s1.Strengths, "; "), strings.Join(s2.Strengths, "; ")},
	}

	table := output.NewTable(
		"Student Comparison",
		[]string{"Metric", s1.Name, s2.Name},
		rows,
		nil,
		report,
	)

	return formatter.Output(table)
}
