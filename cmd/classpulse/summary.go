package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/pkg/analyzer/summary"
)

func summaryCmd() *cli.Command {
	return &cli.Command{
		Name:      "summary",
		Usage:     "Generate a narrative summary of a repository's history",
		ArgsUsage: "<repo-id>",
		Action:    runSummary,
	}
}

func bulleted(items []string) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return strings.TrimRight(b.String(), "\n")
}

func runSummary(c *cli.Context) error {
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
	student, err := st.Student(c.Context, repo.StudentID)
	if err != nil {
		return err
	}
	commits, err := st.CommitsByRepo(c.Context, repoID)
	if err != nil {
		return fmt.Errorf("loading commits: %w", err)
	}

	gen := summary.New(
		summary.WithQuality(qualityAnalyzer(cfg)),
		summary.WithConsistency(consistencyAnalyzer(cfg)),
	)
	report := gen.Generate(*student, *repo, commits, time.Now().UTC())

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	sections := []output.Section{
		{Title: "Summary", Content: report.Summary},
	}
	if len(report.Patterns) > 0 {
		sections = append(sections, output.Section{Title: "Patterns", Content: bulleted(report.Patterns)})
	}
	if len(report.Topics) > 0 {
		sections = append(sections, output.Section{Title: "Focus Areas", Content: strings.Join(report.Topics, ", ")})
	}
	if len(report.Recommendations) > 0 {
		sections = append(sections, output.Section{Title: "Recommendations", Content: bulleted(report.Recommendations)})
	}
	sections = append(sections, output.Section{
		Title: "Stats",
		Content: fmt.Sprintf("%d commits over %d active days (%.1f/day), grade %s, %d%% meaningful messages",
			report.Stats.TotalCommits, report.Stats.ActiveDays, report.Stats.AvgCommitsPerDay,
			report.Stats.QualityGrade, report.Stats.MeaningfulPercent),
	})

	section := &output.Section{
		Title:    fmt.Sprintf("%s: %s", student.Name, repo.FullName()),
		Sections: sections,
		Data:     report,
	}

	return formatter.Output(section)
}
