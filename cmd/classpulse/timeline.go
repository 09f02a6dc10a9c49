package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/pkg/analyzer/timeline"
)

func timelineCmd() *cli.Command {
	return &cli.Command{
		Name:      "timeline",
		Usage:     "Show a student's weekly progress timeline",
		ArgsUsage: "<student-id>",
		Action:    runTimeline,
	}
}

func runTimeline(c *cli.Context) error {
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
	milestones, err := st.Milestones(c.Context)
	if err != nil {
		return fmt.Errorf("loading milestones: %w", err)
	}

	analyzer := timeline.New(timeline.WithQuality(qualityAnalyzer(cfg)))
	report := analyzer.Analyze(*student, commits, milestones, time.Now().UTC())

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, week := range report.Timeline {
		rows = append(rows, []string{
			week.WeekStart.Format("2006-01-02"),
			fmt.Sprintf("%d", week.Commits),
			fmt.Sprintf("%d", week.CumulativeCommits),
			gradeCell(week.QualityGrade),
			truncate(strings.Join(week.Topics, ", "), 40),
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Progress Timeline: %s", report.StudentName),
		[]string{"Week", "Commits", "Cumulative", "Grade", "Topics"},
		rows,
		[]string{
			fmt.Sprintf("Weeks: %d", report.Summary.TotalWeeks),
			fmt.Sprintf("Total: %d", report.Summary.TotalCommits),
			fmt.Sprintf("Avg/Week: %.1f", report.Summary.AvgCommitsPerWeek),
			fmt.Sprintf("Velocity: %+.2f", report.Summary.VelocitySlope),
			"",
		},
		report,
	)

	if err := formatter.Output(table); err != nil {
		return err
	}

	if formatter.Format() != output.FormatText {
		return nil
	}

	if len(report.Markers) > 0 {
		fmt.Println()
		color.Cyan("Milestones reached:")
		for _, marker := range report.Markers {
			fmt.Printf("  %s %s (%s)\n",
				marker.AchievedAt.Format("2006-01-02"), marker.Label, marker.Type)
		}
	}

	if len(report.Milestones) > 0 {
		fmt.Println()
		color.Cyan("Course milestones:")
		for _, m := range report.Milestones {
			status := output.StatusColor(string(m.Status), string(m.Status))
			fmt.Printf("  %s (%s): %d/%d commits, %d%% [%s]\n",
				m.Name, m.Date.Format("2006-01-02"),
				m.CommitsAchieved, m.RequiredCommits, m.Progress, status)
		}
	}

	return nil
}
