package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/pkg/models"
)

func milestonesCmd() *cli.Command {
	return &cli.Command{
		Name:  "milestones",
		Usage: "Manage course milestones",
		Subcommands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Replace the milestone schedule",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "milestone",
						Aliases:  []string{"m"},
						Usage:    "Milestone as DATE:COMMITS:NAME, e.g. 2026-05-01:30:Midterm (repeatable)",
						Required: true,
					},
				},
				Action: runMilestoneSet,
			},
			{
				Name:   "list",
				Usage:  "List course milestones",
				Action: runMilestoneList,
			},
		},
	}
}

func runMilestoneSet(c *cli.Context) error {
	var milestones []models.Milestone
	for _, raw := range c.StringSlice("milestone") {
		m, err := parseMilestone(raw)
		if err != nil {
			return err
		}
		milestones = append(milestones, m)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	if err := st.ReplaceMilestones(c.Context, milestones); err != nil {
		return fmt.Errorf("saving milestones: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	formatter.Success("Saved %d milestones", len(milestones))
	return nil
}

func runMilestoneList(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	milestones, err := st.Milestones(c.Context)
	if err != nil {
		return fmt.Errorf("loading milestones: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, m := range milestones {
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.ID),
			m.Name,
			m.Date.UTC().Format("2006-01-02"),
			fmt.Sprintf("%d", m.RequiredCommits),
		})
	}

	table := output.NewTable(
		"Course Milestones",
		[]string{"ID", "Name", "Deadline", "Required Commits"},
		rows,
		nil,
		milestones,
	)

	return formatter.Output(table)
}
