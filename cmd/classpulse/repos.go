package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/pkg/models"
)

func reposCmd() *cli.Command {
	return &cli.Command{
		Name:  "repos",
		Usage: "Manage registered repositories",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Register a repository for a student",
				ArgsUsage: "<student-id> <owner/name>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Repository URL (defaults to https://github.com/<owner/name>)",
					},
					&cli.StringSliceFlag{
						Name:  "tech",
						Usage: "Declared technology (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "group",
						Usage: "Mark as a group project",
					},
					&cli.StringSliceFlag{
						Name:  "contributor",
						Usage: "Expected contributor on a group project (repeatable)",
					},
				},
				Action: runRepoAdd,
			},
			{
				Name:   "list",
				Usage:  "List registered repositories",
				Action: runRepoList,
			},
		},
	}
}

func runRepoAdd(c *cli.Context) error {
	studentID, err := parseID(c, 0, "student id")
	if err != nil {
		return err
	}
	full := c.Args().Get(1)
	owner, name, ok := strings.Cut(full, "/")
	if !ok || owner == "" || name == "" {
		return fmt.Errorf("invalid repository %q: want owner/name", full)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	// The student must exist before a repository can point at them.
	if _, err := st.Student(c.Context, studentID); err != nil {
		return err
	}

	url := c.String("url")
	if url == "" {
		url = fmt.Sprintf("https://github.com/%s/%s", owner, name)
	}

	repo := models.Repository{
		StudentID:    studentID,
		Owner:        owner,
		Name:         name,
		URL:          url,
		TechStack:    c.StringSlice("tech"),
		IsGroup:      c.Bool("group"),
		Contributors: c.StringSlice("contributor"),
	}
	if err := st.CreateRepository(c.Context, &repo); err != nil {
		return fmt.Errorf("registering repository: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	formatter.Success("Registered %s as repository #%d for student #%d", repo.FullName(), repo.ID, studentID)
	return nil
}

func runRepoList(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	repos, err := st.Repositories(c.Context)
	if err != nil {
		return fmt.Errorf("loading repositories: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, r := range repos {
		kind := "solo"
		if r.IsGroup {
			kind = "group"
		}
		synced := "never"
		if r.SyncedAt != nil {
			synced = r.SyncedAt.UTC().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.StudentID),
			r.FullName(),
			kind,
			strings.Join(r.TechStack, ", "),
			synced,
		})
	}

	table := output.NewTable(
		"Registered Repositories",
		[]string{"ID", "Student", "Repository", "Type", "Tech Stack", "Last Sync"},
		rows,
		[]string{fmt.Sprintf("Total: %d", len(repos)), "", "", "", "", ""},
		repos,
	)

	return formatter.Output(table)
}
