package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/output"
	"github.com/avelora/classpulse/pkg/models"
)

func studentsCmd() *cli.Command {
	return &cli.Command{
		Name:  "students",
		Usage: "Manage enrolled students",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Enroll a student",
				ArgsUsage: "<name> <email>",
				Action:    runStudentAdd,
			},
			{
				Name:   "list",
				Usage:  "List enrolled students",
				Action: runStudentList,
			},
			{
				Name:      "remove",
				Usage:     "Remove a student, their repositories, and their commits",
				ArgsUsage: "<student-id>",
				Action:    runStudentRemove,
			},
		},
	}
}

func runStudentAdd(c *cli.Context) error {
	name := c.Args().Get(0)
	email := c.Args().Get(1)
	if name == "" || email == "" {
		return fmt.Errorf("usage: students add <name> <email>")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	student := models.Student{Name: name, Email: email}
	if err := st.CreateStudent(c.Context, &student); err != nil {
		return fmt.Errorf("enrolling student: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	formatter.Success("Enrolled %s <%s> as student #%d", student.Name, student.Email, student.ID)
	return nil
}

func runStudentList(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	students, err := st.Students(c.Context)
	if err != nil {
		return fmt.Errorf("loading students: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, s := range students {
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.ID),
			s.Name,
			s.Email,
			s.CreatedAt.UTC().Format("2006-01-02"),
		})
	}

	table := output.NewTable(
		"Enrolled Students",
		[]string{"ID", "Name", "Email", "Enrolled"},
		rows,
		[]string{fmt.Sprintf("Total: %d", len(students)), "", "", ""},
		students,
	)

	return formatter.Output(table)
}

func runStudentRemove(c *cli.Context) error {
	id, err := parseID(c, 0, "student id")
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

	if err := st.DeleteStudent(c.Context, id); err != nil {
		return fmt.Errorf("removing student: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	formatter.Success("Removed student #%d", id)
	return nil
}
