package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "classpulse",
		Usage:   "Student commit analytics CLI",
		Version: version,
		Description: `ClassPulse tracks student repositories and analyzes their commit
history: quality grades, consistency and cramming detection, streaks,
contribution balance, and class-wide trends.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"CLASSPULSE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose logging",
			},
		},
		Commands: []*cli.Command{
			studentsCmd(),
			reposCmd(),
			milestonesCmd(),
			syncCmd(),
			qualityCmd(),
			consistencyCmd(),
			streaksCmd(),
			balanceCmd(),
			classCmd(),
			leaderboardCmd(),
			compareCmd(),
			timelineCmd(),
			badgesCmd(),
			exportCmd(),
			summaryCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
