package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/internal/progress"
	"github.com/avelora/classpulse/internal/source"
	"github.com/avelora/classpulse/internal/syncer"
	"github.com/avelora/classpulse/pkg/config"
)

func syncCmd() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Fetch new commits for all registered repositories",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "local",
				Usage: "Read local clones under this directory instead of the GitHub API",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent repository fetches (0 uses config)",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Keep syncing on the configured interval until interrupted",
			},
		},
		Action: runSync,
	}
}

func newSource(c *cli.Context, cfg *config.Config, log zerolog.Logger) source.Source {
	if root := c.String("local"); root != "" {
		return source.NewLocal(root, source.WithLocalMaxCommits(cfg.GitHub.MaxCommits))
	}
	return source.NewGitHub(
		source.WithBaseURL(cfg.GitHub.BaseURL),
		source.WithToken(cfg.GitHub.Token),
		source.WithPerPage(cfg.GitHub.PerPage),
		source.WithMaxCommits(cfg.GitHub.MaxCommits),
		source.WithLogger(log),
	)
}

func runSync(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	workers := c.Int("workers")
	if workers <= 0 {
		workers = cfg.Sync.Workers
	}

	s := syncer.New(st, newSource(c, cfg, log),
		syncer.WithWorkers(workers),
		syncer.WithLogger(log),
	)

	if c.Bool("watch") {
		ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		color.Cyan("Syncing every %s, Ctrl+C to stop", cfg.Sync.Interval())
		err := s.Run(ctx, cfg.Sync.Interval())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	spinner := progress.NewSpinner("Syncing repositories...")
	result, err := s.Sync(c.Context)
	if err != nil {
		spinner.FinishError(err)
		return fmt.Errorf("sync failed: %w", err)
	}
	spinner.FinishSuccess()

	fmt.Printf("Synced %d repositories: %d commits fetched, %d new\n",
		len(result.Repos), result.Fetched, result.Written)

	if result.Failures > 0 {
		color.Yellow("Failures (%d):", result.Failures)
		for _, r := range result.Repos {
			if r.Err != nil {
				fmt.Printf("  - %s: %v\n", r.Repo.FullName(), r.Err)
			}
		}
	}

	return nil
}
