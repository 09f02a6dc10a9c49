package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/avelora/classpulse/pkg/models"
)

// Local reads commit history from clones on disk, laid out as
// root/<owner>/<name>. Unlike the API source it computes real line stats
// from each commit's diff.
type Local struct {
	root       string
	maxCommits int
}

// LocalOption is a functional option for configuring Local.
type LocalOption func(*Local)

// WithLocalMaxCommits caps how many commits one read returns.
func WithLocalMaxCommits(n int) LocalOption {
	return func(l *Local) {
		if n > 0 {
			l.maxCommits = n
		}
	}
}

// NewLocal creates a local clone source rooted at the given directory.
func NewLocal(root string, opts ...LocalOption) *Local {
	l := &Local{
		root:       root,
		maxCommits: DefaultMaxCommits,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ Source = (*Local)(nil)

// Commits walks the clone's log from HEAD, newest first.
func (l *Local) Commits(ctx context.Context, repo models.Repository) ([]CommitRecord, error) {
	path := filepath.Join(l.root, repo.Owner, repo.Name)
	gitRepo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	iter, err := gitRepo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("reading log of %s: %w", repo.FullName(), err)
	}
	defer iter.Close()

	var records []CommitRecord
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(records) >= l.maxCommits {
			return storer.ErrStop
		}
		records = append(records, CommitRecord{
			SHA:          c.Hash.String(),
			Author:       c.Author.Name,
			AuthorEmail:  c.Author.Email,
			Message:      c.Message,
			CommitDate:   c.Author.When,
			LinesChanged: linesChanged(c),
		})
		return nil
	})
	if err != nil {
		return records, fmt.Errorf("walking log of %s: %w", repo.FullName(), err)
	}
	return records, nil
}

// linesChanged sums additions and deletions from the commit's file stats.
// Stats failures (binary-only commits, shallow history) count as zero.
func linesChanged(c *object.Commit) int {
	stats, err := c.Stats()
	if err != nil {
		return 0
	}
	total := 0
	for _, s := range stats {
		total += s.Addition + s.Deletion
	}
	return total
}
