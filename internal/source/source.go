// Package source abstracts where commit history comes from. The syncer
// works against the Source interface; GitHub and local clones are the two
// implementations.
package source

import (
	"context"
	"time"

	"github.com/avelora/classpulse/pkg/models"
)

// CommitRecord is one commit as fetched from a source, before it is bound
// to a stored repository.
type CommitRecord struct {
	SHA          string
	Author       string
	AuthorEmail  string
	Message      string
	CommitDate   time.Time
	LinesChanged int
}

// Source lists the commits of one repository. Implementations may return
// partial results alongside an error when a later page fails.
type Source interface {
	Commits(ctx context.Context, repo models.Repository) ([]CommitRecord, error)
}

// ToModel binds a fetched record to its repository row.
func (r CommitRecord) ToModel(repoID uint) models.Commit {
	return models.Commit{
		SHA:          r.SHA,
		RepoID:       repoID,
		Author:       r.Author,
		Message:      r.Message,
		CommitDate:   r.CommitDate,
		LinesChanged: r.LinesChanged,
	}
}
