// Package syncer pulls commit history from a source into the store, for
// every registered repository, either once or on a timer.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/avelora/classpulse/internal/source"
	"github.com/avelora/classpulse/pkg/models"
)

// Storage is the slice of the store the syncer needs.
type Storage interface {
	Repositories(ctx context.Context) ([]models.Repository, error)
	UpsertCommits(ctx context.Context, commits []models.Commit) (int, error)
	MarkSynced(ctx context.Context, repoID uint, at time.Time) error
}

// DefaultWorkers bounds the per-repository fan-out.
const DefaultWorkers = 4

// RepoResult is the outcome of syncing one repository.
type RepoResult struct {
	Repo    models.Repository
	Fetched int
	Written int
	Err     error
}

// Result is the outcome of one full sync pass.
type Result struct {
	Repos    []RepoResult
	Fetched  int
	Written  int
	Failures int
}

// Syncer runs sync passes.
type Syncer struct {
	store   Storage
	source  source.Source
	workers int
	now     func() time.Time
	log     zerolog.Logger
}

// Option is a functional option for configuring Syncer.
type Option func(*Syncer)

// WithWorkers caps concurrent repository fetches.
func WithWorkers(n int) Option {
	return func(s *Syncer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Syncer) { s.log = log }
}

// WithClock overrides the clock.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a syncer over the given store and commit source.
func New(store Storage, src source.Source, opts ...Option) *Syncer {
	s := &Syncer{
		store:   store,
		source:  src,
		workers: DefaultWorkers,
		now:     time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync fetches and stores commits for every registered repository. One
// repository failing does not stop the others; failures are reported in
// the result.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	repos, err := s.store.Repositories(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		results []RepoResult
	)
	p := pool.New().WithMaxGoroutines(s.workers)
	for _, repo := range repos {
		p.Go(func() {
			res := s.syncRepo(ctx, repo)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		})
	}
	p.Wait()

	out := &Result{Repos: results}
	for _, r := range results {
		out.Fetched += r.Fetched
		out.Written += r.Written
		if r.Err != nil {
			out.Failures++
		}
	}
	s.log.Info().
		Int("repos", len(repos)).
		Int("fetched", out.Fetched).
		Int("written", out.Written).
		Int("failures", out.Failures).
		Msg("sync pass complete")
	return out, nil
}

func (s *Syncer) syncRepo(ctx context.Context, repo models.Repository) RepoResult {
	res := RepoResult{Repo: repo}

	records, err := s.source.Commits(ctx, repo)
	res.Fetched = len(records)
	if err != nil {
		// Partial pages still get stored below.
		s.log.Warn().Err(err).Str("repo", repo.FullName()).Msg("fetch failed")
		res.Err = err
	}
	if len(records) == 0 {
		return res
	}

	commits := make([]models.Commit, 0, len(records))
	for _, rec := range records {
		commits = append(commits, rec.ToModel(repo.ID))
	}
	written, err := s.store.UpsertCommits(ctx, commits)
	res.Written = written
	if err != nil {
		res.Err = err
		return res
	}

	if res.Err == nil {
		if err := s.store.MarkSynced(ctx, repo.ID, s.now()); err != nil {
			res.Err = err
		}
	}
	return res
}

// Run syncs immediately and then on every tick until the context is
// cancelled.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) error {
	if _, err := s.Sync(ctx); err != nil {
		s.log.Error().Err(err).Msg("sync failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Sync(ctx); err != nil {
				s.log.Error().Err(err).Msg("sync failed")
			}
		}
	}
}
