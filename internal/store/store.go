// Package store persists students, repositories, commits, and the
// milestone schedule in postgres through gorm.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/avelora/classpulse/pkg/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// DefaultChunkSize bounds one upsert batch.
const DefaultChunkSize = 100

// Store wraps the database handle.
type Store struct {
	db        *gorm.DB
	chunkSize int
}

// Option is a functional option for configuring Store.
type Option func(*Store)

// WithChunkSize sets the commit upsert batch size.
func WithChunkSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// Open connects to postgres and migrates the schema.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return New(db, opts...)
}

// New wraps an existing handle and migrates the schema. Tests hand in a
// sqlite or mocked handle here.
func New(db *gorm.DB, opts ...Option) (*Store, error) {
	if err := db.AutoMigrate(
		&models.Student{},
		&models.Repository{},
		&models.Commit{},
		&models.Milestone{},
	); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	s := &Store{db: db, chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateStudent inserts a student.
func (s *Store) CreateStudent(ctx context.Context, student *models.Student) error {
	return s.db.WithContext(ctx).Create(student).Error
}

// Students lists all students, oldest first.
func (s *Store) Students(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	err := s.db.WithContext(ctx).Order("id").Find(&students).Error
	return students, err
}

// Student fetches one student by id.
func (s *Store) Student(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("student %d: %w", id, ErrNotFound)
	}
	return &student, err
}

// DeleteStudent removes a student. Repositories and commits cascade.
func (s *Store) DeleteStudent(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Student{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("student %d: %w", id, ErrNotFound)
	}
	return nil
}

// CreateRepository registers a repository for a student.
func (s *Store) CreateRepository(ctx context.Context, repo *models.Repository) error {
	return s.db.WithContext(ctx).Create(repo).Error
}

// Repositories lists all registered repositories.
func (s *Store) Repositories(ctx context.Context) ([]models.Repository, error) {
	var repos []models.Repository
	err := s.db.WithContext(ctx).Order("id").Find(&repos).Error
	return repos, err
}

// Repository fetches one repository by id.
func (s *Store) Repository(ctx context.Context, id uint) (*models.Repository, error) {
	var repo models.Repository
	err := s.db.WithContext(ctx).First(&repo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("repository %d: %w", id, ErrNotFound)
	}
	return &repo, err
}

// MarkSynced stamps the repository's last sync time.
func (s *Store) MarkSynced(ctx context.Context, repoID uint, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Repository{}).
		Where("id = ?", repoID).
		Update("synced_at", at).Error
}

// UpsertCommits inserts commits in chunks, skipping rows whose
// (repo_id, sha) already exists. Returns the number of rows written.
func (s *Store) UpsertCommits(ctx context.Context, commits []models.Commit) (int, error) {
	if len(commits) == 0 {
		return 0, nil
	}
	written := 0
	for start := 0; start < len(commits); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(commits) {
			end = len(commits)
		}
		chunk := commits[start:end]
		res := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "repo_id"}, {Name: "sha"}},
				DoNothing: true,
			}).
			Create(&chunk)
		if res.Error != nil {
			return written, fmt.Errorf("upserting commits: %w", res.Error)
		}
		written += int(res.RowsAffected)
	}
	return written, nil
}

// Commits lists every stored commit.
func (s *Store) Commits(ctx context.Context) ([]models.Commit, error) {
	var commits []models.Commit
	err := s.db.WithContext(ctx).Order("commit_date").Find(&commits).Error
	return commits, err
}

// CommitsByRepo lists one repository's commits, oldest first.
func (s *Store) CommitsByRepo(ctx context.Context, repoID uint) ([]models.Commit, error) {
	var commits []models.Commit
	err := s.db.WithContext(ctx).Where("repo_id = ?", repoID).Order("commit_date").Find(&commits).Error
	return commits, err
}

// CommitsByStudent lists every commit across a student's repositories.
func (s *Store) CommitsByStudent(ctx context.Context, studentID uint) ([]models.Commit, error) {
	var commits []models.Commit
	err := s.db.WithContext(ctx).
		Joins("JOIN repositories ON repositories.id = commits.repo_id").
		Where("repositories.student_id = ?", studentID).
		Order("commits.commit_date").
		Find(&commits).Error
	return commits, err
}

// Milestones lists the configured schedule in date order.
func (s *Store) Milestones(ctx context.Context) ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := s.db.WithContext(ctx).Order("date").Find(&milestones).Error
	return milestones, err
}

// ReplaceMilestones swaps the whole schedule in one transaction.
func (s *Store) ReplaceMilestones(ctx context.Context, milestones []models.Milestone) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Milestone{}).Error; err != nil {
			return err
		}
		if len(milestones) == 0 {
			return nil
		}
		return tx.Create(&milestones).Error
	})
}

// CountSummary is the quick totals block used by status output.
type CountSummary struct {
	Students     int64
	Repositories int64
	Commits      int64
}

// Counts returns row totals per entity.
func (s *Store) Counts(ctx context.Context) (*CountSummary, error) {
	var summary CountSummary
	if err := s.db.WithContext(ctx).Model(&models.Student{}).Count(&summary.Students).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Repository{}).Count(&summary.Repositories).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Commit{}).Count(&summary.Commits).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}
