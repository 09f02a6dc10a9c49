// Package models defines the domain entities shared by the analyzers,
// the store, and the sync job.
package models

import "time"

// Student owns one or more tracked repositories.
type Student struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name"`
	Email        string       `json:"email" gorm:"index"`
	CreatedAt    time.Time    `json:"created_at"`
	Repositories []Repository `json:"repositories,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// Repository is a GitHub repository registered for one student. Group
// projects carry the contributor logins seen at registration time; the
// balance analyzer works from commit authors either way.
type Repository struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	StudentID    uint       `json:"student_id" gorm:"index"`
	Owner        string     `json:"owner"`
	Name         string     `json:"repo_name"`
	URL          string     `json:"repo_url"`
	TechStack    []string   `json:"tech_stack,omitempty" gorm:"serializer:json"`
	IsGroup      bool       `json:"is_group"`
	Contributors []string   `json:"contributors,omitempty" gorm:"serializer:json"`
	SyncedAt     *time.Time `json:"synced_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	Commits      []Commit   `json:"-" gorm:"foreignKey:RepoID;constraint:OnDelete:CASCADE"`
}

// FullName returns the owner/name form used in report rows.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// Commit is one commit record fetched from a commit source. Commits are
// immutable once stored; inserts are deduplicated on (repo_id, sha).
type Commit struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SHA          string    `json:"sha" gorm:"uniqueIndex:idx_commits_repo_sha"`
	RepoID       uint      `json:"repo_id" gorm:"uniqueIndex:idx_commits_repo_sha;index"`
	Author       string    `json:"author"`
	Message      string    `json:"message"`
	CommitDate   time.Time `json:"commit_date"`
	LinesChanged int       `json:"lines_changed,omitempty"`
	CreatedAt    time.Time `json:"-"`
}

// Milestone is one entry in the course-wide milestone schedule. The set is
// small and replaced wholesale by an admin operation.
type Milestone struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name"`
	Date            time.Time `json:"date"`
	RequiredCommits int       `json:"required_commits"`
}

// DateKey returns the UTC calendar date of t in YYYY-MM-DD form. All
// day bucketing in the analyzers compares these keys.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
