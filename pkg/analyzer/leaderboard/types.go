package leaderboard

import (
	"time"

	"github.com/avelora/classpulse/pkg/analyzer/quality"
)

// Period selects how far back the leaderboard looks.
type Period string

const (
	PeriodAll     Period = "all"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Trend is a cosmetic position tag. No prior-period snapshot is kept, so
// it derives from the current ranking alone.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Ranking is one student's leaderboard row.
type Ranking struct {
	Rank          int           `json:"rank"`
	StudentID     uint          `json:"student_id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	TotalCommits  int           `json:"total_commits"`
	RepoCount     int           `json:"repo_count"`
	QualityGrade  quality.Grade `json:"quality_grade"`
	QualityScore  int           `json:"quality_score"`
	ActiveDays    int           `json:"active_days"`
	CurrentStreak int           `json:"current_streak"`
	LongestStreak int           `json:"longest_streak"`
	OverallScore  int           `json:"overall_score"`
	Trend         Trend         `json:"trend"`
}

// Stats summarizes the whole board.
type Stats struct {
	TotalStudents int `json:"total_students"`
	AvgScore      int `json:"avg_score"`
	TotalCommits  int `json:"total_commits"`
}

// Report is the full leaderboard for one period.
type Report struct {
	Period        Period    `json:"period"`
	UpdatedAt     time.Time `json:"updated_at"`
	Rankings      []Ranking `json:"rankings"`
	TopPerformers []Ranking `json:"top_performers"`
	Stats         Stats     `json:"stats"`
}
