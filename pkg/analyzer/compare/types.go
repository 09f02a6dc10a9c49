package compare

import (
	"github.com/avelora/classpulse/pkg/analyzer/consistency"
	"github.com/avelora/classpulse/pkg/analyzer/quality"
)

// Metrics is the numeric half of one student's side.
type Metrics struct {
	TotalCommits     int           `json:"total_commits"`
	RepoCount        int           `json:"repo_count"`
	ActiveDays       int           `json:"active_days"`
	AvgCommitsPerDay float64       `json:"avg_commits_per_day"`
	QualityGrade     quality.Grade `json:"quality_grade"`
	QualityScore     int           `json:"quality_score"`
	CurrentStreak    int           `json:"current_streak"`
	LongestStreak    int           `json:"longest_streak"`
}

// Patterns describes when and how a student works.
type Patterns struct {
	WorkPattern string `json:"work_pattern"`
	PeakHour    int    `json:"peak_hour"`
	IsCramming  bool   `json:"is_cramming"`
}

// StudentData is one side of the comparison.
type StudentData struct {
	ID             uint                   `json:"id"`
	Name           string                 `json:"name"`
	Email          string                 `json:"email"`
	Metrics        Metrics                `json:"metrics"`
	Patterns       Patterns               `json:"patterns"`
	TechStack      []string               `json:"tech_stack"`
	Strengths      []string               `json:"strengths"`
	WeeklyActivity []consistency.DayCount `json:"weekly_activity"`
}

// Report pairs the two sides.
type Report struct {
	Student1 *StudentData `json:"student1"`
	Student2 *StudentData `json:"student2"`
}
