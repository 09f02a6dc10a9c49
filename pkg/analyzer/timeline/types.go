package timeline

import (
	"time"

	"github.com/avelora/classpulse/pkg/analyzer/quality"
)

// Week is one weekly bucket, Sunday through Saturday.
type Week struct {
	WeekStart         time.Time     `json:"week_start"`
	WeekEnd           time.Time     `json:"week_end"`
	Commits           int           `json:"commits"`
	CumulativeCommits int           `json:"cumulative_commits"`
	QualityGrade      quality.Grade `json:"quality_grade"`
	Topics            []string      `json:"topics"`
}

// MarkerType distinguishes the first-commit marker from count thresholds.
type MarkerType string

const (
	MarkerFirst   MarkerType = "first"
	MarkerCommits MarkerType = "commits"
)

// Marker is an automatic milestone pinned to the commit that crossed it.
type Marker struct {
	Type       MarkerType `json:"type"`
	Threshold  int        `json:"threshold"`
	AchievedAt time.Time  `json:"achieved_at"`
	Label      string     `json:"label"`
}

// MilestoneStatus is the progress state against one configured milestone.
type MilestoneStatus string

const (
	StatusCompleted  MilestoneStatus = "completed"
	StatusMissed     MilestoneStatus = "missed"
	StatusAhead      MilestoneStatus = "ahead"
	StatusInProgress MilestoneStatus = "in-progress"
)

// MilestoneProgress reports commits achieved against one configured
// milestone's deadline and requirement.
type MilestoneProgress struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Date            time.Time       `json:"date"`
	RequiredCommits int             `json:"required_commits"`
	CommitsAchieved int             `json:"commits_achieved"`
	Progress        int             `json:"progress"`
	IsMet           bool            `json:"is_met"`
	IsPast          bool            `json:"is_past"`
	Status          MilestoneStatus `json:"status"`
}

// Summary rolls up the timeline.
type Summary struct {
	TotalWeeks        int     `json:"total_weeks"`
	TotalCommits      int     `json:"total_commits"`
	AvgCommitsPerWeek float64 `json:"avg_commits_per_week"`
	VelocitySlope     float64 `json:"velocity_slope"`
}

// Report is the full progress timeline for one student.
type Report struct {
	StudentID   uint                `json:"student_id"`
	StudentName string              `json:"student_name"`
	Timeline    []Week              `json:"timeline"`
	Markers     []Marker            `json:"markers"`
	Milestones  []MilestoneProgress `json:"milestones"`
	Summary     Summary             `json:"summary"`
}
