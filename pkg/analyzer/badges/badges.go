// Package badges awards achievement badges from a fixed catalogue based on
// a student's commit history.
package badges

import (
	"time"

	"github.com/avelora/classpulse/pkg/analyzer/consistency"
	"github.com/avelora/classpulse/pkg/analyzer/quality"
	"github.com/avelora/classpulse/pkg/analyzer/streak"
	"github.com/avelora/classpulse/pkg/models"
)

// Badge is one catalogue entry, earned or locked.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Requirement string `json:"requirement"`
	Earned      bool   `json:"earned"`
}

// Report partitions the catalogue for one student.
type Report struct {
	StudentID     uint    `json:"student_id"`
	StudentName   string  `json:"student_name"`
	Earned        []Badge `json:"earned"`
	Locked        []Badge `json:"locked"`
	TotalEarned   int     `json:"total_earned"`
	TotalPossible int     `json:"total_possible"`
}

// facts is everything the award rules look at.
type facts struct {
	commits       int
	currentStreak int
	longestStreak int
	grade         quality.Grade
	msgQuality    int
	earlyCommits  int
	lateCommits   int
	activeDays    int
}

type catalogueEntry struct {
	badge  Badge
	earned func(f facts) bool
}

// The catalogue order is the display order.
var catalogue = []catalogueEntry{
	{Badge{ID: "first-commit", Name: "First Steps", Icon: "🎯", Description: "Made your first commit", Requirement: "1 commit"},
		func(f facts) bool { return f.commits >= 1 }},
	{Badge{ID: "ten-commits", Name: "Getting Started", Icon: "🚀", Description: "10 commits milestone", Requirement: "10 commits"},
		func(f facts) bool { return f.commits >= 10 }},
	{Badge{ID: "fifty-commits", Name: "Committed", Icon: "💪", Description: "50 commits milestone", Requirement: "50 commits"},
		func(f facts) bool { return f.commits >= 50 }},
	{Badge{ID: "hundred-commits", Name: "Century Club", Icon: "💯", Description: "100 commits milestone", Requirement: "100 commits"},
		func(f facts) bool { return f.commits >= 100 }},
	{Badge{ID: "streak-3", Name: "On Fire", Icon: "🔥", Description: "3-day streak", Requirement: "3-day streak"},
		func(f facts) bool { return f.currentStreak >= 3 }},
	{Badge{ID: "streak-7", Name: "Week Warrior", Icon: "⚔️", Description: "7-day streak", Requirement: "7-day streak"},
		func(f facts) bool { return f.currentStreak >= 7 }},
	{Badge{ID: "streak-14", Name: "Unstoppable", Icon: "🏆", Description: "14-day streak achieved", Requirement: "14-day streak"},
		func(f facts) bool { return f.longestStreak >= 14 }},
	{Badge{ID: "quality-a", Name: "Quality Master", Icon: "⭐", Description: "A-grade commit quality", Requirement: "A grade"},
		func(f facts) bool { return f.grade == quality.GradeA }},
	{Badge{ID: "clean-commits", Name: "Clean Coder", Icon: "✨", Description: "90%+ meaningful commits", Requirement: "90%+ quality"},
		func(f facts) bool { return f.msgQuality >= 90 }},
	{Badge{ID: "early-bird", Name: "Early Bird", Icon: "🌅", Description: "5+ commits before 9 AM", Requirement: "5 early commits"},
		func(f facts) bool { return f.earlyCommits >= 5 }},
	{Badge{ID: "night-owl", Name: "Night Owl", Icon: "🦉", Description: "5+ commits after 10 PM", Requirement: "5 late commits"},
		func(f facts) bool { return f.lateCommits >= 5 }},
	{Badge{ID: "consistent", Name: "Consistent", Icon: "📅", Description: "20+ active days", Requirement: "20 active days"},
		func(f facts) bool { return f.activeDays >= 20 }},
}

// Analyzer awards badges.
type Analyzer struct {
	quality     *quality.Analyzer
	consistency *consistency.Analyzer
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithQuality overrides the quality analyzer backing quality badges.
func WithQuality(a *quality.Analyzer) Option {
	return func(b *Analyzer) { b.quality = a }
}

// WithConsistency overrides the consistency analyzer backing the
// active-days badge.
func WithConsistency(a *consistency.Analyzer) Option {
	return func(b *Analyzer) { b.consistency = a }
}

// New creates a badge analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		quality:     quality.New(),
		consistency: consistency.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze evaluates the whole catalogue for one student's commits.
func (a *Analyzer) Analyze(student models.Student, commits []models.Commit, now time.Time) *Report {
	q := a.quality.Analyze(commits)
	c := a.consistency.Analyze(commits, now)
	s := streak.Calculate(commits, now)

	f := facts{
		commits:       len(commits),
		currentStreak: s.CurrentStreak,
		longestStreak: s.LongestStreak,
		grade:         q.Grade,
		msgQuality:    q.MessageQualityScore,
		activeDays:    c.ActiveDays,
	}
	for _, commit := range commits {
		hour := commit.CommitDate.UTC().Hour()
		if hour >= 5 && hour < 9 {
			f.earlyCommits++
		}
		if hour >= 22 || hour < 5 {
			f.lateCommits++
		}
	}

	report := &Report{
		StudentID:     student.ID,
		StudentName:   student.Name,
		Earned:        []Badge{},
		Locked:        []Badge{},
		TotalPossible: len(catalogue),
	}
	for _, entry := range catalogue {
		badge := entry.badge
		if entry.earned(f) {
			badge.Earned = true
			report.Earned = append(report.Earned, badge)
		} else {
			report.Locked = append(report.Locked, badge)
		}
	}
	report.TotalEarned = len(report.Earned)
	return report
}
