// Package timeline builds a weekly progress view of one student's work,
// with automatic commit-count markers and configured-milestone progress.
package timeline

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/avelora/classpulse/pkg/analyzer/quality"
	"github.com/avelora/classpulse/pkg/models"
)

// Automatic marker thresholds beyond the first commit.
var markerThresholds = []int{10, 25, 50, 100}

const maxTopicsPerWeek = 3

// Analyzer builds progress timelines.
type Analyzer struct {
	quality *quality.Analyzer
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithQuality overrides the per-week quality analyzer.
func WithQuality(a *quality.Analyzer) Option {
	return func(t *Analyzer) { t.quality = a }
}

// New creates a timeline analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{quality: quality.New()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze builds the timeline for one student's commits against the
// configured milestone schedule. Commits may arrive in any order.
func (a *Analyzer) Analyze(student models.Student, commits []models.Commit, milestones []models.Milestone, now time.Time) *Report {
	report := &Report{
		StudentID:   student.ID,
		StudentName: student.Name,
		Timeline:    []Week{},
		Markers:     []Marker{},
		Milestones:  milestoneProgress(commits, milestones, now),
	}
	if len(commits) == 0 {
		return report
	}

	sorted := make([]models.Commit, len(commits))
	copy(sorted, commits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CommitDate.Before(sorted[j].CommitDate)
	})

	report.Timeline = a.weeklyBuckets(sorted, now)
	report.Markers = markers(sorted)

	report.Summary = Summary{
		TotalWeeks:   len(report.Timeline),
		TotalCommits: len(sorted),
	}
	if n := len(report.Timeline); n > 0 {
		report.Summary.AvgCommitsPerWeek = math.Round(float64(len(sorted))/float64(n)*10) / 10
		report.Summary.VelocitySlope = velocitySlope(report.Timeline)
	}
	return report
}

// weekStart returns the Sunday 00:00 UTC that starts t's week.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func (a *Analyzer) weeklyBuckets(sorted []models.Commit, now time.Time) []Week {
	var weeks []Week
	cumulative := 0
	idx := 0
	for start := weekStart(sorted[0].CommitDate); !start.After(now.UTC()); start = start.AddDate(0, 0, 7) {
		end := start.AddDate(0, 0, 7)

		var weekCommits []models.Commit
		for idx < len(sorted) && sorted[idx].CommitDate.UTC().Before(end) {
			weekCommits = append(weekCommits, sorted[idx])
			idx++
		}
		cumulative += len(weekCommits)

		week := Week{
			WeekStart:         start,
			WeekEnd:           end.Add(-time.Second),
			Commits:           len(weekCommits),
			CumulativeCommits: cumulative,
			QualityGrade:      a.quality.Analyze(weekCommits).Grade,
			Topics:            weekTopics(weekCommits),
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// weekTopics takes the leading word of up to three commit messages,
// trimmed of the conventional-commit colon.
func weekTopics(commits []models.Commit) []string {
	topics := []string{}
	for _, c := range commits {
		if len(topics) == maxTopicsPerWeek {
			break
		}
		fields := strings.Fields(c.Message)
		if len(fields) == 0 {
			continue
		}
		topics = append(topics, strings.TrimSuffix(fields[0], ":"))
	}
	return topics
}

func markers(sorted []models.Commit) []Marker {
	out := []Marker{{
		Type:       MarkerFirst,
		Threshold:  1,
		AchievedAt: sorted[0].CommitDate,
		Label:      "First Commit",
	}}
	for _, threshold := range markerThresholds {
		if len(sorted) < threshold {
			break
		}
		out = append(out, Marker{
			Type:       MarkerCommits,
			Threshold:  threshold,
			AchievedAt: sorted[threshold-1].CommitDate,
			Label:      fmt.Sprintf("%d Commits!", threshold),
		})
	}
	return out
}

func milestoneProgress(commits []models.Commit, milestones []models.Milestone, now time.Time) []MilestoneProgress {
	out := make([]MilestoneProgress, 0, len(milestones))
	for _, m := range milestones {
		achieved := 0
		for _, c := range commits {
			if !c.CommitDate.After(m.Date) {
				achieved++
			}
		}
		progress := 100
		if m.RequiredCommits > 0 {
			progress = int(math.Round(math.Min(100, float64(achieved)/float64(m.RequiredCommits)*100)))
		}
		met := achieved >= m.RequiredCommits
		past := m.Date.Before(now)

		status := StatusInProgress
		switch {
		case past && met:
			status = StatusCompleted
		case past:
			status = StatusMissed
		case met:
			status = StatusAhead
		}

		out = append(out, MilestoneProgress{
			ID:              m.ID,
			Name:            m.Name,
			Date:            m.Date,
			RequiredCommits: m.RequiredCommits,
			CommitsAchieved: achieved,
			Progress:        progress,
			IsMet:           met,
			IsPast:          past,
			Status:          status,
		})
	}
	return out
}

// velocitySlope fits weekly commit counts against week index and returns
// the regression slope, commits per week of drift.
func velocitySlope(weeks []Week) float64 {
	if len(weeks) < 2 {
		return 0
	}
	xs := make([]float64, len(weeks))
	ys := make([]float64, len(weeks))
	for i, w := range weeks {
		xs[i] = float64(i)
		ys[i] = float64(w.Commits)
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return math.Round(slope*100) / 100
}
