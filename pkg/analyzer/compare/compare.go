// Package compare builds a side-by-side analytics bundle for two students.
package compare

import (
	"errors"
	"fmt"
	"time"

	"github.com/avelora/classpulse/pkg/analyzer/consistency"
	"github.com/avelora/classpulse/pkg/analyzer/quality"
	"github.com/avelora/classpulse/pkg/analyzer/streak"
	"github.com/avelora/classpulse/pkg/models"
)

// ErrNotFound is returned when a requested student id does not exist.
var ErrNotFound = errors.New("student not found")

const maxTechStack = 5

// Analyzer compares two students' work.
type Analyzer struct {
	quality     *quality.Analyzer
	consistency *consistency.Analyzer
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithQuality overrides the quality analyzer.
func WithQuality(a *quality.Analyzer) Option {
	return func(c *Analyzer) { c.quality = a }
}

// WithConsistency overrides the consistency analyzer.
func WithConsistency(a *consistency.Analyzer) Option {
	return func(c *Analyzer) { c.consistency = a }
}

// New creates a comparison analyzer with default sub-analyzers.
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

// Analyze compares two students by id at the given reference time.
func (a *Analyzer) Analyze(id1, id2 uint, students []models.Student, repos []models.Repository, commits []models.Commit, now time.Time) (*Report, error) {
	byID := make(map[uint]models.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}
	s1, ok := byID[id1]
	if !ok {
		return nil, fmt.Errorf("student %d: %w", id1, ErrNotFound)
	}
	s2, ok := byID[id2]
	if !ok {
		return nil, fmt.Errorf("student %d: %w", id2, ErrNotFound)
	}

	d1 := a.studentData(s1, repos, commits, now)
	d2 := a.studentData(s2, repos, commits, now)
	assignStrengths(d1, d2)

	return &Report{Student1: d1, Student2: d2}, nil
}

func (a *Analyzer) studentData(student models.Student, repos []models.Repository, commits []models.Commit, now time.Time) *StudentData {
	var studentRepos []models.Repository
	repoIDs := make(map[uint]bool)
	for _, r := range repos {
		if r.StudentID == student.ID {
			studentRepos = append(studentRepos, r)
			repoIDs[r.ID] = true
		}
	}
	var sc []models.Commit
	for _, c := range commits {
		if repoIDs[c.RepoID] {
			sc = append(sc, c)
		}
	}

	q := a.quality.Analyze(sc)
	cons := a.consistency.Analyze(sc, now)
	st := streak.Calculate(sc, now)

	// Tech stack comes from registered repositories, deduplicated in
	// registration order.
	seen := make(map[string]bool)
	var techStack []string
	for _, r := range studentRepos {
		for _, tech := range r.TechStack {
			if !seen[tech] {
				seen[tech] = true
				techStack = append(techStack, tech)
			}
		}
	}
	if len(techStack) > maxTechStack {
		techStack = techStack[:maxTechStack]
	}

	peak := peakHour(sc)
	weekly := cons.Heatmap
	if len(weekly) > 7 {
		weekly = weekly[len(weekly)-7:]
	}

	return &StudentData{
		ID:    student.ID,
		Name:  student.Name,
		Email: student.Email,
		Metrics: Metrics{
			TotalCommits:     len(sc),
			RepoCount:        len(studentRepos),
			ActiveDays:       cons.ActiveDays,
			AvgCommitsPerDay: cons.AvgPerActiveDay,
			QualityGrade:     q.Grade,
			QualityScore:     q.OverallScore,
			CurrentStreak:    st.CurrentStreak,
			LongestStreak:    st.LongestStreak,
		},
		Patterns: Patterns{
			WorkPattern: workPatternFor(peak),
			PeakHour:    peak,
			IsCramming:  cons.IsCramming,
		},
		TechStack:      techStack,
		Strengths:      []string{},
		WeeklyActivity: weekly,
	}
}

// peakHour returns the UTC hour with the most commits, 0 when there are
// none.
func peakHour(commits []models.Commit) int {
	var counts [24]int
	for _, c := range commits {
		counts[c.CommitDate.UTC().Hour()]++
	}
	peak := 0
	for h, n := range counts {
		if n > counts[peak] {
			peak = h
		}
	}
	return peak
}

func workPatternFor(hour int) string {
	switch {
	case hour < 12:
		return "Morning Person"
	case hour < 18:
		return "Afternoon Worker"
	default:
		return "Night Owl"
	}
}

// assignStrengths awards each dimension to whichever student is strictly
// ahead. Ties award neither.
func assignStrengths(d1, d2 *StudentData) {
	type dim struct {
		label  string
		v1, v2 float64
	}
	dims := []dim{
		{"More commits", float64(d1.Metrics.TotalCommits), float64(d2.Metrics.TotalCommits)},
		{"Better commit quality", float64(d1.Metrics.QualityScore), float64(d2.Metrics.QualityScore)},
		{"Higher streak", float64(d1.Metrics.CurrentStreak), float64(d2.Metrics.CurrentStreak)},
		{"More consistent", float64(d1.Metrics.ActiveDays), float64(d2.Metrics.ActiveDays)},
	}
	for _, d := range dims {
		switch {
		case d.v1 > d.v2:
			d1.Strengths = append(d1.Strengths, d.label)
		case d.v2 > d.v1:
			d2.Strengths = append(d2.Strengths, d.label)
		}
	}
}
