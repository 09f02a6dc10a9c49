// Package consistency buckets commits by calendar day over a trailing
// window and scores how evenly the work is spread, including detection of
// last-minute cramming.
package consistency

import (
	"math"
	"time"

	"github.com/avelora/classpulse/pkg/models"
	"github.com/avelora/classpulse/pkg/stats"
)

// Defaults for the trailing window and cramming detection.
const (
	DefaultWindowDays        = 60
	DefaultCrammingWindow    = 48 * time.Hour
	DefaultCrammingThreshold = 50.0

	// maxExpectedVariance is the daily-count variance treated as a zero
	// consistency score before the cramming penalty.
	maxExpectedVariance = 10.0
	crammingPenalty     = 30.0
)

// Analyzer computes consistency reports. The reference time is always
// passed to Analyze so output is reproducible.
type Analyzer struct {
	windowDays        int
	crammingWindow    time.Duration
	crammingThreshold float64
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithWindowDays sets the trailing window length in days.
func WithWindowDays(days int) Option {
	return func(a *Analyzer) {
		if days > 0 {
			a.windowDays = days
		}
	}
}

// WithCrammingWindow sets the trailing duration used for cramming
// detection.
func WithCrammingWindow(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.crammingWindow = d
		}
	}
}

// WithCrammingThreshold sets the recent-commit percentage above which the
// cramming flag is raised.
func WithCrammingThreshold(pct float64) Option {
	return func(a *Analyzer) {
		if pct > 0 {
			a.crammingThreshold = pct
		}
	}
}

// New creates a new consistency analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		windowDays:        DefaultWindowDays,
		crammingWindow:    DefaultCrammingWindow,
		crammingThreshold: DefaultCrammingThreshold,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze scores commit spread over the window [now-windowDays, now).
// Zero commits yields an all-zero report with an empty heatmap.
func (a *Analyzer) Analyze(commits []models.Commit, now time.Time) *Report {
	report := &Report{
		Heatmap:      []DayCount{},
		CommitsByDay: map[string]int{},
		TotalCommits: len(commits),
	}
	if len(commits) == 0 {
		return report
	}

	// One bucket per UTC calendar day in the window, oldest first.
	start := now.UTC().AddDate(0, 0, -a.windowDays)
	dayKeys := make([]string, a.windowDays)
	for i := range dayKeys {
		key := models.DateKey(start.AddDate(0, 0, i))
		dayKeys[i] = key
		report.CommitsByDay[key] = 0
	}

	for _, c := range commits {
		key := models.DateKey(c.CommitDate)
		if _, ok := report.CommitsByDay[key]; ok {
			report.CommitsByDay[key]++
		}
	}

	counts := make([]float64, a.windowDays)
	maxCount := 1
	var windowCommits int
	for i, key := range dayKeys {
		n := report.CommitsByDay[key]
		counts[i] = float64(n)
		windowCommits += n
		if n > maxCount {
			maxCount = n
		}
		if n > 0 {
			report.ActiveDays++
		}
	}

	report.Heatmap = make([]DayCount, a.windowDays)
	for i, key := range dayKeys {
		n := report.CommitsByDay[key]
		report.Heatmap[i] = DayCount{
			Date:  key,
			Count: n,
			Level: int(math.Ceil(float64(n) / float64(maxCount) * 4)),
		}
	}

	variance := stats.PopVariance(counts)
	report.Variance = math.Round(variance*100) / 100

	// Cramming: share of all supplied commits inside the trailing window.
	cutoff := now.Add(-a.crammingWindow)
	for _, c := range commits {
		if !c.CommitDate.Before(cutoff) {
			report.RecentCommits++
		}
	}
	crammingPct := float64(report.RecentCommits) / float64(len(commits)) * 100
	report.CrammingPercentage = int(math.Round(crammingPct))
	report.IsCramming = crammingPct > a.crammingThreshold

	varianceScore := math.Max(0, 100-variance/maxExpectedVariance*100)
	penalty := 0.0
	if report.IsCramming {
		penalty = crammingPenalty
	}
	report.ConsistencyScore = int(math.Round(stats.Clamp(varianceScore-penalty, 0, 100)))

	report.ActivityRate = int(math.Round(float64(report.ActiveDays) / float64(a.windowDays) * 100))
	if report.ActiveDays > 0 {
		report.AvgPerActiveDay = math.Round(float64(windowCommits)/float64(report.ActiveDays)*10) / 10
	}

	return report
}
